package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/temirov/ghopen/internal/gitrepo"
)

const (
	repositoryMissingMessageConstant        = "repository inspector not configured"
	launcherMissingMessageConstant          = "browser launcher not configured"
	workingDirectoryRequiredMessageConstant = "working directory must be provided"
	revisionSynthesisFailureMessageConstant = "unable to determine a revision for the path"
	urlOutputTemplateConstant               = "%s\n"
)

// ErrRepositoryNotConfigured indicates the repository inspector dependency was missing.
var ErrRepositoryNotConfigured = errors.New(repositoryMissingMessageConstant)

// ErrLauncherNotConfigured indicates the browser launcher dependency was missing.
var ErrLauncherNotConfigured = errors.New(launcherMissingMessageConstant)

// ErrWorkingDirectoryRequired indicates the browse options carried no working directory.
var ErrWorkingDirectoryRequired = errors.New(workingDirectoryRequiredMessageConstant)

// ErrRevisionSynthesisFailed indicates neither an upstream branch nor a commit hash could be resolved.
var ErrRevisionSynthesisFailed = errors.New(revisionSynthesisFailureMessageConstant)

// RepositoryInspector exposes the git queries the browse service consumes.
type RepositoryInspector interface {
	TokenClassifier
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	UpstreamBranch(executionContext context.Context, repositoryPath string, branchName string) (string, error)
	BranchRemote(executionContext context.Context, repositoryPath string, branchName string) (string, error)
	CurrentRevision(executionContext context.Context, repositoryPath string) (string, error)
	RootPrefix(executionContext context.Context, repositoryPath string) (string, error)
	RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// ServiceDependencies enumerates collaborators required by the browse service.
type ServiceDependencies struct {
	Repository RepositoryInspector
	Launcher   BrowserLauncher
	Output     io.Writer
}

// Options configure a single browse invocation.
type Options struct {
	WorkingDirectory string
	RemoteName       string
	Tokens           []string
	PrintOnly        bool
}

// Result captures the outcome of a browse invocation.
type Result struct {
	URL string
}

// Service resolves command arguments against the repository and opens the matching GitHub page.
type Service struct {
	repository RepositoryInspector
	launcher   BrowserLauncher
	output     io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if dependencies.Launcher == nil {
		return nil, ErrLauncherNotConfigured
	}
	return &Service{
		repository: dependencies.Repository,
		launcher:   dependencies.Launcher,
		output:     dependencies.Output,
	}, nil
}

// Browse classifies the supplied tokens, composes the GitHub URL, and opens it in the browser.
func (service *Service) Browse(executionContext context.Context, options Options) (Result, error) {
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return Result{}, ErrWorkingDirectoryRequired
	}

	selection, selectionError := ResolveSelection(executionContext, service.repository, workingDirectory, options.Tokens)
	if selectionError != nil {
		return Result{}, selectionError
	}

	currentBranch := ""
	currentBranchResolved := false
	resolveCurrentBranch := func() (string, error) {
		if currentBranchResolved {
			return currentBranch, nil
		}
		branchName, branchError := service.repository.CurrentBranch(executionContext, workingDirectory)
		if branchError != nil {
			return "", branchError
		}
		currentBranch = branchName
		currentBranchResolved = true
		return currentBranch, nil
	}

	if len(selection.Path) > 0 {
		rootPrefix, prefixError := service.repository.RootPrefix(executionContext, workingDirectory)
		if prefixError != nil {
			return Result{}, prefixError
		}
		selection.Path = path.Join(rootPrefix, selection.Path)

		if len(selection.Revision) == 0 {
			synthesizedRevision, synthesisError := service.synthesizeRevision(executionContext, workingDirectory, resolveCurrentBranch)
			if synthesisError != nil {
				return Result{}, synthesisError
			}
			selection.Revision = synthesizedRevision
		}
	}

	remoteName, remoteNameError := service.resolveRemoteName(executionContext, workingDirectory, options.RemoteName, resolveCurrentBranch)
	if remoteNameError != nil {
		return Result{}, remoteNameError
	}

	remoteURL, remoteURLError := service.repository.RemoteURL(executionContext, workingDirectory, remoteName)
	if remoteURLError != nil {
		return Result{}, remoteURLError
	}

	repositorySlug, slugError := gitrepo.GitHubSlug(remoteURL)
	if slugError != nil {
		return Result{}, slugError
	}

	target, targetError := NewTarget(repositorySlug, selection)
	if targetError != nil {
		return Result{}, targetError
	}

	targetURL, urlError := target.URL()
	if urlError != nil {
		return Result{}, urlError
	}

	if service.output != nil {
		fmt.Fprintf(service.output, urlOutputTemplateConstant, targetURL)
	}

	if !options.PrintOnly {
		if launchError := service.launcher.OpenURL(targetURL); launchError != nil {
			return Result{}, launchError
		}
	}

	return Result{URL: targetURL}, nil
}

// synthesizeRevision picks the upstream merge branch when configured, falling back to the HEAD commit hash.
func (service *Service) synthesizeRevision(executionContext context.Context, workingDirectory string, resolveCurrentBranch func() (string, error)) (string, error) {
	branchName, branchError := resolveCurrentBranch()
	if branchError != nil {
		return "", branchError
	}

	if len(branchName) > 0 {
		upstreamBranch, upstreamError := service.repository.UpstreamBranch(executionContext, workingDirectory, branchName)
		if upstreamError != nil {
			return "", upstreamError
		}
		if len(upstreamBranch) > 0 {
			return upstreamBranch, nil
		}
	}

	currentRevision, revisionError := service.repository.CurrentRevision(executionContext, workingDirectory)
	if revisionError != nil {
		return "", revisionError
	}
	if len(currentRevision) == 0 {
		return "", ErrRevisionSynthesisFailed
	}
	return currentRevision, nil
}

// resolveRemoteName prefers an explicit remote, then the current branch's configured remote, then origin.
func (service *Service) resolveRemoteName(executionContext context.Context, workingDirectory string, explicitRemoteName string, resolveCurrentBranch func() (string, error)) (string, error) {
	trimmedExplicitRemote := strings.TrimSpace(explicitRemoteName)
	if len(trimmedExplicitRemote) > 0 {
		return trimmedExplicitRemote, nil
	}

	branchName, branchError := resolveCurrentBranch()
	if branchError != nil {
		return "", branchError
	}

	if len(branchName) > 0 {
		branchRemote, branchRemoteError := service.repository.BranchRemote(executionContext, workingDirectory, branchName)
		if branchRemoteError != nil {
			return "", branchRemoteError
		}
		if len(branchRemote) > 0 {
			return branchRemote, nil
		}
	}

	return defaultRemoteNameConstant, nil
}
