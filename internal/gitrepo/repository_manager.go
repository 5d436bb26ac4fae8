package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghopen/internal/execshell"
)

const (
	gitRevParseSubcommandConstant         = "rev-parse"
	gitConfigSubcommandConstant           = "config"
	gitRemoteSubcommandConstant           = "remote"
	gitRemoteGetURLSubcommandConstant     = "get-url"
	gitConfigGetFlagConstant              = "--get"
	gitRevsOnlyFlagConstant               = "--revs-only"
	gitNoRevsFlagConstant                 = "--no-revs"
	gitNoFlagsFlagConstant                = "--no-flags"
	gitSymbolicFlagConstant               = "--symbolic"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitShowPrefixFlagConstant             = "--show-prefix"
	gitHeadReferenceConstant              = "HEAD"
	gitDetachedHeadOutputConstant         = "HEAD"
	branchMergeConfigKeyTemplateConstant  = "branch.%s.merge"
	branchRemoteConfigKeyTemplateConstant = "branch.%s.remote"
	branchReferencePrefixConstant         = "refs/heads/"
	configAbsentExitCodeConstant          = 1
	executorRequiredMessageConstant       = "git executor must be provided"
)

// ErrGitExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorRequiredMessageConstant)

// GitExecutor exposes the subset of shell execution required to interrogate repositories.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager answers questions about a local git repository by shelling out to git.
//
// Every operation runs inside the supplied repository path and propagates git
// invocation failures unrecovered; there are no retries and no timeouts.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ClassifyRevisions returns the subset of tokens git considers revision specifiers, in symbolic form.
func (manager *RepositoryManager) ClassifyRevisions(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	arguments := append([]string{gitRevParseSubcommandConstant, gitRevsOnlyFlagConstant, gitSymbolicFlagConstant}, tokens...)
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	return splitOutputLines(executionResult.StandardOutput), nil
}

// ClassifyPaths returns the subset of tokens git considers paths, excluding flags and revisions.
func (manager *RepositoryManager) ClassifyPaths(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	arguments := append([]string{gitRevParseSubcommandConstant, gitNoRevsFlagConstant, gitNoFlagsFlagConstant}, tokens...)
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	return splitOutputLines(executionResult.StandardOutput), nil
}

// CurrentBranch returns the short name of HEAD, or an empty string for a detached HEAD.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if branchName == gitDetachedHeadOutputConstant {
		return "", nil
	}
	return branchName, nil
}

// UpstreamBranch returns the configured merge-target branch name for a local branch, or an empty string when none is configured.
func (manager *RepositoryManager) UpstreamBranch(executionContext context.Context, repositoryPath string, branchName string) (string, error) {
	mergeReference, lookupError := manager.configValue(executionContext, repositoryPath, branchMergeConfigKeyTemplateConstant, branchName)
	if lookupError != nil {
		return "", lookupError
	}
	return strings.TrimPrefix(mergeReference, branchReferencePrefixConstant), nil
}

// BranchRemote returns the remote configured for a local branch, or an empty string when none is configured.
func (manager *RepositoryManager) BranchRemote(executionContext context.Context, repositoryPath string, branchName string) (string, error) {
	return manager.configValue(executionContext, repositoryPath, branchRemoteConfigKeyTemplateConstant, branchName)
}

// CurrentRevision returns the full commit hash of HEAD.
func (manager *RepositoryManager) CurrentRevision(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// RootPrefix returns the path from the repository root down to the working directory, with a trailing slash when non-empty.
func (manager *RepositoryManager) RootPrefix(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowPrefixFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// RemoteURL returns the configured fetch URL for the named remote.
func (manager *RepositoryManager) RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// configValue reads a single git configuration key, treating an absent key as empty rather than fatal.
func (manager *RepositoryManager) configValue(executionContext context.Context, repositoryPath string, keyTemplate string, branchName string) (string, error) {
	configurationKey := fmt.Sprintf(keyTemplate, branchName)
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetFlagConstant, configurationKey},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == configAbsentExitCodeConstant {
			return "", nil
		}
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func splitOutputLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) > 0 {
			lines = append(lines, trimmedLine)
		}
	}
	return lines
}
