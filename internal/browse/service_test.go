package browse_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghopen/internal/browse"
	"github.com/temirov/ghopen/internal/gitrepo"
)

const (
	testWorkingDirectoryConstant = "/workspace/example/src"
	testHeadCommitHashConstant   = "0123456789abcdef0123456789abcdef01234567"
	testGitHubRemoteURLConstant  = "git@github.com:octocat/example.git"
	testGitLabRemoteURLConstant  = "https://gitlab.com/octocat/example.git"
)

// fakeRepository satisfies browse.RepositoryInspector with canned repository state.
type fakeRepository struct {
	revisions      map[string]bool
	paths          map[string]bool
	currentBranch  string
	upstreamBranch string
	branchRemote   string
	headRevision   string
	rootPrefix     string
	remoteURLs     map[string]string

	requestedRemotes []string
}

func (repository *fakeRepository) ClassifyRevisions(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error) {
	var matchedTokens []string
	for _, token := range tokens {
		if repository.revisions[token] {
			matchedTokens = append(matchedTokens, token)
		}
	}
	return matchedTokens, nil
}

func (repository *fakeRepository) ClassifyPaths(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error) {
	var matchedTokens []string
	for _, token := range tokens {
		if repository.paths[token] {
			matchedTokens = append(matchedTokens, token)
		}
	}
	return matchedTokens, nil
}

func (repository *fakeRepository) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	return repository.currentBranch, nil
}

func (repository *fakeRepository) UpstreamBranch(executionContext context.Context, repositoryPath string, branchName string) (string, error) {
	return repository.upstreamBranch, nil
}

func (repository *fakeRepository) BranchRemote(executionContext context.Context, repositoryPath string, branchName string) (string, error) {
	return repository.branchRemote, nil
}

func (repository *fakeRepository) CurrentRevision(executionContext context.Context, repositoryPath string) (string, error) {
	return repository.headRevision, nil
}

func (repository *fakeRepository) RootPrefix(executionContext context.Context, repositoryPath string) (string, error) {
	return repository.rootPrefix, nil
}

func (repository *fakeRepository) RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	repository.requestedRemotes = append(repository.requestedRemotes, remoteName)
	remoteURL, remoteExists := repository.remoteURLs[remoteName]
	if !remoteExists {
		return "", errors.New("fatal: no such remote")
	}
	return remoteURL, nil
}

// recordingLauncher records opened URLs instead of launching a browser.
type recordingLauncher struct {
	openedURLs  []string
	launchError error
}

func (launcher *recordingLauncher) OpenURL(url string) error {
	if launcher.launchError != nil {
		return launcher.launchError
	}
	launcher.openedURLs = append(launcher.openedURLs, url)
	return nil
}

func newBrowseService(testInstance *testing.T, repository *fakeRepository, launcher *recordingLauncher, output *bytes.Buffer) *browse.Service {
	testInstance.Helper()

	service, serviceError := browse.NewService(browse.ServiceDependencies{
		Repository: repository,
		Launcher:   launcher,
		Output:     output,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func TestServiceBrowseComposesExpectedURLs(testInstance *testing.T) {
	testCases := []struct {
		name            string
		tokens          []string
		repository      *fakeRepository
		expectedURL     string
		expectedRemotes []string
	}{
		{
			name: "repository_root_without_arguments",
			repository: &fakeRepository{
				currentBranch: "main",
				remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL:     "https://github.com/octocat/example",
			expectedRemotes: []string{"origin"},
		},
		{
			name:   "commit_for_revision_argument",
			tokens: []string{"abc123"},
			repository: &fakeRepository{
				revisions:     map[string]bool{"abc123": true},
				currentBranch: "main",
				remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL: "https://github.com/octocat/example/commit/abc123",
		},
		{
			name:   "tree_path_with_upstream_branch",
			tokens: []string{"server.go"},
			repository: &fakeRepository{
				paths:          map[string]bool{"server.go": true},
				currentBranch:  "feature/links",
				upstreamBranch: "main",
				rootPrefix:     "src/",
				remoteURLs:     map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL: "https://github.com/octocat/example/tree/main/src/server.go",
		},
		{
			name:   "tree_path_falls_back_to_head_hash",
			tokens: []string{"server.go", "+42"},
			repository: &fakeRepository{
				paths:         map[string]bool{"server.go": true},
				currentBranch: "feature/links",
				headRevision:  testHeadCommitHashConstant,
				rootPrefix:    "src/",
				remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL: "https://github.com/octocat/example/tree/" + testHeadCommitHashConstant + "/src/server.go#L42",
		},
		{
			name:   "detached_head_uses_commit_hash",
			tokens: []string{"server.go"},
			repository: &fakeRepository{
				paths:        map[string]bool{"server.go": true},
				headRevision: testHeadCommitHashConstant,
				remoteURLs:   map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL: "https://github.com/octocat/example/tree/" + testHeadCommitHashConstant + "/server.go",
		},
		{
			name:   "explicit_revision_and_path",
			tokens: []string{"main", "server.go"},
			repository: &fakeRepository{
				revisions:     map[string]bool{"main": true},
				paths:         map[string]bool{"server.go": true},
				currentBranch: "main",
				rootPrefix:    "src/",
				remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			expectedURL: "https://github.com/octocat/example/tree/main/src/server.go",
		},
		{
			name: "branch_remote_preferred_over_origin",
			repository: &fakeRepository{
				currentBranch: "main",
				branchRemote:  "upstream",
				remoteURLs:    map[string]string{"upstream": testGitHubRemoteURLConstant},
			},
			expectedURL:     "https://github.com/octocat/example",
			expectedRemotes: []string{"upstream"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			launcher := &recordingLauncher{}
			outputBuffer := &bytes.Buffer{}
			service := newBrowseService(testInstance, testCase.repository, launcher, outputBuffer)

			browseResult, browseError := service.Browse(context.Background(), browse.Options{
				WorkingDirectory: testWorkingDirectoryConstant,
				Tokens:           testCase.tokens,
			})
			require.NoError(testInstance, browseError)
			require.Equal(testInstance, testCase.expectedURL, browseResult.URL)
			require.Equal(testInstance, []string{testCase.expectedURL}, launcher.openedURLs)
			require.Equal(testInstance, testCase.expectedURL+"\n", outputBuffer.String())

			if testCase.expectedRemotes != nil {
				require.Equal(testInstance, testCase.expectedRemotes, testCase.repository.requestedRemotes)
			}
		})
	}
}

func TestServiceBrowsePrintOnlySkipsLauncher(testInstance *testing.T) {
	repository := &fakeRepository{
		currentBranch: "main",
		remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
	}
	launcher := &recordingLauncher{}
	outputBuffer := &bytes.Buffer{}
	service := newBrowseService(testInstance, repository, launcher, outputBuffer)

	browseResult, browseError := service.Browse(context.Background(), browse.Options{
		WorkingDirectory: testWorkingDirectoryConstant,
		Tokens:           nil,
		PrintOnly:        true,
	})
	require.NoError(testInstance, browseError)
	require.Equal(testInstance, "https://github.com/octocat/example", browseResult.URL)
	require.Empty(testInstance, launcher.openedURLs)
	require.Equal(testInstance, "https://github.com/octocat/example\n", outputBuffer.String())
}

func TestServiceBrowseExplicitRemoteOverride(testInstance *testing.T) {
	repository := &fakeRepository{
		currentBranch: "main",
		branchRemote:  "upstream",
		remoteURLs:    map[string]string{"fork": testGitHubRemoteURLConstant},
	}
	launcher := &recordingLauncher{}
	service := newBrowseService(testInstance, repository, launcher, &bytes.Buffer{})

	_, browseError := service.Browse(context.Background(), browse.Options{
		WorkingDirectory: testWorkingDirectoryConstant,
		RemoteName:       "fork",
	})
	require.NoError(testInstance, browseError)
	require.Equal(testInstance, []string{"fork"}, repository.requestedRemotes)
}

func TestServiceBrowseFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		tokens        []string
		repository    *fakeRepository
		launcher      *recordingLauncher
		expectedError error
	}{
		{
			name:   "line_without_path",
			tokens: []string{"+5"},
			repository: &fakeRepository{
				currentBranch: "main",
				remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
			},
			launcher:      &recordingLauncher{},
			expectedError: browse.ErrInvalidCombination,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service := newBrowseService(testInstance, testCase.repository, testCase.launcher, &bytes.Buffer{})

			_, browseError := service.Browse(context.Background(), browse.Options{
				WorkingDirectory: testWorkingDirectoryConstant,
				Tokens:           testCase.tokens,
			})
			require.ErrorIs(testInstance, browseError, testCase.expectedError)
			require.Empty(testInstance, testCase.launcher.openedURLs)
		})
	}
}

func TestServiceBrowseRejectsForeignRemote(testInstance *testing.T) {
	repository := &fakeRepository{
		currentBranch: "main",
		remoteURLs:    map[string]string{"origin": testGitLabRemoteURLConstant},
	}
	launcher := &recordingLauncher{}
	service := newBrowseService(testInstance, repository, launcher, &bytes.Buffer{})

	_, browseError := service.Browse(context.Background(), browse.Options{
		WorkingDirectory: testWorkingDirectoryConstant,
	})
	require.Error(testInstance, browseError)

	hostError := gitrepo.NotGitHubRemoteError{}
	require.ErrorAs(testInstance, browseError, &hostError)
	require.Empty(testInstance, launcher.openedURLs)
}

func TestServiceBrowseAmbiguousArgumentsAbortBeforeLaunch(testInstance *testing.T) {
	repository := &fakeRepository{
		paths:         map[string]bool{"a.go": true, "b.go": true},
		currentBranch: "main",
		remoteURLs:    map[string]string{"origin": testGitHubRemoteURLConstant},
	}
	launcher := &recordingLauncher{}
	service := newBrowseService(testInstance, repository, launcher, &bytes.Buffer{})

	_, browseError := service.Browse(context.Background(), browse.Options{
		WorkingDirectory: testWorkingDirectoryConstant,
		Tokens:           []string{"a.go", "b.go"},
	})
	require.Error(testInstance, browseError)

	ambiguousError := browse.AmbiguousSelectionError{}
	require.ErrorAs(testInstance, browseError, &ambiguousError)
	require.Empty(testInstance, launcher.openedURLs)
}

func TestServiceBrowseRequiresWorkingDirectory(testInstance *testing.T) {
	service := newBrowseService(testInstance, &fakeRepository{}, &recordingLauncher{}, &bytes.Buffer{})

	_, browseError := service.Browse(context.Background(), browse.Options{})
	require.ErrorIs(testInstance, browseError, browse.ErrWorkingDirectoryRequired)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingRepositoryError := browse.NewService(browse.ServiceDependencies{Launcher: &recordingLauncher{}})
	require.ErrorIs(testInstance, missingRepositoryError, browse.ErrRepositoryNotConfigured)

	_, missingLauncherError := browse.NewService(browse.ServiceDependencies{Repository: &fakeRepository{}})
	require.ErrorIs(testInstance, missingLauncherError, browse.ErrLauncherNotConfigured)
}
