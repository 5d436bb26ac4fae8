package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghopen/internal/gitrepo"
)

const (
	testHTTPSRemoteCaseNameConstant        = "https_remote"
	testHTTPSWithoutSuffixCaseNameConstant = "https_remote_without_git_suffix"
	testSCPRemoteCaseNameConstant          = "scp_remote"
	testSSHRemoteCaseNameConstant          = "ssh_remote"
	testGitProtocolRemoteCaseNameConstant  = "git_protocol_remote"
	testHostOnlyRemoteCaseNameConstant     = "host_only_scp_remote"
	testExpectedSlugConstant               = "owner/name"
)

func TestGitHubSlug(testInstance *testing.T) {
	testCases := []struct {
		name         string
		remote       string
		expectedSlug string
	}{
		{
			name:         testHTTPSRemoteCaseNameConstant,
			remote:       "https://github.com/owner/name.git",
			expectedSlug: testExpectedSlugConstant,
		},
		{
			name:         testHTTPSWithoutSuffixCaseNameConstant,
			remote:       "https://github.com/owner/name",
			expectedSlug: testExpectedSlugConstant,
		},
		{
			name:         testSCPRemoteCaseNameConstant,
			remote:       "git@github.com:owner/name.git",
			expectedSlug: testExpectedSlugConstant,
		},
		{
			name:         testSSHRemoteCaseNameConstant,
			remote:       "ssh://git@github.com/owner/name.git",
			expectedSlug: testExpectedSlugConstant,
		},
		{
			name:         testGitProtocolRemoteCaseNameConstant,
			remote:       "git://github.com/owner/name.git",
			expectedSlug: testExpectedSlugConstant,
		},
		{
			name:         testHostOnlyRemoteCaseNameConstant,
			remote:       "github.com:owner/name.git",
			expectedSlug: testExpectedSlugConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			slug, slugError := gitrepo.GitHubSlug(testCase.remote)
			require.NoError(testInstance, slugError)
			require.Equal(testInstance, testCase.expectedSlug, slug)
		})
	}
}

func TestGitHubSlugRejectsForeignHosts(testInstance *testing.T) {
	testCases := []struct {
		name   string
		remote string
	}{
		{
			name:   "https_gitlab_remote",
			remote: "https://gitlab.com/owner/name.git",
		},
		{
			name:   "scp_bitbucket_remote",
			remote: "git@bitbucket.org:owner/name.git",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			slug, slugError := gitrepo.GitHubSlug(testCase.remote)
			require.Error(testInstance, slugError)
			require.Empty(testInstance, slug)

			hostError := gitrepo.NotGitHubRemoteError{}
			require.ErrorAs(testInstance, slugError, &hostError)
		})
	}
}

func TestParseRemoteURLFailures(testInstance *testing.T) {
	testCases := []struct {
		name   string
		remote string
	}{
		{
			name:   "empty_remote",
			remote: "   ",
		},
		{
			name:   "missing_repository_segment",
			remote: "https://github.com/owner",
		},
		{
			name:   "nested_repository_path",
			remote: "https://github.com/owner/group/name.git",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			require.Error(testInstance, parseError)

			remoteParseError := gitrepo.RemoteURLParseError{}
			require.ErrorAs(testInstance, parseError, &remoteParseError)
		})
	}
}
