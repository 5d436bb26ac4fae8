package gitrepo

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	gitHubHostConstant                    = "github.com"
	sshProtocolPrefixConstant             = "ssh://"
	pathSeparatorConstant                 = "/"
	scpPathDelimiterConstant              = ":"
	gitSuffixConstant                     = ".git"
	slugSegmentCountConstant              = 2
	remoteParseErrorTemplateConstant      = "%s: %s"
	invalidRemoteURLMessageConstant       = "invalid remote url"
	requiredValueMessageConstant          = "value must not be empty"
	notGitHubRemoteErrorTemplateConstant  = "remote host %q is not %s"
	scpRewriteReplacementCountConstant    = 1
	emptyHostMessageConstant              = "remote url has no host"
	malformedSlugPathMessageConstant      = "remote path does not name owner/repository"
	trimmedOwnerOrRepositoryEmptyConstant = "owner and repository must not be empty"
)

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// NotGitHubRemoteError indicates the remote host does not belong to GitHub.
type NotGitHubRemoteError struct {
	Host string
}

// Error describes the host mismatch.
func (hostError NotGitHubRemoteError) Error() string {
	return fmt.Sprintf(notGitHubRemoteErrorTemplateConstant, hostError.Host, gitHubHostConstant)
}

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Host       string
	Owner      string
	Repository string
}

// Slug renders the owner/repository identifier embedded in GitHub web URLs.
func (remote RemoteURL) Slug() string {
	return remote.Owner + pathSeparatorConstant + remote.Repository
}

// ParseRemoteURL converts a textual remote URL into a structured representation.
//
// Scheme-less SSH syntax (git@host:owner/name) is rewritten into a parseable
// ssh:// URL by converting the first colon into a path separator.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	parsedRemote, parseError := url.Parse(trimmedRemote)
	if parseError != nil || len(parsedRemote.Host) == 0 {
		rewrittenRemote := sshProtocolPrefixConstant + strings.Replace(trimmedRemote, scpPathDelimiterConstant, pathSeparatorConstant, scpRewriteReplacementCountConstant)
		parsedRemote, parseError = url.Parse(rewrittenRemote)
		if parseError != nil {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
	}

	hostName := parsedRemote.Hostname()
	if len(hostName) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: emptyHostMessageConstant}
	}

	owner, repository, slugError := splitOwnerAndRepository(parsedRemote.Path)
	if slugError != nil {
		return RemoteURL{}, slugError
	}

	return RemoteURL{Host: hostName, Owner: owner, Repository: repository}, nil
}

// GitHubSlug derives the owner/repository slug from a remote URL, rejecting non-GitHub hosts.
func GitHubSlug(remote string) (string, error) {
	remoteURL, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return "", parseError
	}

	if !strings.EqualFold(remoteURL.Host, gitHubHostConstant) {
		return "", NotGitHubRemoteError{Host: remoteURL.Host}
	}

	return remoteURL.Slug(), nil
}

func splitOwnerAndRepository(remotePath string) (string, string, error) {
	trimmedPath := strings.TrimPrefix(remotePath, pathSeparatorConstant)
	trimmedPath = strings.TrimSuffix(trimmedPath, gitSuffixConstant)

	segments := strings.Split(trimmedPath, pathSeparatorConstant)
	if len(segments) != slugSegmentCountConstant {
		return "", "", RemoteURLParseError{Input: remotePath, Message: malformedSlugPathMessageConstant}
	}
	if len(segments[0]) == 0 || len(segments[1]) == 0 {
		return "", "", RemoteURLParseError{Input: remotePath, Message: trimmedOwnerOrRepositoryEmptyConstant}
	}

	return segments[0], segments[1], nil
}
