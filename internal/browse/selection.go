package browse

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const (
	lineTokenPatternConstant                = `^\+[0-9]+$`
	lineTokenPrefixConstant                 = "+"
	ambiguousSelectionErrorTemplateConstant = "only one %s may be provided (got %s)"
	ambiguousCandidateSeparatorConstant     = ", "
	selectionKindRevisionConstant           = "revision"
	selectionKindPathConstant               = "path"
	selectionKindLineConstant               = "line number"
)

var lineTokenExpression = regexp.MustCompile(lineTokenPatternConstant)

// Selection captures the optional revision, path, and line number extracted from command arguments.
//
// A non-empty Line implies a non-empty Path; the invariant is enforced when a
// Target is constructed.
type Selection struct {
	Revision string
	Path     string
	Line     string
}

// AmbiguousSelectionError reports more than one candidate for a single selection slot.
type AmbiguousSelectionError struct {
	Kind       string
	Candidates []string
}

// Error describes which selection slot received too many candidates.
func (selectionError AmbiguousSelectionError) Error() string {
	return fmt.Sprintf(
		ambiguousSelectionErrorTemplateConstant,
		selectionError.Kind,
		strings.Join(selectionError.Candidates, ambiguousCandidateSeparatorConstant),
	)
}

// TokenClassifier separates free-form tokens into revisions and paths using git's own disambiguation rules.
type TokenClassifier interface {
	ClassifyRevisions(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error)
	ClassifyPaths(executionContext context.Context, repositoryPath string, tokens []string) ([]string, error)
}

// ResolveSelection classifies command-line tokens into at most one revision, one path, and one line number.
func ResolveSelection(executionContext context.Context, classifier TokenClassifier, repositoryPath string, tokens []string) (Selection, error) {
	var lineCandidates []string
	var remainingTokens []string
	for _, token := range tokens {
		if lineTokenExpression.MatchString(token) {
			lineCandidates = append(lineCandidates, token)
			continue
		}
		remainingTokens = append(remainingTokens, token)
	}

	revisionCandidates, revisionError := classifier.ClassifyRevisions(executionContext, repositoryPath, remainingTokens)
	if revisionError != nil {
		return Selection{}, revisionError
	}

	pathCandidates, pathError := classifier.ClassifyPaths(executionContext, repositoryPath, remainingTokens)
	if pathError != nil {
		return Selection{}, pathError
	}

	if len(revisionCandidates) > 1 {
		return Selection{}, AmbiguousSelectionError{Kind: selectionKindRevisionConstant, Candidates: revisionCandidates}
	}
	if len(pathCandidates) > 1 {
		return Selection{}, AmbiguousSelectionError{Kind: selectionKindPathConstant, Candidates: pathCandidates}
	}
	if len(lineCandidates) > 1 {
		return Selection{}, AmbiguousSelectionError{Kind: selectionKindLineConstant, Candidates: lineCandidates}
	}

	selection := Selection{}
	if len(revisionCandidates) == 1 {
		selection.Revision = revisionCandidates[0]
	}
	if len(pathCandidates) == 1 {
		selection.Path = pathCandidates[0]
	}
	if len(lineCandidates) == 1 {
		selection.Line = strings.TrimPrefix(lineCandidates[0], lineTokenPrefixConstant)
	}

	return selection, nil
}
