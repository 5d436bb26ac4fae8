package browse

import (
	"errors"
	"fmt"
)

const (
	gitHubBaseURLConstant               = "https://github.com"
	repoRootURLTemplateConstant         = "%s/%s"
	commitURLTemplateConstant           = "%s/%s/commit/%s"
	treePathURLTemplateConstant         = "%s/%s/tree/%s/%s"
	treePathWithLineURLTemplateConstant = "%s/%s/tree/%s/%s#L%s"
	lineWithoutPathMessageConstant      = "a line number requires a path"
	slugRequiredMessageConstant         = "repository slug must be provided"
	unknownTargetKindTemplateConstant   = "unknown target kind %d"
	pathWithoutRevisionMessageConstant  = "a path requires a revision"
)

// ErrInvalidCombination indicates a line number was supplied without a path.
var ErrInvalidCombination = errors.New(lineWithoutPathMessageConstant)

// ErrSlugRequired indicates a Target was constructed without a repository slug.
var ErrSlugRequired = errors.New(slugRequiredMessageConstant)

// ErrPathWithoutRevision indicates a path reached Target construction without a synthesized revision.
var ErrPathWithoutRevision = errors.New(pathWithoutRevisionMessageConstant)

// TargetKind enumerates the URL shapes the composer can produce.
type TargetKind int

// Exactly one kind applies per invocation.
const (
	TargetRepoRoot TargetKind = iota
	TargetCommit
	TargetTreePath
	TargetTreePathWithLine
)

// Target couples a repository slug with the selection fields its kind requires.
type Target struct {
	Kind     TargetKind
	Slug     string
	Revision string
	Path     string
	Line     string
}

// NewTarget validates a selection against the slug and computes the URL shape that applies.
func NewTarget(slug string, selection Selection) (Target, error) {
	if len(slug) == 0 {
		return Target{}, ErrSlugRequired
	}

	hasRevision := len(selection.Revision) > 0
	hasPath := len(selection.Path) > 0
	hasLine := len(selection.Line) > 0

	if hasLine && !hasPath {
		return Target{}, ErrInvalidCombination
	}
	if hasPath && !hasRevision {
		return Target{}, ErrPathWithoutRevision
	}

	target := Target{Slug: slug, Revision: selection.Revision, Path: selection.Path, Line: selection.Line}
	switch {
	case hasLine:
		target.Kind = TargetTreePathWithLine
	case hasPath:
		target.Kind = TargetTreePath
	case hasRevision:
		target.Kind = TargetCommit
	default:
		target.Kind = TargetRepoRoot
	}

	return target, nil
}

// URL renders the browser-openable address for the target.
func (target Target) URL() (string, error) {
	switch target.Kind {
	case TargetRepoRoot:
		return fmt.Sprintf(repoRootURLTemplateConstant, gitHubBaseURLConstant, target.Slug), nil
	case TargetCommit:
		return fmt.Sprintf(commitURLTemplateConstant, gitHubBaseURLConstant, target.Slug, target.Revision), nil
	case TargetTreePath:
		return fmt.Sprintf(treePathURLTemplateConstant, gitHubBaseURLConstant, target.Slug, target.Revision, target.Path), nil
	case TargetTreePathWithLine:
		return fmt.Sprintf(treePathWithLineURLTemplateConstant, gitHubBaseURLConstant, target.Slug, target.Revision, target.Path, target.Line), nil
	default:
		return "", fmt.Errorf(unknownTargetKindTemplateConstant, target.Kind)
	}
}
