package browse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghopen/internal/browse"
)

const (
	testSlugConstant = "o/n"
)

func TestTargetURLShapes(testInstance *testing.T) {
	testCases := []struct {
		name         string
		selection    browse.Selection
		expectedKind browse.TargetKind
		expectedURL  string
	}{
		{
			name:         "repo_root",
			selection:    browse.Selection{},
			expectedKind: browse.TargetRepoRoot,
			expectedURL:  "https://github.com/o/n",
		},
		{
			name:         "commit",
			selection:    browse.Selection{Revision: "abc123"},
			expectedKind: browse.TargetCommit,
			expectedURL:  "https://github.com/o/n/commit/abc123",
		},
		{
			name:         "tree_path",
			selection:    browse.Selection{Revision: "main", Path: "src/x.py"},
			expectedKind: browse.TargetTreePath,
			expectedURL:  "https://github.com/o/n/tree/main/src/x.py",
		},
		{
			name:         "tree_path_with_line",
			selection:    browse.Selection{Revision: "main", Path: "src/x.py", Line: "42"},
			expectedKind: browse.TargetTreePathWithLine,
			expectedURL:  "https://github.com/o/n/tree/main/src/x.py#L42",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			target, targetError := browse.NewTarget(testSlugConstant, testCase.selection)
			require.NoError(testInstance, targetError)
			require.Equal(testInstance, testCase.expectedKind, target.Kind)

			targetURL, urlError := target.URL()
			require.NoError(testInstance, urlError)
			require.Equal(testInstance, testCase.expectedURL, targetURL)
		})
	}
}

func TestNewTargetRejectsInvalidStates(testInstance *testing.T) {
	testCases := []struct {
		name          string
		slug          string
		selection     browse.Selection
		expectedError error
	}{
		{
			name:          "line_without_path",
			slug:          testSlugConstant,
			selection:     browse.Selection{Line: "5"},
			expectedError: browse.ErrInvalidCombination,
		},
		{
			name:          "path_without_revision",
			slug:          testSlugConstant,
			selection:     browse.Selection{Path: "src/x.py"},
			expectedError: browse.ErrPathWithoutRevision,
		},
		{
			name:          "missing_slug",
			slug:          "",
			selection:     browse.Selection{},
			expectedError: browse.ErrSlugRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, targetError := browse.NewTarget(testCase.slug, testCase.selection)
			require.ErrorIs(testInstance, targetError, testCase.expectedError)
		})
	}
}
