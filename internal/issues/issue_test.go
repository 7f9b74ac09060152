package issues

import (
	"testing"

	"github.com/erraggy/oasderef/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string // Strings that must be present in output
		notContains []string // Strings that must NOT be present in output
	}{
		{
			name: "error severity with ref",
			issue: Issue{
				Path:     "/paths/~1pets/get",
				Message:  "pointer not found",
				Severity: severity.SeverityError,
				Ref:      "common.json#/responses/NotFound",
			},
			contains: []string{
				"✗",
				"/paths/~1pets/get",
				`[$ref "common.json#/responses/NotFound"]`,
				"pointer not found",
			},
			notContains: []string{"(in "},
		},
		{
			name: "warning severity",
			issue: Issue{
				Path:     "/definitions/Pet",
				Message:  "$refIncludes must be an array of strings",
				Severity: severity.SeverityWarning,
				Keyword:  "$refIncludes",
			},
			contains:    []string{"⚠", "/definitions/Pet", "$refIncludes must be"},
			notContains: []string{"[$ref", "(in "},
		},
		{
			name: "info severity in loaded document",
			issue: Issue{
				Path:     "/definitions/Error",
				Message:  "promoted into root",
				Severity: severity.SeverityInfo,
				Document: "file:///lib/common.json",
			},
			contains:    []string{"ℹ /definitions/Error (in file:///lib/common.json): promoted into root"},
			notContains: []string{"common.json#"},
		},
		{
			name: "debug severity at the root",
			issue: Issue{
				Message:  "cache hit",
				Severity: severity.SeverityDebug,
				Ref:      "lib.json",
			},
			contains: []string{`· / [$ref "lib.json"]: cache hit`},
		},
		{
			name:     "unknown severity",
			issue:    Issue{Path: "/a", Message: "m", Severity: severity.Severity(42)},
			contains: []string{"? /a: m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.issue.String()
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, result, unwanted)
			}
		})
	}
}

func TestIssueLocation(t *testing.T) {
	assert.Equal(t, "/", Issue{}.Location())
	assert.Equal(t, "/a/b", Issue{Path: "/a/b"}.Location())
	assert.Equal(t, "/a", Issue{Path: "/a", Document: "file:///x.json"}.Location())
}

func TestCountAndFilter(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityDebug, Message: "d"},
		{Severity: severity.SeverityError, Message: "e1"},
		{Severity: severity.SeverityWarning, Message: "w"},
		{Severity: severity.SeverityError, Message: "e2"},
	}

	assert.Equal(t, 2, Count(list, severity.SeverityError))
	assert.Equal(t, 1, Count(list, severity.SeverityWarning))
	assert.Equal(t, 0, Count(list, severity.SeverityInfo))

	got := Filter(list, severity.SeverityWarning)
	if assert.Len(t, got, 3) {
		assert.Equal(t, "e1", got[0].Message)
		assert.Equal(t, "w", got[1].Message)
		assert.Equal(t, "e2", got[2].Message)
	}
	assert.True(t, got[0].IsError())
	assert.False(t, got[1].IsError())
}
