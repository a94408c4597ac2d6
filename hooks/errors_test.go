package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupError_Message(t *testing.T) {
	withSuggestion := &LookupError{Kind: LookupHelper, Name: "eech", Suggestion: "each"}
	assert.Equal(t, `unknown helper "eech" (did you mean "each"?)`, withSuggestion.Error())

	bare := &LookupError{Kind: LookupPartial, Name: "nav"}
	assert.Equal(t, `unknown partial "nav"`, bare.Error())

	keyword := &LookupError{Kind: LookupKeyword, Name: "yeild"}
	assert.Contains(t, keyword.Error(), "unknown keyword")
}

func TestStaleKeyError_Message(t *testing.T) {
	err := &StaleKeyError{Key: "row-7"}
	assert.Equal(t, "duplicate key row-7 in one reconciliation pass", err.Error())
}

func TestBestMatch(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		candidates []string
		want       string
	}{
		{"subsequence hit", "eac", []string{"each", "if", "unless"}, "each"},
		{"case folded", "EACH", []string{"each"}, "each"},
		{"no candidates", "anything", nil, ""},
		{"nothing close", "zzz", []string{"each", "if"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestMatch(tt.target, tt.candidates))
		})
	}
}
