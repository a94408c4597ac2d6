package hooks

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LookupKind says what a failed lookup expected to find.
type LookupKind int

const (
	LookupHelper LookupKind = iota
	LookupPartial
	LookupKeyword
)

func (k LookupKind) String() string {
	switch k {
	case LookupHelper:
		return "helper"
	case LookupPartial:
		return "partial"
	case LookupKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// LookupError reports a failed helper, partial, or keyword resolution.
// Path resolution never produces one - missing path segments degrade to nil -
// but helper and partial lookup is a hard failure by convention, so the
// dispatcher surfaces it with the name and, when a registered name is close
// enough, a suggestion.
type LookupError struct {
	Kind       LookupKind
	Name       string
	Suggestion string
}

func (e *LookupError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.Kind, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// StaleKeyError reports a key supplied twice to the keyed reconciler within
// one pass. Duplicate keys would orphan a morph that is still linked in the
// list, so the pass is rejected instead of overwriting.
type StaleKeyError struct {
	Key interface{}
}

func (e *StaleKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v in one reconciliation pass", e.Key)
}

// bestMatch finds the closest registered name using fuzzy matching. Empty
// string means nothing came close.
func bestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
