package pingfederate

import (
	"encoding/json"
	"sort"
	"strings"
)

// ScopeSet is the set of scopes granted to a token. Downstream authority
// checks are membership tests; ordering is not significant.
type ScopeSet map[string]struct{}

// Has reports whether the set contains the given scope.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// Values returns the scopes as a sorted slice, for stable logging and
// JSON encoding.
func (s ScopeSet) Values() []string {
	values := make([]string, 0, len(s))
	for scope := range s {
		values = append(values, scope)
	}
	sort.Strings(values)
	return values
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s ScopeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// ParseScopes normalizes a provider-supplied scope value into a ScopeSet.
// The value must be a non-blank string of space-separated scopes; anything
// else is an InvalidTokenError. Empty fragments from repeated spaces are
// discarded.
func ParseScopes(value any) (ScopeSet, error) {
	scopes, ok := value.(string)
	if !ok {
		return nil, &InvalidTokenError{Reason: "scope was not a string"}
	}

	if strings.TrimSpace(scopes) == "" {
		return nil, &InvalidTokenError{Reason: "no scopes found"}
	}

	set := make(ScopeSet)
	for _, scope := range strings.Split(scopes, " ") {
		if scope != "" {
			set[scope] = struct{}{}
		}
	}
	return set, nil
}
