package pingfederate

import "fmt"

// Classify inspects a raw introspection response for error markers and
// required fields, returning a normalized copy of the attributes on success.
// The checks run in a fixed order: an error field always wins over
// missing-field checks, because provider error responses may omit every
// other field. In the returned copy the scope value is replaced by its
// parsed ScopeSet; all other keys pass through untouched.
func Classify(attrs map[string]any) (map[string]any, error) {
	if v, ok := attrs[errorKey]; ok {
		return nil, &InvalidTokenError{Reason: fmt.Sprint(v)}
	}

	if _, ok := attrs[clientIDKey]; !ok {
		return nil, &InvalidTokenError{Reason: "missing client id"}
	}

	raw, ok := attrs[scopeKey]
	if !ok {
		return nil, &InvalidTokenError{Reason: "missing scope"}
	}

	scopes, err := ParseScopes(raw)
	if err != nil {
		return nil, err
	}

	clean := make(map[string]any, len(attrs))
	for k, v := range attrs {
		clean[k] = v
	}
	clean[scopeKey] = scopes
	return clean, nil
}
