package pingfederate

import "fmt"

// Authentication is the validated principal produced by a successful token
// check. It is handed to the caller and never mutated afterwards.
type Authentication struct {
	// Principal is the identity the token resolves to (the provider's client_id).
	Principal string `json:"principal"`
	// Authorities is the set of scopes granted to the token.
	Authorities ScopeSet `json:"-"`
	// Attributes is the full normalized attribute mapping from the provider,
	// retained for downstream consumption.
	Attributes map[string]any `json:"attributes"`
}

// buildAuthentication assembles an Authentication from attributes that
// already passed classification. Classification guarantees the client id is
// present and the scope value is a parsed ScopeSet, so this never fails.
func buildAuthentication(attrs map[string]any) *Authentication {
	return &Authentication{
		Principal:   fmt.Sprint(attrs[clientIDKey]),
		Authorities: attrs[scopeKey].(ScopeSet),
		Attributes:  attrs,
	}
}
