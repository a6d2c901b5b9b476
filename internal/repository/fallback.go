package repository

import "net/http"

// writeStrategy is a pure descriptor of one way to phrase a partial update:
// the HTTP verb and whether the patch rides inside the resource envelope.
type writeStrategy struct {
	Verb    string
	Wrapped bool
}

// updateFallbackChain is the ordered dialect sequence for partial updates.
// Backend deployments differ in which verbs and payload shapes they accept,
// so the repository tries each in turn and short-circuits on success:
//
//  1. PUT with the raw patch body
//  2. PATCH with the raw patch body
//  3. PATCH with the patch wrapped as {resource:[patch]}
//
// Each attempt is an independent transport call. Intermediate failures are
// swallowed; exhausting the chain surfaces the last error.
var updateFallbackChain = []writeStrategy{
	{Verb: http.MethodPut, Wrapped: false},
	{Verb: http.MethodPatch, Wrapped: false},
	{Verb: http.MethodPatch, Wrapped: true},
}

// body shapes the patch payload for the strategy.
func (s writeStrategy) body(patch map[string]any) any {
	if s.Wrapped {
		return resourceEnvelope{Resource: []map[string]any{patch}}
	}
	return patch
}

// truncatedRow reports whether a write echo carries only the identifier
// (two or fewer keys), meaning the authoritative record must be refetched.
func truncatedRow(row map[string]any) bool {
	return len(row) <= 2
}
