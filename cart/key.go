package cart

import (
	"sort"
	"strings"
)

// ComputeKey returns the identity key used to decide whether two line items
// represent the same purchasable thing. Option selections are canonicalized
// by sorting group names bytewise, so insertion order never changes the key.
// A nil selection and an empty one yield the same key.
func ComputeKey(productID string, options map[string]string) string {
	if len(options) == 0 {
		return productID
	}
	groups := make([]string, 0, len(options))
	for group := range options {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups)+1)
	parts = append(parts, productID)
	for _, group := range groups {
		parts = append(parts, group+":"+options[group])
	}
	return strings.Join(parts, "|")
}
