package service

// AliasNamespace scopes alias proposals. Participant and item aliases live in
// independent namespaces within a campaign, so the same real text may propose
// different aliases per namespace.
type AliasNamespace string

const (
	// NamespacePirate scopes participant aliases.
	NamespacePirate AliasNamespace = "pirate"
	// NamespaceItem scopes item aliases.
	NamespaceItem AliasNamespace = "item"
)

// String returns the string representation of the AliasNamespace.
func (n AliasNamespace) String() string {
	return string(n)
}

// IsValid checks if the AliasNamespace is a valid value.
func (n AliasNamespace) IsValid() bool {
	switch n {
	case NamespacePirate, NamespaceItem:
		return true
	default:
		return false
	}
}

// AliasNamer proposes human-readable aliases for real names. Proposals are a
// deterministic function of the input text and namespace (a stable hash into
// fixed word lists, not randomness), so the same real name always proposes the
// same alias. Collision handling is the caller's concern.
type AliasNamer interface {
	// ProposeAlias returns the deterministic base alias for the given text.
	ProposeAlias(text string, namespace AliasNamespace) string

	// WithSuffix derives the nth deterministic fallback for a colliding base
	// alias, n starting at 2.
	WithSuffix(base string, n int) string
}
