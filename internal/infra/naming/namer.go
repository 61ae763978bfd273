// Package naming implements deterministic, human-readable alias generation.
package naming

import (
	"hash/fnv"
	"strconv"
	"strings"

	"plunder/internal/domain/service"
)

// Curated word lists. Aliases are "<epithet> <figure>", picked by a stable hash
// of the input text, so the same real name always proposes the same alias. The
// lists are fixed: changing them would silently change every proposed alias.
var epithets = []string{
	"Salty", "Rusty", "Gilded", "Crimson", "Stormy", "Jolly", "Grim",
	"Sly", "Bold", "Drowsy", "Iron", "Velvet", "Feral", "Lucky",
	"Misty", "Ashen", "Brazen", "Quiet", "Wild", "Ancient", "Swift",
	"Hollow", "Amber", "Frozen", "Restless", "Scarlet", "Dusky", "Keen",
}

var figures = []string{
	"Kraken", "Cutlass", "Compass", "Galleon", "Anchor", "Corsair",
	"Marauder", "Seagull", "Barnacle", "Doubloon", "Sextant", "Harpoon",
	"Lantern", "Tempest", "Buccaneer", "Spyglass", "Moray", "Albatross",
	"Gunwale", "Crow", "Siren", "Tide", "Reef", "Plank",
	"Jib", "Keel", "Maelstrom", "Gale", "Drake", "Wharf",
}

// wordNamer is a concrete implementation of the AliasNamer interface.
type wordNamer struct{}

// NewWordNamer is the constructor for wordNamer.
// It returns the implementation as a service.AliasNamer interface.
func NewWordNamer() service.AliasNamer {
	return &wordNamer{}
}

// ProposeAlias maps the text deterministically into the two word lists. The
// namespace participates in the hash, so participant and item proposals for the
// same text differ.
func (n *wordNamer) ProposeAlias(text string, namespace service.AliasNamespace) string {
	h := fnv.New64a()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(text)))
	sum := h.Sum64()

	epithet := epithets[sum%uint64(len(epithets))]
	figure := figures[(sum/uint64(len(epithets)))%uint64(len(figures))]

	return epithet + " " + figure
}

// WithSuffix derives the nth deterministic fallback for a colliding base alias.
// Counters rather than fresh randomness keep issuance reproducible.
func (n *wordNamer) WithSuffix(base string, nth int) string {
	return base + " " + strconv.Itoa(nth)
}
