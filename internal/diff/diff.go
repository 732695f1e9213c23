// Package diff computes listing identities and the new-since-last-run subset.
package diff

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
)

// Fingerprint returns the identity hash for a listing: md5 over the
// lowercased, trimmed title and employer concatenated. Location and link are
// deliberately excluded so cosmetic differences between runs collapse to the
// same identity.
func Fingerprint(title, employer string) string {
	key := strings.ToLower(strings.TrimSpace(title)) + strings.ToLower(strings.TrimSpace(employer))
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// NewListings returns the entries of current whose fingerprint does not appear
// in previous, preserving current's order. An empty previous set means every
// current listing is new; that is the first-run bootstrap case, not an error.
func NewListings(current, previous []domain.Listing) []domain.Listing {
	seen := make(map[string]bool, len(previous))
	for _, l := range previous {
		seen[l.Fingerprint] = true
	}

	var fresh []domain.Listing
	for _, l := range current {
		if !seen[l.Fingerprint] {
			fresh = append(fresh, l)
		}
	}
	return fresh
}
