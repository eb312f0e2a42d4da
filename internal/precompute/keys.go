// Package precompute persists allocation snapshots to a types.Store.
//
// A snapshot for one category is spread over several keys so that each value
// stays small:
//
//	<prefix>.n.<category>      cluster count n
//	<prefix>.m.<category>.<i>  member IDs of cluster i
//	<prefix>.a.<category>.<i>  agent ID matched to cluster i
//	<prefix>.h.<category>      fingerprint of the site set
//
// Values are JSON encoded.
package precompute

import (
	"strconv"
	"strings"

	"github.com/arloliu/zoner/types"
)

// Keys builds the store keys of one category.
type Keys struct {
	prefix   string
	category string
}

// NewKeys creates the key builder for prefix and category.
func NewKeys(prefix string, category types.Category) Keys {
	return Keys{prefix: prefix, category: string(category)}
}

// Count returns the key holding the cluster count.
func (k Keys) Count() string {
	return k.join("n")
}

// Members returns the key holding the members of cluster i.
func (k Keys) Members(i int) string {
	return k.join("m", strconv.Itoa(i))
}

// Agent returns the key holding the agent matched to cluster i.
func (k Keys) Agent(i int) string {
	return k.join("a", strconv.Itoa(i))
}

// Fingerprint returns the key holding the site fingerprint.
func (k Keys) Fingerprint() string {
	return k.join("h")
}

func (k Keys) join(kind string, rest ...string) string {
	parts := make([]string, 0, 3+len(rest))
	parts = append(parts, k.prefix, kind, k.category)
	parts = append(parts, rest...)

	return strings.Join(parts, ".")
}
