// Package log holds shared helpers for the jsonmapper.Logger adapters in its
// subpackages.
package log

import (
	"sort"

	"github.com/unkn0wn-root/jsonmapper"
)

// SortedKeys returns the keys of f in ascending order so adapters emit
// fields deterministically.
func SortedKeys(f jsonmapper.Fields) []string {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
