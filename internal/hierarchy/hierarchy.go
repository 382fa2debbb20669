// Package hierarchy infers the leaf/parent structure of a flat,
// code-addressed trial balance. A code is a leaf iff no other code in the
// same period strictly extends it.
package hierarchy

import (
	"sort"
)

// Leaves classifies every code in one period's code set. The input must be
// pre-deduplicated; duplicate detection happens upstream in the pipeline.
//
// After sorting, any strict extension of a code sorts immediately into the
// block that follows it, and every string between a code and one of its
// extensions shares the code as a prefix. So checking only the immediate
// successor is enough, which keeps this O(n log n) instead of the all-pairs
// scan.
func Leaves(codes []string) map[string]bool {
	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)

	isLeaf := make(map[string]bool, len(sorted))
	for i, code := range sorted {
		leaf := true
		if i+1 < len(sorted) {
			next := sorted[i+1]
			if len(next) > len(code) && next[:len(code)] == code {
				leaf = false
			}
		}
		isLeaf[code] = leaf
	}
	return isLeaf
}

// LeafCodes returns only the leaf codes, in the order they appear in codes.
func LeafCodes(codes []string) []string {
	isLeaf := Leaves(codes)
	var leaves []string
	for _, code := range codes {
		if isLeaf[code] {
			leaves = append(leaves, code)
		}
	}
	return leaves
}
