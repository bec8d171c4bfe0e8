package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two trees.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Parent links, namespaces and formats are not compared.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := strings.Compare(a.LocalName(), b.LocalName()); c != 0 {
		return c
	}
	if c := compareText(a.Text, b.Text); c != 0 {
		return c
	}
	if c := compareNodes(a.Attributes, b.Attributes); c != 0 {
		return c
	}
	return compareNodes(a.Children, b.Children)
}

func compareText(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

func compareNodes(a, b []*Node) int {
	n := min(len(a), len(b))
	for i := range n {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Equal reports whether two trees have the same names, text and structure.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
