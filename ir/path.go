package ir

import "strings"

// Path returns the location of y as the '/'-joined names from the root, for
// example "/Order/Lines/Line/Quantity".
func (y *Node) Path() string {
	var names []string
	for x := y; x != nil; x = x.Parent {
		names = append(names, x.LocalName())
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(names[i])
	}
	return sb.String()
}

// JoinPath appends name to a location path.
func JoinPath(parent, name string) string {
	return parent + "/" + name
}
