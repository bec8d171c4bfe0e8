package serialize

import (
	"strings"

	"github.com/signadot/objdoc/ir"
)

// dump renders a tree compactly: Name[@attr=v]{children} or Name=text.
func dump(n *ir.Node) string {
	var sb strings.Builder
	dumpTo(&sb, n)
	return sb.String()
}

func dumpTo(sb *strings.Builder, n *ir.Node) {
	sb.WriteString(n.Name)
	for _, a := range n.Attributes {
		sb.WriteString("[@" + a.Name + "=" + *a.Text + "]")
	}
	if n.IsValue() {
		if n.Text == nil {
			sb.WriteString("=<null>")
			return
		}
		sb.WriteString("=" + *n.Text)
		return
	}
	sb.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		dumpTo(sb, c)
	}
	sb.WriteByte('}')
}
