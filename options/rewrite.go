package options

import "github.com/signadot/objdoc/ir"

// Rewrite runs the NodeWriters over an existing tree, such as one read by
// the parse package. Nodes are visited children first, attributes before
// elements, like the serializer does. Value is not set in the context.
func (o *Options) Rewrite(root *ir.Node) error {
	if len(o.NodeWriters) == 0 {
		return nil
	}
	var order []*ir.Node
	var rec func(*ir.Node)
	rec = func(n *ir.Node) {
		order = append(order, n.Attributes...)
		for _, c := range n.Children {
			rec(c)
		}
		order = append(order, n)
	}
	rec(root)
	for _, n := range order {
		ctx := &WriterContext{Options: o, Node: n, Path: n.Path(), Root: n == root}
		for _, nw := range o.NodeWriters {
			if err := nw(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
