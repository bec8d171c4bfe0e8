package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/objdoc/format"
)

func sample() *Node {
	root := NewElement(format.XMLFormat, "p:Order")
	root.Append(NewAttribute("id", "7"))
	lines := NewArray(format.XMLFormat, "Lines")
	lines.Append(NewValue(format.XMLFormat, "Line", Str("a"), StringType))
	lines.Append(NewNull(format.XMLFormat, "Line"))
	root.Append(lines)
	return root
}

func TestAppend(t *testing.T) {
	root := sample()
	if len(root.Attributes) != 1 || len(root.Children) != 1 {
		t.Fatalf("unexpected shape: %d attrs %d children", len(root.Attributes), len(root.Children))
	}
	lines := root.Child("Lines")
	if lines == nil {
		t.Fatal("no Lines child")
	}
	if lines.Children[1].ParentIndex != 1 || lines.Children[1].Parent != lines {
		t.Error("parent links not set")
	}
	if root.Attr("id") == nil {
		t.Error("no id attr")
	}
}

func TestPath(t *testing.T) {
	root := sample()
	got := root.Child("Lines").Children[0].Path()
	if got != "/Order/Lines/Line" {
		t.Errorf("got %q", got)
	}
	if p := root.Attr("id").Path(); p != "/Order/id" {
		t.Errorf("got %q", p)
	}
}

func TestIsNull(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"self-closing", NewNull(format.XMLFormat, "a"), true},
		{"empty pair", NewValue(format.XMLFormat, "a", Str(""), StringType), false},
		{"empty container", NewElement(format.XMLFormat, "a"), true},
		{"text", NewValue(format.XMLFormat, "a", Str("x"), StringType), false},
		{"json empty string", NewValue(format.JSONFormat, "a", Str(""), StringType), false},
		{"json null", NewNull(format.JSONFormat, "a"), true},
		{"with attr", NewElement(format.XMLFormat, "a").Append(NewAttribute("b", "c")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsNull(); got != tt.want {
				t.Errorf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	root := sample()
	c := root.Clone()
	if !Equal(root, c) {
		t.Fatal("clone not equal")
	}
	opts := cmpopts.IgnoreFields(Node{}, "Parent")
	if diff := cmp.Diff(root, c, opts); diff != "" {
		t.Errorf("clone differs (-want +got):\n%s", diff)
	}
	*c.Child("Lines").Children[0].Text = "b"
	if Equal(root, c) {
		t.Error("clone shares text with original")
	}
}

func TestCompareText(t *testing.T) {
	a := NewNull(format.XMLFormat, "a")
	b := NewValue(format.XMLFormat, "a", Str(""), StringType)
	if Compare(a, b) != -1 {
		t.Error("null text should sort before empty text")
	}
}
