package ancestry

import (
	"reflect"
	"testing"
)

type node struct {
	Name string
	Next *node
}

func TestContainsByIdentity(t *testing.T) {
	a := &node{Name: "a"}
	b := &node{Name: "a"}
	c := Root(reflect.ValueOf(a), "node")
	if !c.Contains(reflect.ValueOf(a)) {
		t.Error("expected a on chain")
	}
	if c.Contains(reflect.ValueOf(b)) {
		t.Error("equal but distinct value matched")
	}
	if c.Contains(reflect.ValueOf(*a)) {
		t.Error("struct value has no identity")
	}
	var boxed any = a
	if !c.Contains(reflect.ValueOf(&boxed).Elem()) {
		t.Error("interface holding a should match")
	}
}

func TestAddressableStructIdentity(t *testing.T) {
	type pair struct {
		First  node
		Second node
	}
	p := &pair{}
	first := reflect.ValueOf(p).Elem().Field(0)
	c := Root(reflect.ValueOf(p), "pair").Push(first, "First")
	if !c.Contains(reflect.ValueOf(&p.First)) {
		t.Error("pointer to an enclosing struct field not matched")
	}
	if c.Contains(reflect.ValueOf(&p.Second)) {
		t.Error("sibling field matched")
	}
	if c.Contains(reflect.ValueOf(&p.First.Name)) {
		t.Error("field at the same address but of another type matched")
	}
}

func TestSiblingsDoNotShare(t *testing.T) {
	a, b, x := &node{}, &node{}, &node{}
	root := Root(reflect.ValueOf(x), "Root")
	left := root.Push(reflect.ValueOf(a), "Left")
	right := root.Push(reflect.ValueOf(b), "Right")
	if right.Contains(reflect.ValueOf(a)) {
		t.Error("sibling extension visible")
	}
	if !left.Contains(reflect.ValueOf(x)) || !right.Contains(reflect.ValueOf(x)) {
		t.Error("shared prefix missing")
	}
	if got := left.Path(); got != "/Root/Left" {
		t.Errorf("path %q", got)
	}
	if !root.IsRoot() || left.IsRoot() {
		t.Error("IsRoot")
	}
}

func TestSliceAndMapIdentity(t *testing.T) {
	s := []int{1, 2, 3}
	m := map[string]int{"a": 1}
	c := Root(reflect.ValueOf(s), "s").Push(reflect.ValueOf(m), "m")
	if !c.Contains(reflect.ValueOf(s)) || !c.Contains(reflect.ValueOf(m)) {
		t.Error("slice or map not found")
	}
	if c.Contains(reflect.ValueOf(s[:2])) {
		t.Error("subslice should have a distinct identity")
	}
	if c.Contains(reflect.ValueOf([]int(nil))) {
		t.Error("nil slice matched")
	}
}

func TestEmptyChain(t *testing.T) {
	var c *Chain
	if c.Path() != "/" || c.Depth() != 0 || c.Contains(reflect.ValueOf(&node{})) {
		t.Error("empty chain misbehaves")
	}
}
