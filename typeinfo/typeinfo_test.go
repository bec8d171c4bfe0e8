package typeinfo

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/value"
)

type Base struct {
	ID      int `objdoc:"attr"`
	Created time.Time
}

type Opaque struct {
	Secret string
}

type Order struct {
	_ struct{} `objdoc:"root=PurchaseOrder"`
	Base
	Lines   []string `objdoc:"name=Items,item=Item"`
	Skip    string   `objdoc:"-"`
	Omitted string   `objdoc:"omit"`
	Handler func()
	Hidden  *Opaque
	Extra   any
	Raw     *ir.Node
	private int
}

type Box[T any] struct {
	Value T
}

type Node struct {
	Name string
	Next *Node
}

func TestClassify(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		v    any
		want CategoryKind
	}{
		{1, Simple},
		{new(int), Nullable},
		{[]int{}, Enumerable},
		{[2]int{}, Enumerable},
		{map[int]string{}, Dictionary},
		{Order{}, Complex},
		{&Node{}, Nullable},
		{(*any)(nil), Nullable},
		{&ir.Node{}, Passthrough},
	}
	for _, tt := range tests {
		typ := reflect.TypeOf(tt.v)
		t.Run(typ.String(), func(t *testing.T) {
			cat, err := c.Classify(typ)
			if err != nil {
				t.Fatal(err)
			}
			if cat.Kind != tt.want {
				t.Errorf("got %v want %v", cat.Kind, tt.want)
			}
		})
	}
	cat, err := c.Classify(reflect.TypeFor[any]())
	if err != nil || cat.Kind != Dynamic {
		t.Errorf("any: got %v %v", cat, err)
	}
	cat, err = c.Classify(reflect.TypeFor[*int32]())
	if err != nil {
		t.Fatal(err)
	}
	if cat.Inner.Kind != Simple || cat.Base().Value != value.IntegerKind {
		t.Errorf("nullable inner: %+v", cat.Inner)
	}
	if _, err := c.Classify(reflect.TypeFor[chan int]()); err == nil {
		t.Error("expected chan to be unsupported")
	}
}

func TestFields(t *testing.T) {
	c := NewClassifier(reflect.TypeFor[Opaque]())
	cat, err := c.Classify(reflect.TypeFor[Order]())
	if err != nil {
		t.Fatal(err)
	}
	if cat.RootName != "PurchaseOrder" {
		t.Errorf("root name %q", cat.RootName)
	}
	type summary struct {
		Name, GoName, Item string
		Attr               bool
		Index              []int
	}
	var got []summary
	for _, f := range cat.Fields {
		got = append(got, summary{f.Name, f.GoName, f.ItemName, f.Attr, f.Index})
	}
	want := []summary{
		{"ID", "ID", "", true, []int{1, 0}},
		{"Created", "Created", "", false, []int{1, 1}},
		{"Items", "Lines", "Item", false, []int{2}},
		{"Extra", "Extra", "", false, []int{7}},
		{"Raw", "Raw", "", false, []int{8}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

type shadow struct {
	Base
	ID string
}

type conflictA struct{ Name string }
type conflictB struct{ Name string }
type conflict struct {
	conflictA
	conflictB
}

func TestFieldShadowing(t *testing.T) {
	c := NewClassifier()
	cat, err := c.Classify(reflect.TypeFor[shadow]())
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Fields) != 2 || cat.Fields[1].Name != "ID" || cat.Fields[1].Type.Kind() != reflect.String {
		t.Errorf("unexpected fields %+v", cat.Fields)
	}
	if _, err := c.Classify(reflect.TypeFor[conflict]()); err == nil {
		t.Error("expected conflict error")
	}
}

func TestFieldGetSet(t *testing.T) {
	type Inner struct{ X int }
	type Outer struct {
		*Inner
	}
	c := NewClassifier()
	cat, err := c.Classify(reflect.TypeFor[Outer]())
	if err != nil {
		t.Fatal(err)
	}
	f := cat.Fields[0]
	var o Outer
	if f.Get(reflect.ValueOf(o)).IsValid() {
		t.Error("expected invalid value through nil embedded pointer")
	}
	f.Settable(reflect.ValueOf(&o).Elem()).SetInt(3)
	if o.Inner == nil || o.X != 3 {
		t.Errorf("got %+v", o)
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := NewClassifier()
	var wg sync.WaitGroup
	res := make([]*Category, 16)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cat, err := c.Classify(reflect.TypeFor[Order]())
			if err != nil {
				t.Error(err)
			}
			res[i] = cat
		}()
	}
	wg.Wait()
	for _, cat := range res[1:] {
		if cat != res[0] {
			t.Fatal("classification not memoized")
		}
	}
}

func TestTypeName(t *testing.T) {
	n := Naming{}
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[int](), "Int"},
		{reflect.TypeFor[*string](), "String"},
		{reflect.TypeFor[Order](), "Order"},
		{reflect.TypeFor[[]int](), "ArrayOfInt"},
		{reflect.TypeFor[[][]Order](), "ArrayOfArrayOfOrder"},
		{reflect.TypeFor[map[int]string](), "ArrayOfKeyValuePairOfIntString"},
		{reflect.TypeFor[any](), "Object"},
		{reflect.TypeFor[Box[int]](), "BoxOfInt"},
		{reflect.TypeFor[Box[Order]](), "BoxOfOrder"},
		{reflect.TypeFor[Box[[]Order]](), "BoxOfArrayOfOrder"},
		{reflect.TypeFor[Box[map[string]int]](), "BoxOfArrayOfKeyValuePairOfStringInt"},
	}
	for _, tt := range tests {
		if got := n.TypeName(tt.typ); got != tt.want {
			t.Errorf("%s: got %q want %q", tt.typ, got, tt.want)
		}
	}
	custom := Naming{GenericType: "{0}_{1}", GenericList: "ListOf{0}"}
	if got := custom.TypeName(reflect.TypeFor[map[int]string]()); got != "ListOfKeyValuePair_IntString" {
		t.Errorf("custom templates: got %q", got)
	}
}

func TestParseStructTag(t *testing.T) {
	got, err := ParseStructTag(`name=Foo, attr item='Line Item'`)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"name": "Foo", "attr": "", "item": "Line Item"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ParseStructTag(`name='x`); err == nil {
		t.Error("expected unterminated quote error")
	}
	if _, err := ParseStructTag(`=x`); err == nil {
		t.Error("expected empty key error")
	}
}
