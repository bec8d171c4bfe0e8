// Package typeinfo classifies Go types for the serializer and deserializer.
//
// Every type falls into one Category: Simple (a value.Kind), Nullable (a
// pointer to something else), Enumerable (slices and arrays), Dictionary
// (maps), Complex (structs, walked field by field), Dynamic (interfaces,
// resolved from the runtime value) or Passthrough (*ir.Node, copied as is).
//
// Struct fields are described by Field, which honors `objdoc` struct tags:
//
//	type Order struct {
//	    _     struct{} `objdoc:"root=PurchaseOrder"`
//	    ID    int      `objdoc:"attr"`
//	    Lines []Line   `objdoc:"name=Items,item=Item"`
//	    Notes string   `objdoc:"-"`
//	}
//
// Classification is memoized per Classifier and safe for concurrent use.
package typeinfo
