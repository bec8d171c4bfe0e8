package typeinfo

import (
	"fmt"
	"reflect"
)

// Field describes one walkable struct field.
type Field struct {
	// GoName is the struct field name.
	GoName string
	// Name is the element or attribute name, from name= or GoName.
	Name string
	// ItemName overrides the element name of collection items (item=).
	ItemName string
	// Attr renders a simple value as an XML attribute.
	Attr bool

	Index []int
	Type  reflect.Type
	depth int
}

// Get returns the field of struct value v, or an invalid Value if an
// embedded pointer on the way is nil.
func (f *Field) Get(v reflect.Value) reflect.Value {
	for i, x := range f.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// Settable returns the field of addressable struct value v, allocating
// embedded pointers as needed.
func (f *Field) Settable(v reflect.Value) reflect.Value {
	for i, x := range f.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

type fieldTag struct {
	omit     bool
	name     string
	item     string
	attr     bool
	root     string
	hasFlags bool
}

func parseFieldTag(sf reflect.StructField) (fieldTag, error) {
	raw, ok := sf.Tag.Lookup(tagKey)
	if !ok {
		return fieldTag{}, nil
	}
	if raw == "-" {
		return fieldTag{omit: true}, nil
	}
	parsed, err := ParseStructTag(raw)
	if err != nil {
		return fieldTag{}, fmt.Errorf("field %s: %w", sf.Name, err)
	}
	ft := fieldTag{hasFlags: len(parsed) != 0}
	for k, v := range parsed {
		switch k {
		case "-", "omit":
			ft.omit = true
		case "name":
			ft.name = v
		case "item":
			ft.item = v
		case "attr":
			ft.attr = true
		case "root":
			ft.root = v
		default:
			return fieldTag{}, fmt.Errorf("field %s: unknown tag key %q", sf.Name, k)
		}
	}
	return ft, nil
}

func walkable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return walkable(t.Elem())
	}
	return true
}

// structFields enumerates the fields of struct type t in declaration order,
// flattening untagged embedded structs. It also returns a root name override.
func (c *Classifier) structFields(t reflect.Type) ([]Field, string, error) {
	var (
		fields []Field
		root   string
	)
	var walk func(t reflect.Type, index []int, depth int, seen map[reflect.Type]bool) error
	walk = func(t reflect.Type, index []int, depth int, seen map[reflect.Type]bool) error {
		if seen[t] {
			return nil
		}
		seen[t] = true
		defer delete(seen, t)
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			ft, err := parseFieldTag(sf)
			if err != nil {
				return fmt.Errorf("%s: %w", t, err)
			}
			if sf.Name == "_" {
				if depth == 0 && ft.root != "" {
					root = ft.root
				}
				continue
			}
			if ft.omit {
				continue
			}
			idx := append(append([]int(nil), index...), i)
			if sf.Anonymous && ft.name == "" {
				et := sf.Type
				if et.Kind() == reflect.Pointer {
					et = et.Elem()
				}
				if et.Kind() == reflect.Struct {
					if _, simple := c.simpleKind(et); !simple {
						if err := walk(et, idx, depth+1, seen); err != nil {
							return err
						}
						continue
					}
				}
			}
			if !sf.IsExported() {
				continue
			}
			if !walkable(sf.Type) || c.excluded(sf.Type) {
				continue
			}
			f := Field{
				GoName:   sf.Name,
				Name:     sf.Name,
				ItemName: ft.item,
				Attr:     ft.attr,
				Index:    idx,
				Type:     sf.Type,
				depth:    depth,
			}
			if ft.name != "" {
				f.Name = ft.name
			}
			fields = append(fields, f)
		}
		return nil
	}
	if err := walk(t, nil, 0, map[reflect.Type]bool{}); err != nil {
		return nil, "", err
	}
	fields, err := dedupe(t, fields)
	if err != nil {
		return nil, "", err
	}
	return fields, root, nil
}

// dedupe keeps the shallowest field for each name. Two fields with the same
// name at the same depth conflict.
func dedupe(t reflect.Type, fields []Field) ([]Field, error) {
	best := map[string]int{}
	for i, f := range fields {
		j, ok := best[f.Name]
		if !ok || f.depth < fields[j].depth {
			best[f.Name] = i
			continue
		}
		if f.depth == fields[j].depth {
			return nil, fmt.Errorf("%s: field name conflict: %s and %s both map to %q", t, fields[j].GoName, f.GoName, f.Name)
		}
	}
	res := fields[:0:0]
	for i, f := range fields {
		if best[f.Name] == i {
			res = append(res, f)
		}
	}
	return res, nil
}
