package typeinfo

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultGenericTypeFormat = "{0}Of{1}"
	DefaultGenericListFormat = "ArrayOf{0}"
)

// Naming derives XML element names from types.
type Naming struct {
	// GenericType names parametrized types; {0} is the base name and {1}
	// the concatenated argument names.
	GenericType string
	// GenericList names collections; {0} is the item name.
	GenericList string
}

func (n Naming) genericType() string {
	if n.GenericType == "" {
		return DefaultGenericTypeFormat
	}
	return n.GenericType
}

func (n Naming) genericList() string {
	if n.GenericList == "" {
		return DefaultGenericListFormat
	}
	return n.GenericList
}

// TypeName returns the type-derived element name for t.
func (n Naming) TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return n.namedType(name)
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return n.ListName(n.TypeName(t.Elem()))
	case reflect.Map:
		return n.ListName(n.PairName(t.Key(), t.Elem()))
	}
	return "Object"
}

// ListName applies the collection template to an item name.
func (n Naming) ListName(item string) string {
	return strings.ReplaceAll(n.genericList(), "{0}", item)
}

// PairName names the synthetic key/value pair of a map entry.
func (n Naming) PairName(key, val reflect.Type) string {
	return n.apply("KeyValuePair", []string{n.TypeName(key), n.TypeName(val)})
}

func (n Naming) apply(base string, args []string) string {
	s := strings.ReplaceAll(n.genericType(), "{0}", base)
	return strings.ReplaceAll(s, "{1}", strings.Join(args, ""))
}

// namedType handles builtin names ("int" becomes "Int") and instantiated
// generics ("Box[int]" becomes "BoxOfInt").
func (n Naming) namedType(name string) string {
	i := strings.IndexByte(name, '[')
	if i < 0 || !strings.HasSuffix(name, "]") {
		return capitalize(name)
	}
	var args []string
	for _, a := range splitArgs(name[i+1 : len(name)-1]) {
		args = append(args, n.argName(a))
	}
	return n.apply(capitalize(name[:i]), args)
}

// argName names a type argument as it appears inside reflect's
// instantiated type names, for example "github.com/x/y.Item" or "[]int".
func (n Naming) argName(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "*"):
		return n.argName(s[1:])
	case strings.HasPrefix(s, "[]"):
		return n.ListName(n.argName(s[2:]))
	case strings.HasPrefix(s, "map["):
		depth := 0
		for i := 3; i < len(s); i++ {
			switch s[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					pair := n.apply("KeyValuePair", []string{n.argName(s[4:i]), n.argName(s[i+1:])})
					return n.ListName(pair)
				}
			}
		}
	case s == "interface {}" || s == "any":
		return "Object"
	}
	if i := strings.IndexByte(s, '['); i >= 0 {
		base := s[:i]
		if j := strings.LastIndexByte(base, '.'); j >= 0 {
			base = base[j+1:]
		}
		return n.namedType(base + s[i:])
	}
	if j := strings.LastIndexByte(s, '.'); j >= 0 {
		s = s[j+1:]
	}
	return capitalize(s)
}

func splitArgs(s string) []string {
	var (
		res   []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				res = append(res, s[start:i])
				start = i + 1
			}
		}
	}
	return append(res, s[start:])
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
