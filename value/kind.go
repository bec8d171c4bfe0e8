package value

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"
)

type Kind int

const (
	StringKind Kind = iota
	CharKind
	BooleanKind
	ByteKind
	SignedByteKind
	WordKind
	UnsignedWordKind
	IntegerKind
	UnsignedIntegerKind
	LongKind
	UnsignedLongKind
	SingleFloatKind
	DoubleFloatKind
	DecimalKind
	DateTimeKind
	DurationKind
	GuidKind
	EnumerationKind
	TextKind
)

var labels = [...]string{
	StringKind:          "string",
	CharKind:            "char",
	BooleanKind:         "boolean",
	ByteKind:            "byte",
	SignedByteKind:      "signedByte",
	WordKind:            "word",
	UnsignedWordKind:    "usignedWord",
	IntegerKind:         "integer",
	UnsignedIntegerKind: "usignedInteger",
	LongKind:            "long",
	UnsignedLongKind:    "usignedLong",
	SingleFloatKind:     "singleFloat",
	DoubleFloatKind:     "doubleFloat",
	DecimalKind:         "decimal",
	DateTimeKind:        "datetime",
	DurationKind:        "duration",
	GuidKind:            "guid",
	EnumerationKind:     "enumeration",
	TextKind:            "text",
}

// Label is the fixed lowercase name used in parse error messages.
func (k Kind) Label() string {
	if k < 0 || int(k) >= len(labels) {
		return fmt.Sprintf("<kind %d>", int(k))
	}
	return labels[k]
}

func (k Kind) String() string { return k.Label() }

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(labels) {
		return nil, fmt.Errorf("<err: %d is not a kind>", int(k))
	}
	return []byte(labels[k]), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// ParseKind maps a label back to its Kind.
func ParseKind(label string) (Kind, error) {
	for i, l := range labels {
		if l == label {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown value kind %q", label)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, len(labels))
	for i := range labels {
		res[i] = Kind(i)
	}
	return res
}

// IsNumber reports whether values of k are JSON numbers.
func (k Kind) IsNumber() bool {
	switch k {
	case ByteKind, SignedByteKind, WordKind, UnsignedWordKind, IntegerKind,
		UnsignedIntegerKind, LongKind, UnsignedLongKind, SingleFloatKind,
		DoubleFloatKind, DecimalKind:
		return true
	}
	return false
}

// Char is a single character. A plain rune is an int32 and maps to
// IntegerKind.
type Char rune

// Enum is implemented by integer types whose values are named. Value i is
// named EnumNames()[i].
type Enum interface {
	EnumNames() []string
}

var (
	charType     = reflect.TypeFor[Char]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	decType      = reflect.TypeFor[inf.Dec]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
	enumType     = reflect.TypeFor[Enum]()

	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// KindOf returns the simple kind of t, if t is simple.
func KindOf(t reflect.Type) (Kind, bool) {
	switch t {
	case charType:
		return CharKind, true
	case timeType:
		return DateTimeKind, true
	case durationType:
		return DurationKind, true
	case decType:
		return DecimalKind, true
	case uuidType:
		return GuidKind, true
	}
	if isInteger(t.Kind()) && t.Implements(enumType) {
		return EnumerationKind, true
	}
	if isText(t) {
		return TextKind, true
	}
	switch t.Kind() {
	case reflect.String:
		return StringKind, true
	case reflect.Bool:
		return BooleanKind, true
	case reflect.Uint8:
		return ByteKind, true
	case reflect.Int8:
		return SignedByteKind, true
	case reflect.Int16:
		return WordKind, true
	case reflect.Uint16:
		return UnsignedWordKind, true
	case reflect.Int32:
		return IntegerKind, true
	case reflect.Uint32:
		return UnsignedIntegerKind, true
	case reflect.Int, reflect.Int64:
		return LongKind, true
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return UnsignedLongKind, true
	case reflect.Float32:
		return SingleFloatKind, true
	case reflect.Float64:
		return DoubleFloatKind, true
	}
	return 0, false
}

func isText(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	pt := reflect.PointerTo(t)
	marshals := t.Implements(textMarshalerType) || pt.Implements(textMarshalerType)
	return marshals && pt.Implements(textUnmarshalerType)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
