package value

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"
)

// Format renders v, whose simple kind is k, as canonical text.
func Format(v reflect.Value, k Kind) (string, error) {
	switch k {
	case StringKind:
		return v.String(), nil
	case CharKind:
		return string(rune(v.Int())), nil
	case BooleanKind:
		return strconv.FormatBool(v.Bool()), nil
	case SignedByteKind, WordKind, IntegerKind, LongKind:
		return strconv.FormatInt(v.Int(), 10), nil
	case ByteKind, UnsignedWordKind, UnsignedIntegerKind, UnsignedLongKind:
		return strconv.FormatUint(v.Uint(), 10), nil
	case SingleFloatKind:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), nil
	case DoubleFloatKind:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	case DecimalKind:
		d := addr(v).Interface().(*inf.Dec)
		return d.String(), nil
	case DateTimeKind:
		return v.Interface().(time.Time).Format(time.RFC3339Nano), nil
	case DurationKind:
		return FormatDuration(time.Duration(v.Int())), nil
	case GuidKind:
		return v.Interface().(uuid.UUID).String(), nil
	case EnumerationKind:
		return formatEnum(v), nil
	case TextKind:
		m, ok := addr(v).Interface().(encoding.TextMarshaler)
		if !ok {
			return "", fmt.Errorf("%s does not implement encoding.TextMarshaler", v.Type())
		}
		d, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(d), nil
	}
	return "", fmt.Errorf("cannot format %s as %s", v.Type(), k)
}

// IsFinite reports whether a float value can be written as a JSON number.
func IsFinite(v reflect.Value, k Kind) bool {
	if k != SingleFloatKind && k != DoubleFloatKind {
		return true
	}
	f := v.Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// addr returns a pointer to a copy of v, so pointer receiver methods apply.
func addr(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

func enumNames(t reflect.Type) []string {
	return reflect.Zero(t).Interface().(Enum).EnumNames()
}

func formatEnum(v reflect.Value) string {
	names := enumNames(v.Type())
	var i int64
	if v.CanInt() {
		i = v.Int()
	} else {
		u := v.Uint()
		if u > uint64(len(names)) {
			return strconv.FormatUint(u, 10)
		}
		i = int64(u)
	}
	if i >= 0 && i < int64(len(names)) {
		return names[i]
	}
	return strconv.FormatInt(i, 10)
}
