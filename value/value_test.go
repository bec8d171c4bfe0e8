package value

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"
)

type color int

func (color) EnumNames() []string { return []string{"Red", "Green", "Blue"} }

type level string

func (l level) MarshalText() ([]byte, error) { return []byte("L" + string(l)), nil }
func (l *level) UnmarshalText(d []byte) error {
	if len(d) == 0 || d[0] != 'L' {
		return errors.New("no L")
	}
	*l = level(d[1:])
	return nil
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    any
		want Kind
	}{
		{"", StringKind},
		{Char('a'), CharKind},
		{true, BooleanKind},
		{uint8(1), ByteKind},
		{int8(1), SignedByteKind},
		{int16(1), WordKind},
		{uint16(1), UnsignedWordKind},
		{int32(1), IntegerKind},
		{uint32(1), UnsignedIntegerKind},
		{1, LongKind},
		{int64(1), LongKind},
		{uint(1), UnsignedLongKind},
		{float32(1), SingleFloatKind},
		{1.0, DoubleFloatKind},
		{inf.Dec{}, DecimalKind},
		{time.Time{}, DateTimeKind},
		{time.Second, DurationKind},
		{uuid.UUID{}, GuidKind},
		{color(0), EnumerationKind},
		{level(""), TextKind},
	}
	for _, tt := range tests {
		t.Run(reflect.TypeOf(tt.v).String(), func(t *testing.T) {
			got, ok := KindOf(reflect.TypeOf(tt.v))
			if !ok {
				t.Fatal("not simple")
			}
			if got != tt.want {
				t.Errorf("got %v want %v", got, tt.want)
			}
		})
	}
	for _, v := range []any{struct{}{}, []int{}, map[string]int{}, new(int)} {
		if k, ok := KindOf(reflect.TypeOf(v)); ok {
			t.Errorf("%T classified as %v", v, k)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	when := time.Date(2023, 6, 9, 13, 4, 5, 123456789, time.UTC)
	tests := []any{
		"hai",
		Char('Ж'),
		true,
		uint8(255),
		int8(-128),
		int16(-32768),
		uint16(65535),
		int32(math.MinInt32),
		uint32(math.MaxUint32),
		int64(math.MinInt64),
		uint64(math.MaxUint64),
		float32(1.1),
		1.2,
		*inf.NewDec(13, 1),
		when,
		-(3*24*time.Hour + 2*time.Hour + 48*time.Minute + 5*time.Second + 477*time.Millisecond),
		time.Duration(math.MinInt64),
		time.Duration(math.MaxInt64),
		uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		color(2),
		level("x"),
	}
	p := &Parser{}
	for _, v := range tests {
		rv := reflect.ValueOf(v)
		t.Run(rv.Type().String(), func(t *testing.T) {
			k, _ := KindOf(rv.Type())
			s, err := Format(rv, k)
			if err != nil {
				t.Fatal(err)
			}
			got, err := p.Parse("/x", &s, rv.Type(), k)
			if err != nil {
				t.Fatal(err)
			}
			if d, ok := v.(inf.Dec); ok {
				gd := got.Interface().(inf.Dec)
				if d.Cmp(&gd) != 0 {
					t.Errorf("got %s want %s", gd.String(), d.String())
				}
				return
			}
			if tm, ok := v.(time.Time); ok {
				if !tm.Equal(got.Interface().(time.Time)) {
					t.Errorf("got %v want %v", got, tm)
				}
				return
			}
			if diff := cmp.Diff(v, got.Interface()); diff != "" {
				t.Errorf("round trip of %q (-want +got):\n%s", s, diff)
			}
		})
	}
}

func TestFormatCanonical(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{int8(-5), "-5"},
		{true, "true"},
		{90 * time.Second, "00:01:30"},
		{26*time.Hour + time.Millisecond, "1.02:00:00.001"},
		{color(1), "Green"},
		{color(7), "7"},
		{Char('A'), "A"},
	}
	for _, tt := range tests {
		rv := reflect.ValueOf(tt.v)
		k, _ := KindOf(rv.Type())
		got, err := Format(rv, k)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Format(%v) = %q want %q", tt.v, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	bad := "sfsfdds"
	empty := ""
	tests := []struct {
		typ  reflect.Type
		text *string
		want string
	}{
		{reflect.TypeFor[Char](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a char: Length not valid, must be one character."},
		{reflect.TypeFor[Char](), &empty, "Unable to parse the value '' in the '/SimpleTypes/Field' element as a char: Length not valid, must be one character."},
		{reflect.TypeFor[Char](), nil, "Unable to parse the value <null> in the '/SimpleTypes/Field' element as a char: Length not valid, must be one character."},
		{reflect.TypeFor[bool](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a boolean: Not formatted correctly, must be 'true' or 'false'."},
		{reflect.TypeFor[uint8](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a byte: Not formatted correctly, must be an integer between 0 and 255."},
		{reflect.TypeFor[int8](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a signedByte: Not formatted correctly, must be an integer between -128 and 127."},
		{reflect.TypeFor[int16](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a word: Not formatted correctly, must be an integer between -32,768 and 32,767."},
		{reflect.TypeFor[uint16](), &empty, "Unable to parse the value '' in the '/SimpleTypes/Field' element as a usignedWord: Not formatted correctly, must be an integer between 0 and 65,535."},
		{reflect.TypeFor[int32](), nil, "Unable to parse the value <null> in the '/SimpleTypes/Field' element as a integer: Not formatted correctly, must be an integer between -2,147,483,648 and 2,147,483,647."},
		{reflect.TypeFor[uint32](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a usignedInteger: Not formatted correctly, must be an integer between 0 and 4,294,967,295."},
		{reflect.TypeFor[int64](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a long: Not formatted correctly, must be an integer between -9,223,372,036,854,775,808 and 9,223,372,036,854,775,807."},
		{reflect.TypeFor[uint64](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a usignedLong: Not formatted correctly, must be an integer between 0 and 18,446,744,073,709,551,615."},
		{reflect.TypeFor[float32](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a singleFloat: Not formatted correctly, must be a single-precision 32 bit float between -3.402823e38 and 3.402823e38."},
		{reflect.TypeFor[float64](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a doubleFloat: Not formatted correctly, must be a double-precision 64-bit float between -1.79769313486232e308 and 1.79769313486232e308."},
		{reflect.TypeFor[inf.Dec](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a decimal: Not formatted correctly, must be a decimal number between -79,228,162,514,264,337,593,543,950,335 and 79,228,162,514,264,337,593,543,950,335."},
		{reflect.TypeFor[time.Time](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a datetime: Not formatted correctly, must be formatted as m/d/yyy h:m:s AM."},
		{reflect.TypeFor[time.Duration](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a duration: Not formatted correctly, must be formatted as d.h:m:s."},
		{reflect.TypeFor[uuid.UUID](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a guid: Not formatted correctly, should contain 32 digits with 4 dashes (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx)."},
		{reflect.TypeFor[color](), &bad, "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/Field' element as a enumeration: Not a valid option."},
	}
	p := &Parser{}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+Token(tt.text), func(t *testing.T) {
			k, _ := KindOf(tt.typ)
			_, err := p.Parse("/SimpleTypes/Field", tt.text, tt.typ, k)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if got := perr.Error(); got != tt.want {
				t.Errorf("got\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestParseOutOfRange(t *testing.T) {
	p := &Parser{}
	tests := []struct {
		typ  reflect.Type
		text string
	}{
		{reflect.TypeFor[uint8](), "256"},
		{reflect.TypeFor[int8](), "-129"},
		{reflect.TypeFor[uint64](), "-1"},
		{reflect.TypeFor[float32](), "1e39"},
		{reflect.TypeFor[inf.Dec](), "79228162514264337593543950336"},
		{reflect.TypeFor[inf.Dec](), "-79228162514264337593543950336.5"},
		{reflect.TypeFor[time.Duration](), "200000"},
		{reflect.TypeFor[time.Duration](), "-200000"},
		{reflect.TypeFor[time.Duration](), "106752.00:00:00"},
		{reflect.TypeFor[time.Duration](), "-106751.23:47:16.854775809"},
	}
	for _, tt := range tests {
		k, _ := KindOf(tt.typ)
		if _, err := p.Parse("/x", &tt.text, tt.typ, k); err == nil {
			t.Errorf("%s %q: expected error", tt.typ, tt.text)
		}
	}
	max := "79228162514264337593543950335.9"
	if _, err := p.Parse("/x", &max, reflect.TypeFor[inf.Dec](), DecimalKind); err != nil {
		t.Errorf("max decimal rejected: %v", err)
	}
}

func TestReasonOverride(t *testing.T) {
	bad := "sfsfdds"
	p := &Parser{Reasons: map[Kind]string{IntegerKind: "yada", StringKind: "ohhai"}}
	_, err := p.Parse("/SimpleTypes/NullableInteger", &bad, reflect.TypeFor[int32](), IntegerKind)
	want := "Unable to parse the value 'sfsfdds' in the '/SimpleTypes/NullableInteger' element as a integer: yada"
	if err == nil || err.Error() != want {
		t.Errorf("got %v", err)
	}
	got, err := p.Parse("/SimpleTypes/String", &bad, reflect.TypeFor[string](), StringKind)
	if err != nil || got.String() != bad {
		t.Errorf("string override should have no effect: %v %v", got, err)
	}
}

func TestDefaultWhenEmpty(t *testing.T) {
	p := &Parser{DefaultWhenEmpty: true}
	empty := ""
	for _, typ := range []reflect.Type{
		reflect.TypeFor[int32](),
		reflect.TypeFor[bool](),
		reflect.TypeFor[Char](),
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[uuid.UUID](),
		reflect.TypeFor[color](),
	} {
		k, _ := KindOf(typ)
		for _, text := range []*string{nil, &empty} {
			got, err := p.Parse("/x", text, typ, k)
			if err != nil {
				t.Fatalf("%s: %v", typ, err)
			}
			if !got.IsZero() {
				t.Errorf("%s: expected zero value, got %v", typ, got)
			}
		}
	}
}

func TestStringNeverFails(t *testing.T) {
	p := &Parser{}
	got, err := p.Parse("/x", nil, reflect.TypeFor[string](), StringKind)
	if err != nil || got.String() != "" {
		t.Errorf("got %q, %v", got.String(), err)
	}
}

func TestParseLenient(t *testing.T) {
	p := &Parser{}
	tests := []struct {
		typ  reflect.Type
		text string
		want any
	}{
		{reflect.TypeFor[bool](), "True", true},
		{reflect.TypeFor[int32](), " 5 ", int32(5)},
		{reflect.TypeFor[color](), "blue", color(2)},
		{reflect.TypeFor[color](), "1", color(1)},
		{reflect.TypeFor[time.Duration](), "1.02:03:04.5", 26*time.Hour + 3*time.Minute + 4500*time.Millisecond},
		{reflect.TypeFor[time.Duration](), "1h30m", 90 * time.Minute},
		{reflect.TypeFor[time.Time](), "12/31/2021 11:59:59 PM", time.Date(2021, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		k, _ := KindOf(tt.typ)
		got, err := p.Parse("/x", &tt.text, tt.typ, k)
		if err != nil {
			t.Fatalf("%q: %v", tt.text, err)
		}
		if diff := cmp.Diff(tt.want, got.Interface()); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.Label())
		if err != nil || got != k {
			t.Errorf("%v: got %v %v", k, got, err)
		}
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Error("expected error")
	}
}
