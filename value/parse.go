package value

import (
	"encoding"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"
)

var maxDecimal, _ = new(big.Int).SetString("79228162514264337593543950335", 10)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	"1/2/2006 3:04:05.999999999 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// Parser converts text into simple values.
type Parser struct {
	// DefaultWhenEmpty yields the zero value instead of failing when a
	// non-string kind receives no text.
	DefaultWhenEmpty bool
	// Reasons overrides the default reason per kind.
	Reasons map[Kind]string
}

func (p *Parser) reason(k Kind) string {
	if r, ok := p.Reasons[k]; ok && r != "" {
		return r
	}
	return DefaultReason(k)
}

func (p *Parser) fail(path string, text *string, k Kind, err error) *ParseError {
	return &ParseError{
		Path:   path,
		Value:  text,
		Kind:   k,
		Reason: p.reason(k),
		Err:    err,
	}
}

// Parse converts text to a value of type t, whose simple kind is k. The
// returned value is addressable. Failures are *ParseError carrying path.
func (p *Parser) Parse(path string, text *string, t reflect.Type, k Kind) (reflect.Value, error) {
	res := reflect.New(t).Elem()
	if k == StringKind {
		if text != nil {
			res.SetString(*text)
		}
		return res, nil
	}
	if text == nil || *text == "" {
		if p.DefaultWhenEmpty {
			return res, nil
		}
		return res, p.fail(path, text, k, nil)
	}
	if err := p.parseInto(res, *text, k); err != nil {
		return res, p.fail(path, text, k, err)
	}
	return res, nil
}

type errInvalid struct{}

func (errInvalid) Error() string { return "invalid" }

func (p *Parser) parseInto(res reflect.Value, s string, k Kind) error {
	switch k {
	case CharKind:
		r := []rune(s)
		if len(r) != 1 {
			return errInvalid{}
		}
		res.SetInt(int64(r[0]))
	case BooleanKind:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			res.SetBool(true)
		case "false":
			res.SetBool(false)
		default:
			return errInvalid{}
		}
	case SignedByteKind, WordKind, IntegerKind, LongKind:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, intBits(k))
		if err != nil {
			return err
		}
		res.SetInt(i)
	case ByteKind, UnsignedWordKind, UnsignedIntegerKind, UnsignedLongKind:
		u, err := strconv.ParseUint(strings.TrimSpace(s), 10, intBits(k))
		if err != nil {
			return err
		}
		res.SetUint(u)
	case SingleFloatKind, DoubleFloatKind:
		bits := 64
		if k == SingleFloatKind {
			bits = 32
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
		if err != nil {
			return err
		}
		res.SetFloat(f)
	case DecimalKind:
		d, ok := new(inf.Dec).SetString(strings.TrimSpace(s))
		if !ok {
			return errInvalid{}
		}
		if exceedsDecimal(d) {
			return errInvalid{}
		}
		res.Set(reflect.ValueOf(d).Elem())
	case DateTimeKind:
		tm, err := parseTime(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		res.Set(reflect.ValueOf(tm))
	case DurationKind:
		d, ok := ParseDuration(s)
		if !ok {
			return errInvalid{}
		}
		res.SetInt(int64(d))
	case GuidKind:
		u, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		res.Set(reflect.ValueOf(u))
	case EnumerationKind:
		return parseEnum(res, strings.TrimSpace(s))
	case TextKind:
		u, ok := res.Addr().Interface().(encoding.TextUnmarshaler)
		if !ok {
			return errInvalid{}
		}
		return u.UnmarshalText([]byte(s))
	default:
		return errInvalid{}
	}
	return nil
}

func intBits(k Kind) int {
	switch k {
	case SignedByteKind, ByteKind:
		return 8
	case WordKind, UnsignedWordKind:
		return 16
	case IntegerKind, UnsignedIntegerKind:
		return 32
	}
	return 64
}

// exceedsDecimal reports whether |d| is larger than a 96-bit decimal.
func exceedsDecimal(d *inf.Dec) bool {
	ip := new(inf.Dec).Round(d, 0, inf.RoundDown)
	abs := new(big.Int).Abs(ip.UnscaledBig())
	if s := ip.Scale(); s < 0 {
		abs.Mul(abs, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-s)), nil))
	}
	return abs.Cmp(maxDecimal) > 0
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var tm time.Time
		tm, err = time.Parse(layout, s)
		if err == nil {
			return tm, nil
		}
	}
	return time.Time{}, err
}

func parseEnum(res reflect.Value, s string) error {
	names := enumNames(res.Type())
	idx := -1
	for i, n := range names {
		if n == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i, n := range names {
			if strings.EqualFold(n, s) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		i, err := strconv.Atoi(s)
		if err != nil || i < 0 || i >= len(names) {
			return errInvalid{}
		}
		idx = i
	}
	if res.CanInt() {
		res.SetInt(int64(idx))
	} else {
		res.SetUint(uint64(idx))
	}
	return nil
}
