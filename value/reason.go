package value

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func intReason(lo int64, hi uint64) string {
	return printer.Sprintf("Not formatted correctly, must be an integer between %d and %d.", lo, hi)
}

var defaultReasons = map[Kind]string{
	StringKind:          "Not formatted correctly.",
	CharKind:            "Length not valid, must be one character.",
	BooleanKind:         "Not formatted correctly, must be 'true' or 'false'.",
	ByteKind:            intReason(0, math.MaxUint8),
	SignedByteKind:      intReason(math.MinInt8, math.MaxInt8),
	WordKind:            intReason(math.MinInt16, math.MaxInt16),
	UnsignedWordKind:    intReason(0, math.MaxUint16),
	IntegerKind:         intReason(math.MinInt32, math.MaxInt32),
	UnsignedIntegerKind: intReason(0, math.MaxUint32),
	LongKind:            intReason(math.MinInt64, math.MaxInt64),
	UnsignedLongKind:    intReason(0, math.MaxUint64),
	SingleFloatKind:     "Not formatted correctly, must be a single-precision 32 bit float between -3.402823e38 and 3.402823e38.",
	DoubleFloatKind:     "Not formatted correctly, must be a double-precision 64-bit float between -1.79769313486232e308 and 1.79769313486232e308.",
	DecimalKind:         "Not formatted correctly, must be a decimal number between -79,228,162,514,264,337,593,543,950,335 and 79,228,162,514,264,337,593,543,950,335.",
	DateTimeKind:        "Not formatted correctly, must be formatted as m/d/yyy h:m:s AM.",
	DurationKind:        "Not formatted correctly, must be formatted as d.h:m:s.",
	GuidKind:            "Not formatted correctly, should contain 32 digits with 4 dashes (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx).",
	EnumerationKind:     "Not a valid option.",
	TextKind:            "Not formatted correctly.",
}

// DefaultReason returns the built-in reason string for k.
func DefaultReason(k Kind) string {
	return defaultReasons[k]
}
