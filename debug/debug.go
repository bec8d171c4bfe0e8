// Package debug holds environment toggles for diagnostic logging.
//
//	OBJDOC_DEBUG_SERIALIZE    serializer decisions (cycle omissions, hooks)
//	OBJDOC_DEBUG_DESERIALIZE  deserializer decisions (ignored nodes, nulls)
//	OBJDOC_DEBUG_PARSE        document parsing
//	OBJDOC_DEBUG_ENCODE       document encoding
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Serialize   bool
	Deserialize bool
	Parse       bool
	Encode      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Serialize = boolEnv("OBJDOC_DEBUG_SERIALIZE")
	d.Deserialize = boolEnv("OBJDOC_DEBUG_DESERIALIZE")
	d.Parse = boolEnv("OBJDOC_DEBUG_PARSE")
	d.Encode = boolEnv("OBJDOC_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Serialize() bool {
	return d.Serialize
}
func Deserialize() bool {
	return d.Deserialize
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}

// Set overrides the toggles, returning a func restoring the previous ones.
func Set(serialize, deserialize, parse, encode bool) func() {
	prev := *d
	d = &debug{
		Serialize:   serialize,
		Deserialize: deserialize,
		Parse:       parse,
		Encode:      encode,
	}
	return func() { d = &prev }
}
