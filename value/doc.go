// Package value converts simple Go values to and from text.
//
// Each Kind has a canonical text form, a valid range where one applies and a
// reason string used in ParseError messages when input falls outside it.
// Reasons can be overridden per kind through Parser.Reasons.
package value
