package lib

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnknownPrefix = errors.New("unknown SI prefix")

	nonNumeric = regexp.MustCompile(`[^\d.+]`)
)

/*
	SI prefix letters and their power of ten. "R" is the resistor
	convention for an unprefixed ohm value.
*/
var prefixExponents = map[string]int{
	"p": -12,
	"n": -9,
	"u": -6,
	"m": -3,
	"":  0,
	"R": 0,
	"k": 3,
	"M": 6,
	"G": 9,
}

var exponentPrefixes = map[int]string{
	-12: "p",
	-9:  "n",
	-6:  "u",
	-3:  "m",
	3:   "k",
	6:   "M",
	9:   "G",
}

/*
	Describes where the prefix character of a raw value lives. The offsets
	are tied to the distributor's text formats:

		"4.7µF"              capacitance, prefix 2nd from the end
		"10 kOhms"           resistance, prefix 5th from the end
		"1 kOhms @ 100MHz"   impedance, prefix 14th from the end, and the
		                     last 14 runes are not part of the magnitude
*/
type UnitStyle struct {
	Offset  int
	Default string
	Suffix  int
}

var (
	CapacitanceStyle = UnitStyle{Offset: 2, Default: ""}
	InductanceStyle  = UnitStyle{Offset: 2, Default: ""}
	ResistanceStyle  = UnitStyle{Offset: 5, Default: "R"}
	ImpedanceStyle   = UnitStyle{Offset: 14, Default: "R", Suffix: 14}
)

// ParseError reports a raw value whose magnitude is not a number.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse value %q: %s", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

/*
	A value in canonical form: Magnitude * 10^exponent(Prefix) is the
	physical value. Source is the prefix character read from the raw text.
*/
type Value struct {
	Magnitude float64
	Prefix    string
	Source    string
}

/*
	Render the value the way symbol names carry it: the decimal point is
	replaced by the prefix letter, so 4.7u becomes 4u7 and 10.0k becomes
	10k0.
*/
func (v Value) String() string {
	return strings.Replace(formatFloat(v.Magnitude), ".", v.Prefix, 1)
}

// Exponent returns the power of ten of the prefix, 0 for an unknown letter.
func (v Value) Exponent() int {
	return prefixExponents[v.Prefix]
}

/*
	NormalizeValue converts a raw distributor value into canonical form. The
	magnitude is moved by at most one prefix tier in each direction, so
	values two or more tiers away from [1, 1000) stay out of range. An
	unknown prefix letter is only an error when the value has to be
	rescaled.
*/
func NormalizeValue(raw string, style UnitStyle, events Events) (Value, error) {
	if events == nil {
		events = DiscardEvents
	}

	runes := []rune(raw)

	text := raw
	if style.Suffix > 0 {
		if len(runes) > style.Suffix {
			text = string(runes[:len(runes)-style.Suffix])
		} else {
			text = ""
		}
	}

	digits := nonNumeric.ReplaceAllString(text, "")
	magnitude, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return Value{}, &ParseError{Text: raw, Err: err}
	}

	source := ""
	if i := len(runes) - style.Offset; i >= 0 && i < len(runes) {
		source = string(runes[i])
	}

	prefix, known := sourcePrefix(source, style)

	rescale := magnitude != 0 && (magnitude < 1.0 || magnitude >= 1000.0)
	if !known {
		if rescale {
			return Value{}, fmt.Errorf("%q: %w: %q", raw, ErrUnknownPrefix, source)
		}

		// in range, the letter is carried through as read
		events.Emit(Event{
			Kind:   EventUnitLookup,
			Detail: fmt.Sprintf("%s: unknown prefix %q", raw, source),
		})
		return Value{Magnitude: magnitude, Prefix: prefix, Source: source}, nil
	}

	exponent := prefixExponents[prefix]
	switch {
	case magnitude != 0 && magnitude < 1.0:
		magnitude *= 1000
		exponent -= 3
	case magnitude >= 1000.0:
		magnitude /= 1000
		exponent += 3
	default:
		return Value{Magnitude: magnitude, Prefix: prefix, Source: source}, nil
	}

	prefix, ok := prefixFor(exponent, style)
	if !ok {
		events.Emit(Event{
			Kind:   EventUnitLookup,
			Detail: fmt.Sprintf("%s: no prefix for 1e%d", raw, exponent),
		})
	}

	return Value{Magnitude: magnitude, Prefix: prefix, Source: source}, nil
}

/*
	Map the source character to a prefix letter. known is false for a
	letter with no table entry, which is returned unchanged.
*/
func sourcePrefix(source string, style UnitStyle) (string, bool) {
	if source == "" {
		return style.Default, true
	}

	r := []rune(source)[0]
	if unicode.IsDigit(r) || r == ' ' {
		return style.Default, true
	}

	switch r {
	case 'µ', 'μ':
		return "u", true
	case 'K':
		return "k", true
	}

	_, ok := prefixExponents[source]
	return source, ok
}

func prefixFor(exponent int, style UnitStyle) (string, bool) {
	if exponent == 0 {
		return style.Default, true
	}

	prefix, ok := exponentPrefixes[exponent]
	return prefix, ok
}

/*
	Shortest round-trip rendering that always carries a fractional part
	(10 -> "10.0") and switches to exponent form outside [1e-4, 1e16).
*/
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
