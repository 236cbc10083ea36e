package lib

import (
	"fmt"
	"strings"
)

/*
	Placement of one symbol text field, in KiCad's legacy F-line order:
	position, size, orientation (H/V), visibility (V/I), horizontal
	justification (L/R/C) and vertical justification (T/B/C + "NN").
*/
type FieldStyle struct {
	X           int
	Y           int
	Size        int
	Orientation string
	Visibility  string
	HJustify    string
	VJustify    string
}

func (s FieldStyle) String() string {
	return fmt.Sprintf("%d %d %d %s %s %s %s",
		s.X, s.Y, s.Size, s.Orientation, s.Visibility, s.HJustify, s.VJustify)
}

/*
	Layout of a generated symbol. Reference and Value style F0 and F1,
	Other styles every remaining field. Shape is the DRAW...ENDDRAW block.
*/
type SymbolStyle struct {
	Reference      FieldStyle
	Value          FieldStyle
	Other          FieldStyle
	TextOffset     int
	DrawPinNumbers bool
	DrawPinNames   bool
	UnitCount      int
	UnitsLocked    bool
	Power          bool
	Shape          string
}

// Lines of one library or description entry.
type Record []string

func (r Record) String() string {
	return strings.Join(r, "\n")
}

var (
	hiddenField = FieldStyle{0, 0, 50, "H", "I", "C", "CNN"}

	capacitorShape = `DRAW
P 2 0 1 20 -80 -30 80 -30 N
P 2 0 1 20 -80 30 80 30 N
X ~ 1 0 150 110 D 50 50 1 1 P
X ~ 2 0 -150 110 U 50 50 1 1 P
ENDDRAW`

	inductorShape = `DRAW
A -75 0 25 1 -1801 0 1 0 N -50 0 -100 0
A -25 0 25 1 -1801 0 1 0 N 0 0 -50 0
A 25 0 25 1 -1801 0 1 0 N 50 0 0 0
A 75 0 25 1 -1801 0 1 0 N 100 0 50 0
X 1 1 -150 0 50 R 50 50 1 1 P
X 2 2 150 0 50 L 50 50 1 1 P
ENDDRAW`

	resistorShape = `DRAW
S 100 -40 -100 40 0 1 10 N
X ~ 1 -150 0 50 R 50 50 1 1 P
X ~ 2 150 0 50 L 50 50 1 1 P
ENDDRAW`

	otherShape = `DRAW
S -100 -100 100 100 0 1 10 f
X ~ 1 -200 0 100 R 50 50 1 1 P
X ~ 2 200 0 100 L 50 50 1 1 P
ENDDRAW`
)

var DefaultSymbolStyles = map[Family]SymbolStyle{
	FamilyCapacitor: {
		Reference:  FieldStyle{0, 50, 50, "H", "V", "L", "BNN"},
		Value:      FieldStyle{0, -50, 50, "H", "V", "L", "TNN"},
		Other:      hiddenField,
		TextOffset: 10,
		UnitCount:  1,
		Shape:      capacitorShape,
	},
	FamilyInductor: {
		Reference:  FieldStyle{0, 50, 50, "H", "V", "C", "BNN"},
		Value:      FieldStyle{0, -50, 50, "H", "V", "C", "TNN"},
		Other:      hiddenField,
		TextOffset: 10,
		UnitCount:  1,
		Shape:      inductorShape,
	},
	FamilyResistor: {
		Reference:  FieldStyle{0, 50, 50, "H", "V", "C", "BNN"},
		Value:      FieldStyle{0, -50, 50, "H", "V", "C", "TNN"},
		Other:      hiddenField,
		TextOffset: 10,
		UnitCount:  1,
		Shape:      resistorShape,
	},
	FamilyOther: {
		Reference:  FieldStyle{0, 150, 50, "H", "V", "C", "BNN"},
		Value:      FieldStyle{0, -150, 50, "H", "V", "C", "TNN"},
		Other:      hiddenField,
		TextOffset: 10,
		UnitCount:  1,
		Shape:      otherShape,
	},
}

func flag(set bool, yes, no string) string {
	if set {
		return yes
	}

	return no
}

/*
	Render a symbol definition. Every attribute except the description
	becomes a hidden numbered field, in field name order. The description
	still takes up a field number.
*/
func FormatSymbol(attrs Attributes, fixed Fixed, style SymbolStyle) Record {
	record := Record{
		"# ",
		"# " + fixed.Name,
		"#",
		fmt.Sprintf("DEF %s %s 0 %d %s %s %d %s %s",
			fixed.Name,
			fixed.Reference,
			style.TextOffset,
			flag(style.DrawPinNumbers, "Y", "N"),
			flag(style.DrawPinNames, "Y", "N"),
			style.UnitCount,
			flag(style.UnitsLocked, "L", "F"),
			flag(style.Power, "P", "N"),
		),
		fmt.Sprintf(`F0 "%s" %s`, fixed.Reference, style.Reference),
		fmt.Sprintf(`F1 "%s" %s`, fixed.Name, style.Value),
		fmt.Sprintf(`F2 "%s" %s`, fixed.Footprint, style.Other),
		fmt.Sprintf(`F3 "%s" %s`, fixed.Datasheet, style.Other),
	}

	n := 4
	for _, field := range attrs.Fields() {
		if field != FieldDescription {
			record = append(record, fmt.Sprintf(`F%d "%s" %s "%s"`, n, attrs[field], style.Other, field))
		}
		n++
	}

	if style.Shape != "" {
		record = append(record, strings.Split(style.Shape, "\n")...)
	}
	record = append(record, "ENDDEF")

	return record
}

func FormatDescription(description, name string) Record {
	return Record{
		"#",
		"$CMP " + name,
		"D " + description,
		"$ENDCMP",
	}
}
