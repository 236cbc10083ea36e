package lib

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFormatSymbol(t *testing.T) {
	attrs := Attributes{
		FieldCategories:  "Capacitors - Ceramic Capacitors",
		FieldDescription: "CAP CER 0.1UF 50V X7R 0603",
		"Manufacturer 1": "KEMET",
	}
	fixed := Fixed{
		Reference: "C",
		Name:      "C_100n0_10%_50V_X7R_0603",
		Footprint: "SFUSat-cap:C_0603",
	}

	record := FormatSymbol(attrs, fixed, DefaultSymbolStyles[FamilyCapacitor])

	expected := Record{
		"# ",
		"# C_100n0_10%_50V_X7R_0603",
		"#",
		"DEF C_100n0_10%_50V_X7R_0603 C 0 10 N N 1 F N",
		`F0 "C" 0 50 50 H V L BNN`,
		`F1 "C_100n0_10%_50V_X7R_0603" 0 -50 50 H V L TNN`,
		`F2 "SFUSat-cap:C_0603" 0 0 50 H I C CNN`,
		`F3 "" 0 0 50 H I C CNN`,
		`F4 "Capacitors - Ceramic Capacitors" 0 0 50 H I C CNN "Categories"`,
		`F6 "KEMET" 0 0 50 H I C CNN "Manufacturer 1"`,
	}
	expected = append(expected, strings.Split(capacitorShape, "\n")...)
	expected = append(expected, "ENDDEF")

	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatalf("symbol mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSymbolFlags(t *testing.T) {
	style := SymbolStyle{
		TextOffset:     40,
		DrawPinNumbers: true,
		DrawPinNames:   true,
		UnitCount:      2,
		UnitsLocked:    true,
		Power:          true,
	}

	record := FormatSymbol(Attributes{}, Fixed{Reference: "#PWR", Name: "GND"}, style)
	require.Equal(t, "DEF GND #PWR 0 40 Y Y 2 L P", record[3])
	require.Equal(t, "ENDDEF", record[len(record)-1])
}

func TestFormatDescription(t *testing.T) {
	record := FormatDescription("RES 10K OHM 1% 1/10W 0603", "R_10k0_1%_0.1W_0603")

	require.Equal(t, Record{
		"#",
		"$CMP R_10k0_1%_0.1W_0603",
		"D RES 10K OHM 1% 1/10W 0603",
		"$ENDCMP",
	}, record)
	require.Equal(t, "#\n$CMP R_10k0_1%_0.1W_0603\nD RES 10K OHM 1% 1/10W 0603\n$ENDCMP", record.String())
}
