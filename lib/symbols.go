package lib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var fixedFieldNames = []string{"Reference", "Value", "Footprint", "Datasheet"}

/*
	Represents a symbol read back from a library file

		DEF C_100n_10%_50V_X7R_0603 C 0 10 N N 1 F N
		F0 "C" 0 50 50 H V L BNN
		F1 "C_100n_10%_50V_X7R_0603" 0 -50 50 H V L TNN
		F2 "SFUSat-cap:C_0603" 0 0 50 H I C CNN
		F3 "" 0 0 50 H I C CNN
		F4 "Digi-Key" 0 0 50 H I C CNN "Supplier 1"
		...
		ENDDEF
*/
type Symbol struct {
	Name      string
	Reference string
	Fields    []SymbolField
}

type SymbolField struct {
	Number int
	Name   string
	Value  string
}

func (s *Symbol) Field(name string) string {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Value
		}
	}

	return ""
}

func ReadSymbols(src string) ([]*Symbol, error) {
	fp, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	return ParseSymbols(fp)
}

// Return the symbols of a legacy .lib file, in file order.
func ParseSymbols(r io.Reader) ([]*Symbol, error) {
	symbols := []*Symbol{}

	var symbol *Symbol
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(text, "DEF "):
			parts := strings.Fields(text)
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: malformed DEF", line)
			}
			symbol = &Symbol{Name: parts[1], Reference: parts[2]}

		case text == "ENDDEF":
			if symbol != nil {
				symbols = append(symbols, symbol)
			}
			symbol = nil

		case symbol != nil && strings.HasPrefix(text, "F"):
			field, ok := parseField(text)
			if !ok {
				continue
			}
			symbol.Fields = append(symbol.Fields, field)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}

/*
	F<n> "<value>" x y size orient visible hjust vjust ["<name>"]
*/
func parseField(text string) (SymbolField, bool) {
	tokens := splitQuoted(text)
	if len(tokens) < 2 {
		return SymbolField{}, false
	}

	n, err := strconv.Atoi(strings.TrimPrefix(tokens[0], "F"))
	if err != nil {
		return SymbolField{}, false
	}

	field := SymbolField{Number: n, Value: tokens[1]}
	switch {
	case n < len(fixedFieldNames):
		field.Name = fixedFieldNames[n]
	case len(tokens) >= 10:
		field.Name = tokens[9]
	default:
		field.Name = "F" + strconv.Itoa(n)
	}

	return field, true
}

// Split on blanks, keeping quoted strings (with \" escapes) together.
func splitQuoted(text string) []string {
	tokens := []string{}

	current := strings.Builder{}
	quoted, escaped, started := false, false, false
	for _, r := range text {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		tokens = append(tokens, current.String())
	}

	return tokens
}

/*
	Write symbols to a spreadsheet, one row per symbol and one column per
	field name.
*/
func ExportSymbols(dst string, sheet string, symbols []*Symbol) error {
	names := []string{}
	seen := map[string]bool{}
	for _, symbol := range symbols {
		for _, field := range symbol.Fields {
			if field.Number < len(fixedFieldNames) || seen[field.Name] {
				continue
			}
			seen[field.Name] = true
			names = append(names, field.Name)
		}
	}
	sort.Strings(names)

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	header := []interface{}{"Name", "Reference", "Footprint", "Datasheet"}
	for _, name := range names {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, symbol := range symbols {
		row := []interface{}{
			symbol.Name,
			symbol.Reference,
			symbol.Field("Footprint"),
			symbol.Field("Datasheet"),
		}
		for _, name := range names {
			row = append(row, symbol.Field(name))
		}

		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}

	return f.SaveAs(dst)
}
