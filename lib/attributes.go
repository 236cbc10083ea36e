package lib

import (
	"fmt"
	"sort"
	"strings"
)

const (
	FieldCategories        = "Categories"
	FieldDescription       = "Description"
	FieldManufacturer      = "Manufacturer"
	FieldManufacturerPart  = "Manufacturer Part Number 1"
	FieldSupplierPart      = "Supplier Part Number 1"
	FieldSupplier          = "Supplier 1"
	FieldPackage           = "Package / Case"
	FieldSupplierPackage   = "Supplier Device Package"
	FieldTolerance         = "Tolerance"
	FieldCapacitance       = "Capacitance"
	FieldVoltageRated      = "Voltage - Rated"
	FieldTemperatureCoeff  = "Temperature Coefficient"
	FieldInductance        = "Inductance"
	FieldCurrentRating     = "Current Rating"
	FieldImpedance         = "Impedance @ Frequency"
	FieldCurrentRatingMax  = "Current Rating (Max)"
	FieldResistance        = "Resistance"
	FieldPower             = "Power (Watts)"
	digiKeyPartNumberField = "Digi-Key Part Number"
)

// Presentation-only fields that never make it into a library.
var DefaultIgnoredFields = []string{
	"Detailed Description",
	"Moisture Sensitivity Level (MSL)",
	"Quantity Available",
	"Packaging",
}

/*
	One row of a scraped table. Labeled is false for rows without a header
	cell, which continue the previous field. Title marks the table's own
	heading row.
*/
type Row struct {
	Field   string
	Value   string
	Labeled bool
	Title   bool
}

type Attributes map[string]string

// MissingFieldError reports an attribute a component family requires.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing attribute %q", e.Field)
}

func (a Attributes) require(field string) (string, error) {
	value, ok := a[field]
	if !ok {
		return "", &MissingFieldError{Field: field}
	}

	return value, nil
}

// Fields returns the attribute names in sorted order.
func (a Attributes) Fields() []string {
	fields := make([]string, 0, len(a))
	for field := range a {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return fields
}

/*
	Merge the product detail and product attribute tables of a part page
	into one attribute set, then drop the ignored fields.
*/
func ExtractAttributes(details, attributes []Row, supplier string, ignored []string) Attributes {
	attrs := Attributes{}

	for _, row := range details {
		field := row.Field
		switch {
		case field == digiKeyPartNumberField:
			field = FieldSupplierPart
		case strings.Contains(field, FieldManufacturer):
			/*
				numbered so a second source can be added later
			*/
			field += " 1"
		}

		attrs[field] = row.Value
	}
	attrs[FieldSupplier] = supplier

	field := ""
	for _, row := range attributes {
		if row.Title {
			continue
		}

		value := row.Value
		if strings.Contains(value, `"`) {
			value = strings.ReplaceAll(value, `"`, `\"`)
		}

		/*
			Categories spans several rows on the page, the extra rows have
			no label
		*/
		if !row.Labeled {
			if _, ok := attrs[field]; !ok || field == "" {
				continue
			}

			attrs[field] += " - " + value
			continue
		}

		field = row.Field
		if field == FieldManufacturer {
			continue
		}

		attrs[field] = value
	}

	for _, name := range ignored {
		delete(attrs, name)
	}

	return attrs
}
