package lib

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedCategory = errors.New("only capacitors, inductors, and resistors are supported")

type Family int

const (
	FamilyCapacitor Family = iota
	FamilyInductor
	FamilyResistor
	FamilyOther
)

var Families = []Family{FamilyCapacitor, FamilyInductor, FamilyResistor, FamilyOther}

var familyNames = map[Family]string{
	FamilyCapacitor: "capacitor",
	FamilyInductor:  "inductor",
	FamilyResistor:  "resistor",
	FamilyOther:     "other",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("family(%d)", int(f))
}

func ParseFamily(name string) (Family, error) {
	for family, fname := range familyNames {
		if strings.EqualFold(name, fname) {
			return family, nil
		}
	}

	return 0, fmt.Errorf("unknown component family %q", name)
}

/*
	Evaluated in order, first match wins. Anything unmatched is
	FamilyOther.
*/
var familyMatchers = []struct {
	family   Family
	keywords []string
}{
	{FamilyCapacitor, []string{"Capacitor"}},
	{FamilyInductor, []string{"Inductor", "Ferrite"}},
	{FamilyResistor, []string{"Resistor"}},
}

func ClassifyFamily(categories string) Family {
	for _, matcher := range familyMatchers {
		for _, keyword := range matcher.keywords {
			if strings.Contains(categories, keyword) {
				return matcher.family
			}
		}
	}

	return FamilyOther
}

/*
	The four fields every KiCad symbol carries. Name doubles as the value
	field and the library key.
*/
type Fixed struct {
	Reference string
	Name      string
	Footprint string
	Datasheet string
}

type SymbolBuilder struct {
	catalog  FootprintCatalog
	families map[Family]FamilyConfig
	strict   bool
	events   Events
}

/*
	With strict set, parts outside the capacitor, inductor and resistor
	families are rejected instead of going to the other library.
*/
func NewSymbolBuilder(catalog FootprintCatalog, families map[Family]FamilyConfig, strict bool, events Events) *SymbolBuilder {
	if events == nil {
		events = DiscardEvents
	}

	return &SymbolBuilder{
		catalog:  catalog,
		families: families,
		strict:   strict,
		events:   events,
	}
}

func (b *SymbolBuilder) Build(attrs Attributes) (Family, Fixed, error) {
	categories, err := attrs.require(FieldCategories)
	if err != nil {
		return 0, Fixed{}, err
	}

	family := ClassifyFamily(categories)

	var fixed Fixed
	switch family {
	case FamilyCapacitor:
		fixed, err = b.capacitor(attrs, categories)
	case FamilyInductor:
		fixed, err = b.inductor(attrs, categories)
	case FamilyResistor:
		fixed, err = b.resistor(attrs)
	default:
		if b.strict {
			return family, Fixed{}, fmt.Errorf("%w: %s", ErrUnsupportedCategory, categories)
		}
		fixed, err = b.other(attrs, categories)
	}
	if err != nil {
		return family, Fixed{}, err
	}

	return family, fixed, nil
}

func (b *SymbolBuilder) capacitor(attrs Attributes, categories string) (Fixed, error) {
	raw, err := attrs.require(FieldCapacitance)
	if err != nil {
		return Fixed{}, err
	}

	value, err := NormalizeValue(raw, CapacitanceStyle, b.events)
	if err != nil {
		return Fixed{}, err
	}

	tolerance, err := attrs.require(FieldTolerance)
	if err != nil {
		return Fixed{}, err
	}

	voltage, err := attrs.require(FieldVoltageRated)
	if err != nil {
		return Fixed{}, err
	}

	pkg, err := packageName(attrs)
	if err != nil {
		return Fixed{}, err
	}

	temperature := "[FIX_THIS]"
	if coefficient, ok := attrs[FieldTemperatureCoeff]; ok {
		temperature = coefficient
		if coefficient == "C0G, NP0" {
			temperature = "NP0"
		}
	} else if strings.Contains(categories, "Tantalum") {
		temperature = "TANT"
	}

	name := fmt.Sprintf("C_%s_%s_%s_%s_%s",
		value, stripTolerance(tolerance), voltage, temperature, pkg)

	return b.fixed(FamilyCapacitor, "C", name, "C_"+pkg)
}

func (b *SymbolBuilder) inductor(attrs Attributes, categories string) (Fixed, error) {
	pkg, err := packageName(attrs)
	if err != nil {
		return Fixed{}, err
	}

	if strings.Contains(categories, "Ferrite") {
		raw, err := attrs.require(FieldImpedance)
		if err != nil {
			return Fixed{}, err
		}

		value, err := NormalizeValue(raw, ImpedanceStyle, b.events)
		if err != nil {
			return Fixed{}, err
		}

		current, err := attrs.require(FieldCurrentRatingMax)
		if err != nil {
			return Fixed{}, err
		}

		name := fmt.Sprintf("FB_%s_%s_%s", value, current, pkg)
		return b.fixed(FamilyInductor, "L", name, "L_"+pkg)
	}

	raw, err := attrs.require(FieldInductance)
	if err != nil {
		return Fixed{}, err
	}

	value, err := NormalizeValue(raw, InductanceStyle, b.events)
	if err != nil {
		return Fixed{}, err
	}

	tolerance, err := attrs.require(FieldTolerance)
	if err != nil {
		return Fixed{}, err
	}

	current, err := attrs.require(FieldCurrentRating)
	if err != nil {
		return Fixed{}, err
	}

	name := fmt.Sprintf("L_%s_%s_%s_%s", value, stripTolerance(tolerance), current, pkg)
	return b.fixed(FamilyInductor, "L", name, "L_"+pkg)
}

func (b *SymbolBuilder) resistor(attrs Attributes) (Fixed, error) {
	raw, err := attrs.require(FieldResistance)
	if err != nil {
		return Fixed{}, err
	}

	value, err := NormalizeValue(raw, ResistanceStyle, b.events)
	if err != nil {
		return Fixed{}, err
	}

	tolerance, err := attrs.require(FieldTolerance)
	if err != nil {
		return Fixed{}, err
	}
	if tolerance == "Jumper" {
		tolerance = "0%"
	} else {
		tolerance = stripTolerance(tolerance)
	}

	power, err := attrs.require(FieldPower)
	if err != nil {
		return Fixed{}, err
	}
	power = strings.Split(power, ",")[0]

	pkg, err := packageName(attrs)
	if err != nil {
		return Fixed{}, err
	}

	name := fmt.Sprintf("R_%s_%s_%s_%s", value, tolerance, power, pkg)
	return b.fixed(FamilyResistor, "R", name, "R_"+pkg)
}

func (b *SymbolBuilder) other(attrs Attributes, categories string) (Fixed, error) {
	name, err := attrs.require(FieldManufacturerPart)
	if err != nil {
		return Fixed{}, err
	}

	// the name is the library key, a blank one matches every library
	name = strings.TrimSpace(name)
	if name == "" {
		return Fixed{}, &MissingFieldError{Field: FieldManufacturerPart}
	}

	reference := "U"
	switch {
	case strings.Contains(categories, "FET"), strings.Contains(categories, "BJT"):
		reference = "Q"
	case strings.Contains(categories, "Diodes"):
		reference = "D"
	case strings.Contains(categories, "Crystals"):
		reference = "X"
	}

	footprint, err := b.footprint(FamilyOther, name, name, name)
	if err != nil {
		return Fixed{}, err
	}

	return Fixed{Reference: reference, Name: name, Footprint: footprint}, nil
}

/*
	Qualify the footprint with the family's footprint library and clear it
	when the catalog does not know it.
*/
func (b *SymbolBuilder) fixed(family Family, reference, name, footprint string) (Fixed, error) {
	qualified := footprint
	if lib := b.families[family].FootprintLib; lib != "" {
		qualified = lib + ":" + footprint
	}

	qualified, err := b.footprint(family, name, qualified, footprint)
	if err != nil {
		return Fixed{}, err
	}

	return Fixed{Reference: reference, Name: name, Footprint: qualified}, nil
}

func (b *SymbolBuilder) footprint(family Family, name, qualified, footprint string) (string, error) {
	if b.catalog == nil {
		return qualified, nil
	}

	found, err := b.catalog.Has(b.families[family].FootprintDir, footprint)
	if err != nil {
		return "", fmt.Errorf("look up footprint %s: %w", qualified, err)
	}

	if !found {
		b.events.Emit(Event{
			Kind:      EventMissingFootprint,
			Family:    family,
			Symbol:    name,
			Footprint: qualified,
		})
		return "", nil
	}

	return qualified, nil
}

func packageName(attrs Attributes) (string, error) {
	pkg, err := attrs.require(FieldPackage)
	if err != nil {
		return "", err
	}

	if pkg == "Nonstandard" {
		return attrs.require(FieldSupplierPackage)
	}

	return strings.Split(pkg, " ")[0], nil
}

func stripTolerance(tolerance string) string {
	return strings.ReplaceAll(tolerance, "±", "")
}
