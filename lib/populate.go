package lib

import (
	"context"
	"fmt"
	"path/filepath"
)

type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeDuplicate
	OutcomeSimilar
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeSimilar:
		return "similar"
	}

	return "unknown"
}

type Result struct {
	Part      string
	Family    Family
	Symbol    string
	Footprint string
	Outcome   Outcome
}

/*
	Populator carries one run: the page source, the symbol builder and the
	per-family library buffers. Parts are added one at a time, libraries
	are only written by Flush.
*/
type Populator struct {
	source    PageSource
	builder   *SymbolBuilder
	libraries map[Family]*FamilyLibrary
	styles    map[Family]SymbolStyle
	supplier  string
	ignored   []string
	events    Events
}

func NewPopulator(cfg *Config, source PageSource, catalog FootprintCatalog, events Events) (*Populator, error) {
	if events == nil {
		events = DiscardEvents
	}

	families, err := cfg.FamilyConfigs()
	if err != nil {
		return nil, err
	}

	libraries := make(map[Family]*FamilyLibrary, len(families))
	for family, fc := range families {
		libraries[family] = NewFamilyLibrary(
			family,
			filepath.Join(cfg.LibraryDir, fc.Library),
			filepath.Join(cfg.LibraryDir, fc.Docs),
			events,
		)
	}

	return &Populator{
		source:    source,
		builder:   NewSymbolBuilder(catalog, families, cfg.Strict, events),
		libraries: libraries,
		styles:    DefaultSymbolStyles,
		supplier:  cfg.Supplier.Name,
		ignored:   append(append([]string{}, DefaultIgnoredFields...), cfg.IgnoreFields...),
		events:    events,
	}, nil
}

func (p *Populator) Library(family Family) *FamilyLibrary {
	return p.libraries[family]
}

/*
	Fetch a part, build its symbol and queue it for its family's library.
	Parts whose number or symbol name already appear in the library file
	are skipped.
*/
func (p *Populator) Add(ctx context.Context, part string) (Result, error) {
	page, err := p.source.Fetch(ctx, part)
	if err != nil {
		return Result{Part: part}, err
	}

	attrs := ExtractAttributes(page.Details, page.Attributes, p.supplier, p.ignored)

	family, fixed, err := p.builder.Build(attrs)
	if err != nil {
		return Result{Part: part, Family: family}, fmt.Errorf("%s: %w", part, err)
	}

	result := Result{
		Part:      part,
		Family:    family,
		Symbol:    fixed.Name,
		Footprint: fixed.Footprint,
	}

	library, ok := p.libraries[family]
	if !ok {
		return result, fmt.Errorf("%s: no library configured for %s", part, family)
	}
	if err := library.Load(); err != nil {
		return result, err
	}

	if library.Symbols.Contains(part) {
		result.Outcome = OutcomeDuplicate
		p.events.Emit(Event{Kind: EventDuplicatePart, Part: part, Family: family})
		return result, nil
	}

	if library.Symbols.Contains(fixed.Name) {
		result.Outcome = OutcomeSimilar
		p.events.Emit(Event{Kind: EventSimilarSymbol, Part: part, Family: family, Symbol: fixed.Name})
		return result, nil
	}

	library.Add(
		FormatSymbol(attrs, fixed, p.styles[family]),
		FormatDescription(attrs[FieldDescription], fixed.Name),
	)

	result.Outcome = OutcomeAdded
	p.events.Emit(Event{Kind: EventSymbolAdded, Part: part, Family: family, Symbol: fixed.Name})

	return result, nil
}

/*
	Flush writes every family library that has new entries. Either all of
	the files are replaced or none are.
*/
func (p *Populator) Flush() error {
	files := []*LibraryFile{}
	for _, family := range Families {
		library, ok := p.libraries[family]
		if !ok {
			continue
		}

		files = append(files, library.Files()...)
	}

	return FlushFiles(files...)
}

/*
	Process the parts in order, after dropping repeats. Any error stops
	the run before anything is written.
*/
func (p *Populator) Run(ctx context.Context, parts []string) ([]Result, error) {
	results := []Result{}
	for _, part := range UniqueParts(parts) {
		result, err := p.Add(ctx, part)
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	if err := p.Flush(); err != nil {
		return results, err
	}

	p.events.Emit(Event{Kind: EventComplete})
	return results, nil
}
