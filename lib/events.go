package lib

import (
	"go.uber.org/zap"
)

type EventKind int

const (
	EventDuplicatePart EventKind = iota
	EventSimilarSymbol
	EventMissingFootprint
	EventMissingCatalog
	EventUnitLookup
	EventLibraryCreated
	EventLibraryVersion
	EventSymbolAdded
	EventLibraryWritten
	EventComplete
)

var eventNames = map[EventKind]string{
	EventDuplicatePart:    "duplicate-part",
	EventSimilarSymbol:    "similar-symbol",
	EventMissingFootprint: "missing-footprint",
	EventMissingCatalog:   "missing-catalog",
	EventUnitLookup:       "unit-lookup",
	EventLibraryCreated:   "library-created",
	EventLibraryVersion:   "library-version",
	EventSymbolAdded:      "symbol-added",
	EventLibraryWritten:   "library-written",
	EventComplete:         "complete",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}

	return "unknown"
}

/*
	Diagnostic emitted by the pipeline. Only the fields relevant to the
	kind are set.
*/
type Event struct {
	Kind      EventKind
	Part      string
	Family    Family
	Symbol    string
	Footprint string
	Path      string
	Detail    string
}

type Events interface {
	Emit(Event)
}

type EventFunc func(Event)

func (f EventFunc) Emit(e Event) { f(e) }

// EventLog records every event it receives.
type EventLog []Event

func (l *EventLog) Emit(e Event) {
	*l = append(*l, e)
}

// Kinds returns the kinds of the recorded events, in order.
func (l EventLog) Kinds() []EventKind {
	kinds := make([]EventKind, 0, len(l))
	for _, e := range l {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

type discardEvents struct{}

func (discardEvents) Emit(Event) {}

// DiscardEvents drops everything.
var DiscardEvents Events = discardEvents{}

type logEvents struct {
	logger *zap.Logger
}

/*
	Render events as log lines. Skips and footprint problems are warnings,
	progress is info.
*/
func NewLogEvents(logger *zap.Logger) Events {
	return &logEvents{logger: logger}
}

func (l *logEvents) Emit(e Event) {
	fields := []zap.Field{zap.String("event", e.Kind.String())}
	if e.Part != "" {
		fields = append(fields, zap.String("part", e.Part))
	}
	if e.Symbol != "" {
		fields = append(fields, zap.String("symbol", e.Symbol))
	}
	if e.Footprint != "" {
		fields = append(fields, zap.String("footprint", e.Footprint))
	}
	if e.Path != "" {
		fields = append(fields, zap.String("path", e.Path))
	}
	if e.Detail != "" {
		fields = append(fields, zap.String("detail", e.Detail))
	}

	switch e.Kind {
	case EventDuplicatePart:
		l.logger.Info("part number already exists in "+e.Family.String()+" library, checking next part", fields...)
	case EventSimilarSymbol:
		l.logger.Info("similar part already exists in "+e.Family.String()+" library, checking next part", fields...)
	case EventMissingFootprint:
		l.logger.Warn("no footprint found", fields...)
	case EventMissingCatalog:
		l.logger.Warn("footprint catalog not found", fields...)
	case EventUnitLookup:
		l.logger.Error("value does not have a valid SI unit", fields...)
	case EventLibraryCreated:
		l.logger.Info("library file not found, starting from an empty library", fields...)
	case EventLibraryVersion:
		l.logger.Warn("library file version is newer than supported", fields...)
	case EventSymbolAdded:
		l.logger.Debug("symbol added", fields...)
	case EventLibraryWritten:
		l.logger.Info("library written", fields...)
	case EventComplete:
		l.logger.Info("Library updating complete")
	default:
		l.logger.Info("event", fields...)
	}
}
