package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	events := NewLogEvents(zap.New(core))

	events.Emit(Event{Kind: EventDuplicatePart, Part: "399-1096-1-ND", Family: FamilyCapacitor})
	events.Emit(Event{Kind: EventMissingFootprint, Symbol: "R_10k0_1%_0.1W_0402", Footprint: "SFUSat-res:R_0402"})
	events.Emit(Event{Kind: EventComplete})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	require.Equal(t, "part number already exists in capacitor library, checking next part", entries[0].Message)
	require.Equal(t, "399-1096-1-ND", entries[0].ContextMap()["part"])

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "SFUSat-res:R_0402", entries[1].ContextMap()["footprint"])

	require.Equal(t, "Library updating complete", entries[2].Message)
}

func TestEventFunc(t *testing.T) {
	kinds := []EventKind{}
	events := EventFunc(func(e Event) { kinds = append(kinds, e.Kind) })

	events.Emit(Event{Kind: EventSymbolAdded})
	DiscardEvents.Emit(Event{Kind: EventComplete})

	require.Equal(t, []EventKind{EventSymbolAdded}, kinds)
	require.Equal(t, "symbol-added", EventSymbolAdded.String())
	require.Equal(t, "unknown", EventKind(-1).String())
}
