package wisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeLevelRegistry wires one fresh recorder per severity.
func threeLevelRegistry(t *testing.T) (*Registry, map[Severity]*recorder) {
	t.Helper()
	reg := NewRegistry(nil)
	recs := make(map[Severity]*recorder)
	for _, level := range []Severity{DebugLevel, InfoLevel, ErrorLevel} {
		rec := &recorder{}
		recs[level] = rec
		reg.Register(level, rec)
	}
	return reg, recs
}

func TestChainExactRouting(t *testing.T) {
	reg, recs := threeLevelRegistry(t)
	chain := NewChain(reg, nil)

	chain.Handle(InfoLevel, "a")
	require.Equal(t, []string{"INFO: a"}, recs[InfoLevel].received())
	require.Empty(t, recs[ErrorLevel].received())
	require.Empty(t, recs[DebugLevel].received())
}

func TestChainTagFormatting(t *testing.T) {
	reg, recs := threeLevelRegistry(t)
	chain := NewChain(reg, nil)

	chain.Handle(DebugLevel, "d")
	chain.Handle(InfoLevel, "i")
	chain.Handle(ErrorLevel, "e")

	assert.Equal(t, []string{"DEBUG: d"}, recs[DebugLevel].received())
	assert.Equal(t, []string{"INFO: i"}, recs[InfoLevel].received())
	assert.Equal(t, []string{"ERROR: e"}, recs[ErrorLevel].received())
}

func TestChainAtOrAbovePolicy(t *testing.T) {
	t.Run("error reaches every level", func(t *testing.T) {
		reg, recs := threeLevelRegistry(t)
		chain := NewChain(reg, MatchAtOrAbove)

		chain.Handle(ErrorLevel, "x")
		// Each matching link notifies at its OWN level and tag.
		assert.Equal(t, []string{"DEBUG: x"}, recs[DebugLevel].received())
		assert.Equal(t, []string{"INFO: x"}, recs[InfoLevel].received())
		assert.Equal(t, []string{"ERROR: x"}, recs[ErrorLevel].received())
	})

	t.Run("debug reaches only debug", func(t *testing.T) {
		reg, recs := threeLevelRegistry(t)
		chain := NewChain(reg, MatchAtOrAbove)

		chain.Handle(DebugLevel, "y")
		assert.Equal(t, []string{"DEBUG: y"}, recs[DebugLevel].received())
		assert.Empty(t, recs[InfoLevel].received())
		assert.Empty(t, recs[ErrorLevel].received())
	})
}

// Under the exact policy the traversal order decides which link matches
// first, never the delivery set.
func TestChainOrderDoesNotChangeDeliverySet(t *testing.T) {
	for _, order := range [][]Severity{
		{InfoLevel, ErrorLevel, DebugLevel},
		{DebugLevel, ErrorLevel, InfoLevel},
		{ErrorLevel, InfoLevel, DebugLevel},
	} {
		reg, recs := threeLevelRegistry(t)
		chain := NewChain(reg, nil, order...)

		chain.Handle(ErrorLevel, "b")
		require.Equal(t, []string{"ERROR: b"}, recs[ErrorLevel].received())
		require.Empty(t, recs[InfoLevel].received())
		require.Empty(t, recs[DebugLevel].received())
	}
}

func TestChainPartialOrder(t *testing.T) {
	reg, recs := threeLevelRegistry(t)
	chain := NewChain(reg, nil, ErrorLevel)

	chain.Handle(InfoLevel, "skipped")
	chain.Handle(ErrorLevel, "kept")
	require.Empty(t, recs[InfoLevel].received())
	require.Equal(t, []string{"ERROR: kept"}, recs[ErrorLevel].received())
}

func TestChainConstructionValidation(t *testing.T) {
	reg := NewRegistry(nil)

	t.Run("nil registry", func(t *testing.T) {
		require.Panics(t, func() {
			NewChain(nil, nil)
		})
	})

	t.Run("duplicate severity", func(t *testing.T) {
		require.Panics(t, func() {
			NewChain(reg, nil, InfoLevel, ErrorLevel, InfoLevel)
		})
	})

	t.Run("severity outside the set", func(t *testing.T) {
		require.Panics(t, func() {
			NewChain(reg, nil, Severity(7))
		})
	})
}
