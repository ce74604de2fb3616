package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/calculator"
)

func TestDefaultRegistry(t *testing.T) {
	t.Run("special characters have handlers", func(t *testing.T) {
		for _, id := range []string{"biscuit", "freyja", "espada", "ryan"} {
			handler, ok := calculator.DefaultRegistry.Lookup(id)
			require.True(t, ok, "%s should have a handler", id)
			assert.Equal(t, id, handler.Key())
		}
	})

	t.Run("standard characters have no override", func(t *testing.T) {
		for _, id := range []string{"miho", "pascal", "rachel", "teo", "yeonhee", "klahan", ""} {
			handler, ok := calculator.DefaultRegistry.Lookup(id)
			assert.False(t, ok, "%s should use the standard pipeline", id)
			assert.Nil(t, handler)
		}
	})

	t.Run("keys are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"biscuit", "espada", "freyja", "ryan"}, calculator.DefaultRegistry.Keys())
	})
}

func TestNewRegistryLowercasesKeys(t *testing.T) {
	r := calculator.NewRegistry(calculator.NewEspadaHandler())

	_, ok := r.Lookup("ESPADA")
	assert.True(t, ok)
	_, ok = r.Lookup("ryan")
	assert.False(t, ok)
	assert.Equal(t, []string{"espada"}, r.Keys())
}
