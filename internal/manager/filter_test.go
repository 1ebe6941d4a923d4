package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPicker() *Picker {
	return NewPicker([]Option{
		{Value: "all", Label: "Todas"},
		{Value: "pending", Label: "Pendientes", Icon: "⏳"},
		{Value: "range", Label: "Rango personalizado", NeedsInput: true},
	})
}

func TestPickerImmediateCommit(t *testing.T) {
	p := statusPicker()

	committed, err := p.Pick("pending")
	require.NoError(t, err)
	assert.True(t, committed)

	value, input := p.Active()
	assert.Equal(t, "pending", value)
	assert.Empty(t, input)
}

func TestPickerUnknownOption(t *testing.T) {
	p := statusPicker()
	_, err := p.Pick("nope")
	assert.Error(t, err)

	value, _ := p.Active()
	assert.Empty(t, value)
}

func TestPickerStagedOption(t *testing.T) {
	p := statusPicker()
	_, err := p.Pick("pending")
	require.NoError(t, err)

	committed, err := p.Pick("range")
	require.NoError(t, err)
	assert.False(t, committed, "options needing input stage instead of committing")

	// Still on the previous selection until Apply.
	value, _ := p.Active()
	assert.Equal(t, "pending", value)

	require.NoError(t, p.Apply("2026-08-01..2026-08-15"))
	value, input := p.Active()
	assert.Equal(t, "range", value)
	assert.Equal(t, "2026-08-01..2026-08-15", input)
}

func TestPickerCancelPending(t *testing.T) {
	p := statusPicker()
	_, err := p.Pick("pending")
	require.NoError(t, err)
	_, err = p.Pick("range")
	require.NoError(t, err)

	p.CancelPending()
	assert.Error(t, p.Apply("anything"), "nothing staged after cancel")

	value, _ := p.Active()
	assert.Equal(t, "pending", value)
}

func TestPickerApplyWithoutPending(t *testing.T) {
	p := statusPicker()
	assert.Error(t, p.Apply("input"))
}

func TestPickerClear(t *testing.T) {
	p := statusPicker()
	_, err := p.Pick("range")
	require.NoError(t, err)
	require.NoError(t, p.Apply("x"))

	p.Clear()
	value, input := p.Active()
	assert.Empty(t, value)
	assert.Empty(t, input)
}

func TestPickerOptionsCopy(t *testing.T) {
	p := statusPicker()
	opts := p.Options()
	require.Len(t, opts, 3)
	opts[0].Value = "mutated"

	fresh := p.Options()
	assert.Equal(t, "all", fresh[0].Value)
}
