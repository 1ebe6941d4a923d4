package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterNotifyAndDismiss(t *testing.T) {
	c := NewCenter(time.Minute)
	defer c.Close()

	c.Notify(LevelSuccess, "Amenity creado correctamente.")
	c.Notify(LevelError, "No se pudo conectar con el servidor.")

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, LevelSuccess, active[0].Level, "oldest first")
	assert.Equal(t, "Amenity creado correctamente.", active[0].Message)

	c.Dismiss(active[0].ID)
	active = c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, LevelError, active[0].Level)

	// Dismissing an unknown id is a no-op.
	c.Dismiss(active[0].ID)
	c.Dismiss(active[0].ID)
	assert.Empty(t, c.Active())
}

func TestCenterAutoDismiss(t *testing.T) {
	c := NewCenter(30 * time.Millisecond)
	defer c.Close()

	c.Notify(LevelInfo, "Hay 2 reservas pendientes de aprobación.")
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCenterClose(t *testing.T) {
	c := NewCenter(time.Minute)
	c.Notify(LevelInfo, "uno")
	c.Notify(LevelInfo, "dos")

	c.Close()
	assert.Empty(t, c.Active())
}

func TestToastProgress(t *testing.T) {
	born := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	toast := Toast{CreatedAt: born, ExpiresAt: born.Add(10 * time.Second)}

	assert.Equal(t, 1.0, toast.Progress(born))
	assert.InDelta(t, 0.5, toast.Progress(born.Add(5*time.Second)), 0.001)
	assert.Equal(t, 0.0, toast.Progress(born.Add(10*time.Second)))
	assert.Equal(t, 0.0, toast.Progress(born.Add(time.Minute)))

	t.Run("degenerate lifetime", func(t *testing.T) {
		assert.Equal(t, 0.0, Toast{CreatedAt: born, ExpiresAt: born}.Progress(born))
	})
}

func TestNotifierFunc(t *testing.T) {
	var gotLevel Level
	var gotMessage string
	fn := NotifierFunc(func(level Level, message string) {
		gotLevel, gotMessage = level, message
	})

	fn.Notify(LevelError, "falló")
	assert.Equal(t, LevelError, gotLevel)
	assert.Equal(t, "falló", gotMessage)
}
