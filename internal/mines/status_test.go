package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "before_start", BeforeStart.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "victory", Victory.String())
	assert.Equal(t, "game_over", GameOver.String())
}

func TestStatusMarshalJSON(t *testing.T) {
	got, err := Running.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"running"`, string(got))
}

func TestStatusNotifications(t *testing.T) {
	var statuses []Status

	b, err := New(3, 3, 0, newRand())
	require.NoError(t, err)
	b.OnStatusChange(func(s Status) { statuses = append(statuses, s) })

	b.OpenCell(1, 1)
	require.NoError(t, b.Reset(3, 3, 0))

	// the first open starts the game and immediately wins it on a board
	// without mines; reset announces the return to the initial state
	assert.Equal(t, []Status{Running, Victory, BeforeStart}, statuses)
}

func TestStatusNotificationOnDetonation(t *testing.T) {
	var statuses []Status

	b, err := New(1, 1, 1, newRand())
	require.NoError(t, err)
	b.OnStatusChange(func(s Status) { statuses = append(statuses, s) })

	b.OpenCell(0, 0)

	assert.Equal(t, []Status{Running, GameOver}, statuses)
}
