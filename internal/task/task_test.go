package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := ParseDateTime(s)
	require.NoError(t, err)
	return at
}

func TestTodoRender(t *testing.T) {
	todo := NewTodo("buy milk")
	assert.Equal(t, "[T][ ] buy milk", todo.String())
	assert.False(t, todo.IsDone())

	todo.Mark()
	assert.Equal(t, "[T][X] buy milk", todo.String())
}

func TestMarkUnmarkIdempotent(t *testing.T) {
	tasks := []Task{
		NewTodo("a"),
		NewDeadlineAt("b", mustTime(t, "2025-01-01 1800")),
		NewEventAt("c", mustTime(t, "2025-01-01 0900"), mustTime(t, "2025-01-01 1000")),
	}
	for _, tk := range tasks {
		before := tk.String()
		kind := tk.Kind()

		tk.Mark()
		tk.Mark()
		assert.True(t, tk.IsDone())

		tk.Unmark()
		tk.Unmark()
		assert.False(t, tk.IsDone())
		assert.Equal(t, before, tk.String())
		assert.Equal(t, kind, tk.Kind())
	}
}

func TestDeadlineRender(t *testing.T) {
	d, err := NewDeadline("finish report", "2025-01-01 1800")
	require.NoError(t, err)
	assert.Equal(t, "[D][ ] finish report (by: Jan 1 2025 6PM)", d.String())
	assert.Equal(t, "2025-01-01 1800", FormatDateTime(d.By()))
}

func TestEventRender(t *testing.T) {
	e, err := NewEvent("meeting", "2025-01-01 0900", "2025-01-01 1000")
	require.NoError(t, err)
	e.Mark()
	assert.Equal(t, "[E][X] meeting (from: Jan 1 2025 9AM to: Jan 1 2025 10AM)", e.String())
}

func TestEventDoesNotCheckOrdering(t *testing.T) {
	e, err := NewEvent("backwards", "2025-01-02 0900", "2025-01-01 0900")
	require.NoError(t, err)
	assert.True(t, e.To().Before(e.From()))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2025-01-01 1800", false},
		{"midnight", "2024-02-29 0000", false},
		{"month out of range", "2025-13-01 1800", true},
		{"hour out of range", "2023-12-01 2500", true},
		{"minute out of range", "2025-01-01 1060", true},
		{"wrong separator", "2025/01/01 1800", true},
		{"missing time", "2025-01-01", true},
		{"empty", "", true},
		{"words", "tomorrow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateTime(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDateTimeParse))
			assert.Equal(t, ErrDateTimeParse, KindOf(err))
		})
	}
}

func TestNewDeadlineInvalidDate(t *testing.T) {
	_, err := NewDeadline("x", "2025-13-01 1800")
	assert.ErrorIs(t, err, ErrDateTimeParse)

	_, err = NewEvent("x", "2025-01-01 0900", "nope")
	assert.ErrorIs(t, err, ErrDateTimeParse)
}

func TestKindTags(t *testing.T) {
	for _, k := range []Kind{KindTodo, KindDeadline, KindEvent} {
		got, ok := KindFromTag(k.Tag())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := KindFromTag("X")
	assert.False(t, ok)
	assert.Less(t, KindTodo.Rank(), KindDeadline.Rank())
	assert.Less(t, KindDeadline.Rank(), KindEvent.Rank())
}

func TestErrorKinds(t *testing.T) {
	err := NewError(ErrEmptyList)
	assert.Equal(t, "Your task list is empty.", err.Error())
	assert.ErrorIs(t, err, ErrEmptyList)
	assert.NotErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, "EmptyList", ErrEmptyList.String())

	custom := Errorf(ErrInvalidStorageFormat, "Malformed line %d: %s", 3, "x")
	assert.Equal(t, "Malformed line 3: x", custom.Error())

	cause := errors.New("disk full")
	wrapped := WrapError(ErrStorageSave, cause, "Failed to save state: disk full")
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, ErrStorageSave)

	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.Equal(t, ErrInvalidMark, KindOf(ErrInvalidMark))
}
