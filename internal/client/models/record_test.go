package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTempID(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))
	assert.NotEqual(t, id, NewTempID())
	assert.False(t, IsTempID("64f1c0ffee"))
	assert.False(t, IsTempID(""))
}

func TestMetaStamps(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{Title: "pay rent"}
	task.StampNew(now)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.UpdatedAt)

	later := now.Add(time.Hour)
	task.StampUpdated(later)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, later, task.UpdatedAt)
}

func TestTaskPatchApply(t *testing.T) {
	due := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	task := &Task{Title: "old", Priority: "low", Completed: false}

	title := "new"
	done := true
	ok := TaskPatch{Title: &title, Completed: &done, DueDate: &due}.Apply(task)
	require.True(t, ok)

	assert.Equal(t, "new", task.Title)
	assert.True(t, task.Completed)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate)
	// untouched fields keep their prior value
	assert.Equal(t, "low", task.Priority)
}

func TestPatchApply_TypeMismatch(t *testing.T) {
	title := "x"
	assert.False(t, TaskPatch{Title: &title}.Apply(&Note{}))
	assert.False(t, NotePatch{Title: &title}.Apply(&Task{}))
}

func TestHabitLogPatchApply(t *testing.T) {
	log := &HabitLog{HabitID: "h1", Completed: false, Note: "meh"}
	done := true
	ok := HabitLogPatch{Completed: &done}.Apply(log)
	require.True(t, ok)
	assert.True(t, log.Completed)
	assert.Equal(t, "h1", log.HabitID)
	assert.Equal(t, "meh", log.Note)
}
