package models

import "time"

// Habit is a recurring practice. HabitLog rows reference it by id.
type Habit struct {
	Meta
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency"`
	Goal        int    `json:"goal"`
	Color       string `json:"color"`
	Icon        string `json:"icon,omitempty"`
}

// HabitPatch is a partial Habit update.
type HabitPatch struct {
	Name        *string
	Description *string
	Frequency   *string
	Goal        *int
	Color       *string
	Icon        *string
}

func (p HabitPatch) Apply(rec Syncable) bool {
	h, ok := rec.(*Habit)
	if !ok {
		return false
	}
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.Goal != nil {
		h.Goal = *p.Goal
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	return true
}

// HabitLog records one day's outcome for a habit. HabitID may hold a
// temporary identifier when both the habit and the log were created
// offline; the sync layer rewrites it once the habit has a server id.
type HabitLog struct {
	Meta
	HabitID   string    `json:"habitId"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Note      string    `json:"note,omitempty"`
}

// HabitLogPatch is a partial HabitLog update.
type HabitLogPatch struct {
	Date      *time.Time
	Completed *bool
	Note      *string
}

func (p HabitLogPatch) Apply(rec Syncable) bool {
	l, ok := rec.(*HabitLog)
	if !ok {
		return false
	}
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.Completed != nil {
		l.Completed = *p.Completed
	}
	if p.Note != nil {
		l.Note = *p.Note
	}
	return true
}
