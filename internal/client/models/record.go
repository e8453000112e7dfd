// Package models defines the client-side data models kept in the local
// cache and exchanged with the ProdHub server API.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncStatus tags a local record with its relation to the last known
// server copy.
type SyncStatus string

const (
	StatusSynced  SyncStatus = "synced"
	StatusPending SyncStatus = "pending"
	// StatusConflict is part of the stored model but no code path assigns
	// it: concurrent edits resolve last-write-wins on the server.
	StatusConflict SyncStatus = "conflict"
)

// TempIDPrefix marks identifiers generated locally before the server has
// accepted the record. A record carrying one is pushed as a create, never
// as an update.
const TempIDPrefix = "temp-"

// NewTempID returns a fresh temporary identifier.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id was generated locally and has not yet been
// replaced by a server-assigned identifier.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Collection names. They double as the API resource path segment
// (GET /api/<collection>) and the local table lookup key.
const (
	CollectionTasks     = "tasks"
	CollectionNotes     = "notes"
	CollectionExpenses  = "expenses"
	CollectionHabits    = "habits"
	CollectionHabitLogs = "habit-logs"
)

// Meta carries the fields common to every synced entity. Embedding it
// gives the entity its Syncable implementation.
type Meta struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	SyncStatus SyncStatus `json:"syncStatus"`
}

// Syncable is the record surface the sync layer operates on. All five
// entity types implement it through Meta.
type Syncable interface {
	RecordID() string
	SetRecordID(id string)
	Owner() string
	State() SyncStatus
	SetState(s SyncStatus)
	// StampNew initialises creation and update timestamps.
	StampNew(now time.Time)
	// StampUpdated refreshes the update timestamp only.
	StampUpdated(now time.Time)
}

func (m *Meta) RecordID() string           { return m.ID }
func (m *Meta) SetRecordID(id string)      { m.ID = id }
func (m *Meta) Owner() string              { return m.UserID }
func (m *Meta) State() SyncStatus          { return m.SyncStatus }
func (m *Meta) SetState(s SyncStatus)      { m.SyncStatus = s }
func (m *Meta) StampUpdated(now time.Time) { m.UpdatedAt = now }

func (m *Meta) StampNew(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Patch is a partial update merged into an existing record. Nil fields
// keep their prior value. Apply reports false when the patch does not
// match the record's type.
type Patch interface {
	Apply(rec Syncable) bool
}
