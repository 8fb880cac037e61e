package model

import "time"

type DashboardStats struct {
	TotalUsers int64 `json:"total_users"`
	TotalNotes int64 `json:"total_notes"`
}

// UserStats covers every user; zero-note users appear with a zero count and
// a null last_note_date.
type UserStats struct {
	Username     string     `json:"username"`
	TotalNotes   int64      `json:"total_notes"`
	LastNoteDate *time.Time `json:"last_note_date"`
}

type DailyNoteCount struct {
	Date  string `bson:"_id" json:"date"` // YYYY-MM-DD in the configured stats timezone
	Count int64  `bson:"count" json:"count"`
}

// NotesPerUser only ever contains users with at least one note.
type NotesPerUser struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
}
