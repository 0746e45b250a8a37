package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Outcomes stored for each command
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ErrNotOpen is returned when history is used without an open database
var ErrNotOpen = errors.New("history database is not open")

// HistoryEntry is one dispatched command
type HistoryEntry struct {
	ID           int64
	SessionID    string
	Command      string
	Outcome      string
	Rows         int
	ErrorMessage string
	CreatedAt    time.Time
}

// AddHistory records a command
func AddHistory(sessionID, command string, rows int, cmdErr error) error {
	if database == nil {
		return ErrNotOpen
	}

	outcome := OutcomeOK
	errMsg := ""
	if cmdErr != nil {
		outcome = OutcomeError
		errMsg = cmdErr.Error()
	}

	_, err := database.Exec(`
		INSERT INTO command_history (session_id, command, outcome, row_count, error_message)
		VALUES (?, ?, ?, ?, ?)`,
		sessionID, command, outcome, rows, errMsg,
	)
	return err
}

// GetHistory retrieves the most recent commands, newest first
func GetHistory(limit int) ([]*HistoryEntry, error) {
	if database == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT id, session_id, command, outcome, row_count, error_message, created_at
		FROM command_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*HistoryEntry
	for rows.Next() {
		h := &HistoryEntry{}
		err := rows.Scan(&h.ID, &h.SessionID, &h.Command, &h.Outcome, &h.Rows, &h.ErrorMessage, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// ClearHistory removes all recorded commands
func ClearHistory() error {
	if database == nil {
		return ErrNotOpen
	}
	_, err := database.Exec(`DELETE FROM command_history`)
	return err
}

// DeleteHistoryOlderThan removes history older than the given duration
func DeleteHistoryOlderThan(d time.Duration) (int64, error) {
	if database == nil {
		return 0, ErrNotOpen
	}
	cutoff := time.Now().UTC().Add(-d).Format("2006-01-02 15:04:05")
	res, err := database.Exec(`DELETE FROM command_history WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SessionRecorder records every command of one session under a shared id
type SessionRecorder struct {
	SessionID string
}

// NewSessionRecorder starts a new session with a random id
func NewSessionRecorder() *SessionRecorder {
	return &SessionRecorder{SessionID: uuid.NewString()}
}

// Record stores a command outcome
func (r *SessionRecorder) Record(command string, rows int, err error) error {
	return AddHistory(r.SessionID, command, rows, err)
}
