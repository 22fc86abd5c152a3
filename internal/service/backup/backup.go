// Package backup writes and reads the versioned JSON envelope holding the
// full course state.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
)

const (
	Kind    = "app-backup"
	Version = 1

	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Envelope struct {
	Kind      string          `json:"kind"`
	Version   int             `json:"version"`
	Timestamp string          `json:"timestamp"`
	Payload   domain.Snapshot `json:"payload"`
}

type rawEnvelope struct {
	Kind      *string         `json:"kind"`
	Version   *int            `json:"version"`
	Timestamp *string         `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type svc struct {
	courseSvc service.Course
	now       func() time.Time
}

func NewService(courseSvc service.Course, now func() time.Time) *svc {
	return &svc{
		courseSvc: courseSvc,
		now:       now,
	}
}

func (s *svc) Export(w io.Writer) error {
	envelope := Make(s.courseSvc.Snapshot(), s.now())
	if err := Encode(w, envelope); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	return nil
}

// Import replaces the whole course state with the backup. Nothing changes
// when the backup is rejected.
func (s *svc) Import(r io.Reader) error {
	envelope, err := Decode(r)
	if err != nil {
		return fmt.Errorf("Decode: %w", err)
	}
	if err = s.courseSvc.Restore(envelope.Payload); err != nil {
		return fmt.Errorf("courseSvc.Restore: %w", err)
	}
	return nil
}

func Make(snapshot domain.Snapshot, now time.Time) Envelope {
	if snapshot.Attendance == nil {
		snapshot.Attendance = make(domain.AttendanceTable)
	}
	return Envelope{
		Kind:      Kind,
		Version:   Version,
		Timestamp: now.UTC().Format(TimestampLayout),
		Payload:   snapshot,
	}
}

func Encode(w io.Writer, envelope Envelope) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("encoder.Encode: %w", err)
	}
	return nil
}

// Decode accepts only a version 1 envelope of this application whose
// timestamp is a string and whose payload is an object.
func Decode(r io.Reader) (Envelope, error) {
	raw := rawEnvelope{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Envelope{}, fmt.Errorf("json.Decode: %v: %w", err, ierrors.ErrInvalidBackup)
	}

	switch {
	case raw.Kind == nil || *raw.Kind != Kind:
		return Envelope{}, fmt.Errorf("unexpected kind: %w", ierrors.ErrInvalidBackup)
	case raw.Version == nil || *raw.Version != Version:
		return Envelope{}, fmt.Errorf("unsupported version: %w", ierrors.ErrInvalidBackup)
	case raw.Timestamp == nil:
		return Envelope{}, fmt.Errorf("missing timestamp: %w", ierrors.ErrInvalidBackup)
	case !isObject(raw.Payload):
		return Envelope{}, fmt.Errorf("payload is not an object: %w", ierrors.ErrInvalidBackup)
	}

	snapshot := domain.Snapshot{}
	if err := json.Unmarshal(raw.Payload, &snapshot); err != nil {
		return Envelope{}, fmt.Errorf("json.Unmarshal(payload): %v: %w", err, ierrors.ErrInvalidBackup)
	}
	if snapshot.Attendance == nil {
		snapshot.Attendance = make(domain.AttendanceTable)
	}
	for _, unit := range snapshot.Units {
		if unit.ID == domain.TotalUnitID {
			return Envelope{}, fmt.Errorf("unit %q: %w: %w", unit.ID, ierrors.ErrInvalidBackup, ierrors.ErrReservedUnitID)
		}
	}

	return Envelope{
		Kind:      *raw.Kind,
		Version:   *raw.Version,
		Timestamp: *raw.Timestamp,
		Payload:   snapshot,
	}, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
