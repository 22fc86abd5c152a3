package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
)

type fakeCourse struct {
	service.Course
	snapshot domain.Snapshot
	restored *domain.Snapshot
}

func (f *fakeCourse) Snapshot() domain.Snapshot {
	return f.snapshot
}

func (f *fakeCourse) Restore(snapshot domain.Snapshot) error {
	f.restored = &snapshot
	return nil
}

func testSnapshot() domain.Snapshot {
	pct := 80.0
	return domain.Snapshot{
		Config: domain.DefaultCourseConfig(),
		Units: []domain.Unit{
			{ID: "u1", Code: "MF0490", Name: "Linux", Start: "2025-09-16", End: "2025-10-10", RequiredPct: &pct},
			{ID: "u2", Name: "Networks"},
		},
		Students: []domain.Student{{ID: "s1", Name: "Ana"}},
		Attendance: domain.AttendanceTable{
			"s1": {"2025-09-16": domain.MarkPresent, "2025-09-17": domain.MarkJustified},
		},
		SelectedDate: "2025-09-17",
	}
}

func TestMake(t *testing.T) {
	now := time.Date(2025, 9, 16, 10, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	envelope := Make(domain.Snapshot{}, now)

	assert.Equal(t, Kind, envelope.Kind)
	assert.Equal(t, Version, envelope.Version)
	assert.Equal(t, "2025-09-16T08:30:00.000Z", envelope.Timestamp)
	assert.NotNil(t, envelope.Payload.Attendance)
}

func TestService_roundTrip(t *testing.T) {
	course := &fakeCourse{snapshot: testSnapshot()}
	s := NewService(course, time.Now)

	buf := &bytes.Buffer{}
	require.NoError(t, s.Export(buf))

	fields := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.JSONEq(t, `"app-backup"`, string(fields["kind"]))
	assert.JSONEq(t, `1`, string(fields["version"]))

	require.NoError(t, s.Import(buf))
	require.NotNil(t, course.restored)
	assert.Equal(t, testSnapshot(), *course.restored)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "minimal",
			input: `{"kind":"app-backup","version":1,"timestamp":"2025-09-16T08:30:00.000Z","payload":{}}`,
		},
		{
			name:    "not json",
			input:   `kind: app-backup`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "wrong kind",
			input:   `{"kind":"other","version":1,"timestamp":"t","payload":{}}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "wrong version",
			input:   `{"kind":"app-backup","version":2,"timestamp":"t","payload":{}}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "numeric timestamp",
			input:   `{"kind":"app-backup","version":1,"timestamp":12,"payload":{}}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "missing timestamp",
			input:   `{"kind":"app-backup","version":1,"payload":{}}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "array payload",
			input:   `{"kind":"app-backup","version":1,"timestamp":"t","payload":[]}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "null payload",
			input:   `{"kind":"app-backup","version":1,"timestamp":"t","payload":null}`,
			wantErr: ierrors.ErrInvalidBackup,
		},
		{
			name:    "reserved unit id",
			input:   `{"kind":"app-backup","version":1,"timestamp":"t","payload":{"units":[{"id":"__TOTAL__","name":"x"}]}}`,
			wantErr: ierrors.ErrReservedUnitID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, envelope.Payload.Attendance)
		})
	}
}

func TestService_Import_rejectedLeavesStateAlone(t *testing.T) {
	course := &fakeCourse{}
	s := NewService(course, time.Now)

	err := s.Import(strings.NewReader(`{"kind":"app-backup","version":3,"timestamp":"t","payload":{}}`))
	assert.True(t, errors.Is(err, ierrors.ErrInvalidBackup), "err = %v", err)
	assert.Nil(t, course.restored)
}
