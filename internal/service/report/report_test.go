package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/inmem"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/course"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/writebehind"
	"github.com/ilyadubrovsky/tracking-attendance/internal/validation"
	"github.com/ilyadubrovsky/tracking-attendance/pkg/idgen"
)

func newCourse(t *testing.T) service.Course {
	t.Helper()

	store := inmem.NewStore()
	wb := writebehind.NewService(config.WriteBehind{Delay: time.Hour, OpTimeout: time.Second, QueueSize: 1})
	courseSvc := course.NewService(
		store.CourseConfig(), store.Units(), store.Students(), store.Attendance(),
		wb, idgen.NewUUIDProvider(), validation.New(),
	)
	require.NoError(t, courseSvc.Load(context.Background()))

	cfg := domain.DefaultCourseConfig()
	cfg.Start, cfg.End = "2025-09-01", "2025-09-05"
	cfg.Holidays = nil
	require.NoError(t, courseSvc.UpdateConfig(cfg))

	return courseSvc
}

func parse(t *testing.T, buf *bytes.Buffer) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(buf)
	require.NoError(t, err)
	return doc
}

func TestService_Global(t *testing.T) {
	courseSvc := newCourse(t)

	unit, err := courseSvc.AddUnit(domain.Unit{Name: "Linux <intro>", Start: "2025-09-01", End: "2025-09-02"})
	require.NoError(t, err)
	_, err = courseSvc.AddUnit(domain.Unit{Name: "Later"})
	require.NoError(t, err)

	students, err := courseSvc.AddStudentsBulk("Ana\nBen")
	require.NoError(t, err)
	ana, ben := students[0].ID, students[1].ID

	for _, day := range courseSvc.ClassDays() {
		require.NoError(t, courseSvc.SetMark(ana, day, domain.MarkPresent))
		require.NoError(t, courseSvc.SetMark(ben, day, domain.MarkAbsent))
	}
	require.NoError(t, courseSvc.SetMark(ben, "2025-09-05", domain.MarkJustified))

	buf := &bytes.Buffer{}
	require.NoError(t, NewService(courseSvc).Global(buf))
	doc := parse(t, buf)

	headers := doc.Find("#summary thead th")
	assert.Equal(t, 5, headers.Length())
	assert.Contains(t, headers.Eq(2).Text(), "Linux <intro>")
	assert.Contains(t, headers.Eq(1).Text(), "5 d · 25 h")

	anaRow := doc.Find(`#summary tr[data-student="` + ana + `"]`)
	assert.Equal(t, "100.0%", anaRow.Find(`td[data-unit="`+domain.TotalUnitID+`"]`).Text())
	assert.True(t, anaRow.Find(`td[data-unit="`+domain.TotalUnitID+`"]`).HasClass("meets"))

	benTotal := doc.Find(`#summary tr[data-student="` + ben + `"] td[data-unit="` + domain.TotalUnitID + `"]`)
	assert.Equal(t, "20.0%", benTotal.Text())
	assert.True(t, benTotal.HasClass("below"))

	benUnit := doc.Find(`#summary tr[data-student="` + ben + `"] td[data-unit="` + unit.Unit.ID + `"]`)
	assert.Equal(t, "0.0%", benUnit.Text())

	benLater := doc.Find(`#summary tr[data-student="` + ben + `"] td.no-days`)
	assert.Equal(t, "—", benLater.Text())

	assert.Equal(t, "1 d", doc.Find(`#summary tr[data-student="`+ben+`"] td.justified`).Text())
}

func TestService_Global_noStudents(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewService(newCourse(t)).Global(buf))

	doc := parse(t, buf)
	assert.Equal(t, "No students.", doc.Find("#summary td.empty").Text())
}

func TestService_Student(t *testing.T) {
	courseSvc := newCourse(t)

	student, err := courseSvc.AddStudent("Ana")
	require.NoError(t, err)
	require.NoError(t, courseSvc.SetMark(student.ID, "2025-09-01", domain.MarkPresent))
	require.NoError(t, courseSvc.SetMark(student.ID, "2025-09-02", domain.MarkAbsent))
	require.NoError(t, courseSvc.SetMark(student.ID, "2025-09-03", domain.MarkJustified))

	buf := &bytes.Buffer{}
	require.NoError(t, NewService(courseSvc).Student(buf, student.ID))
	doc := parse(t, buf)

	assert.Equal(t, "Ana", doc.Find("h1").Text())

	rows := doc.Find("#days tbody tr")
	require.Equal(t, 5, rows.Length())

	labels := make([]string, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		labels = append(labels, row.Find("td").Eq(1).Text())
	})
	assert.Equal(t, []string{"PRESENT", "ABSENT (unjustified)", "ABSENT (justified)", "—", "—"}, labels)

	total := doc.Find(`#units tr[data-unit="` + domain.TotalUnitID + `"] td`)
	assert.Equal(t, "80.0%", total.Eq(5).Text())
	assert.Equal(t, "75.0%", total.Eq(6).Text())

	err = NewService(courseSvc).Student(&bytes.Buffer{}, "ghost")
	assert.True(t, errors.Is(err, ierrors.ErrStudentNotFound), "err = %v", err)
}
