package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/export"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
)

func (s *svc) routes() {
	api := s.app.Group("/api")

	api.GET("/config", s.getConfig)
	api.PUT("/config", s.putConfig)
	api.GET("/class-days", s.getClassDays)

	api.GET("/units", s.listUnits)
	api.POST("/units", s.createUnit)
	api.GET("/units/:id", s.getUnit)
	api.PUT("/units/:id", s.updateUnit)
	api.DELETE("/units/:id", s.deleteUnit)

	api.GET("/students", s.listStudents)
	api.POST("/students", s.createStudent)
	api.POST("/students/bulk", s.createStudentsBulk)
	api.POST("/students/import", s.importRoster)
	api.DELETE("/students", s.deleteAllStudents)
	api.DELETE("/students/:id", s.deleteStudent)

	api.GET("/attendance/:date", s.getDay)
	api.DELETE("/attendance/:date", s.clearDay)
	api.POST("/attendance/:date/all-present", s.markAllPresent)
	api.PUT("/attendance/:date/:studentID", s.putMark)
	api.POST("/attendance/:date/:studentID/cycle", s.cycleMark)

	api.GET("/selected-date", s.getSelectedDate)
	api.PUT("/selected-date", s.putSelectedDate)
	api.POST("/selected-date/next", s.nextDay)
	api.POST("/selected-date/prev", s.prevDay)

	api.GET("/summary", s.getSummary)
	api.GET("/export/summary.csv", s.exportSummaryCSV)
	api.GET("/export/detail.csv", s.exportDetailCSV)

	api.GET("/backup", s.getBackup)
	api.POST("/backup", s.postBackup)

	api.GET("/reports/summary", s.globalReport)
	api.GET("/reports/students/:id", s.studentReport)
}

type unitResponse struct {
	Unit     domain.Unit `json:"unit"`
	Days     []string    `json:"days"`
	Hours    float64     `json:"hours"`
	Warnings []string    `json:"warnings"`
}

type unitRequest struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	RequiredPct *float64 `json:"requiredPct"`
}

func (r unitRequest) toDomain(id string) domain.Unit {
	return domain.Unit{
		ID:          id,
		Code:        r.Code,
		Name:        r.Name,
		Start:       r.Start,
		End:         r.End,
		RequiredPct: r.RequiredPct,
	}
}

type nameRequest struct {
	Name string `json:"name"`
}

type textRequest struct {
	Text string `json:"text"`
}

type markRequest struct {
	Mark string `json:"mark"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type dayResponse struct {
	Stats domain.DayStats        `json:"stats"`
	Marks map[string]domain.Mark `json:"marks"`
}

type summaryUnit struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Days      int     `json:"days"`
	Hours     float64 `json:"hours"`
	Threshold float64 `json:"threshold"`
}

type summaryCell struct {
	domain.UnitSummary
	Status domain.Status `json:"status"`
}

type summaryStudent struct {
	Student        domain.Student         `json:"student"`
	ByUnit         map[string]summaryCell `json:"byUnit"`
	TotalJustified int                    `json:"totalJustified"`
}

type summaryResponse struct {
	Units    []summaryUnit    `json:"units"`
	Students []summaryStudent `json:"students"`
}

func (s *svc) toUnitResponse(unit domain.UnitDays) unitResponse {
	return unitResponse{
		Unit:     unit.Unit,
		Days:     unit.Days,
		Hours:    unit.Hours(s.courseSvc.Config().HoursPerDay),
		Warnings: unit.Warnings,
	}
}

func (s *svc) getConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, s.courseSvc.Config())
}

func (s *svc) putConfig(c echo.Context) error {
	cfg := domain.CourseConfig{}
	if err := c.Bind(&cfg); err != nil {
		return err
	}
	if err := s.courseSvc.UpdateConfig(cfg); err != nil {
		return fmt.Errorf("courseSvc.UpdateConfig: %w", err)
	}
	return c.JSON(http.StatusOK, s.courseSvc.Config())
}

func (s *svc) getClassDays(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"days":  s.courseSvc.ClassDays(),
		"hours": s.courseSvc.CourseHours(),
	})
}

func (s *svc) listUnits(c echo.Context) error {
	units := s.courseSvc.FilterUnits(c.QueryParam("q"))

	resp := make([]unitResponse, 0, len(units))
	for _, unit := range units {
		resp = append(resp, s.toUnitResponse(unit))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *svc) createUnit(c echo.Context) error {
	req := unitRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	unit, err := s.courseSvc.AddUnit(req.toDomain(""))
	if err != nil {
		return fmt.Errorf("courseSvc.AddUnit: %w", err)
	}
	return c.JSON(http.StatusCreated, s.toUnitResponse(unit))
}

func (s *svc) getUnit(c echo.Context) error {
	unit, err := s.courseSvc.UnitDays(c.Param("id"))
	if err != nil {
		return fmt.Errorf("courseSvc.UnitDays: %w", err)
	}
	return c.JSON(http.StatusOK, s.toUnitResponse(unit))
}

func (s *svc) updateUnit(c echo.Context) error {
	req := unitRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	unit, err := s.courseSvc.UpdateUnit(req.toDomain(c.Param("id")))
	if err != nil {
		return fmt.Errorf("courseSvc.UpdateUnit: %w", err)
	}
	return c.JSON(http.StatusOK, s.toUnitResponse(unit))
}

func (s *svc) deleteUnit(c echo.Context) error {
	if err := s.courseSvc.RemoveUnit(c.Param("id")); err != nil {
		return fmt.Errorf("courseSvc.RemoveUnit: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *svc) listStudents(c echo.Context) error {
	return c.JSON(http.StatusOK, s.courseSvc.Students())
}

func (s *svc) createStudent(c echo.Context) error {
	req := nameRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	student, err := s.courseSvc.AddStudent(req.Name)
	if err != nil {
		return fmt.Errorf("courseSvc.AddStudent: %w", err)
	}
	return c.JSON(http.StatusCreated, student)
}

func (s *svc) createStudentsBulk(c echo.Context) error {
	req := textRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	students, err := s.courseSvc.AddStudentsBulk(req.Text)
	if err != nil {
		return fmt.Errorf("courseSvc.AddStudentsBulk: %w", err)
	}
	return c.JSON(http.StatusCreated, students)
}

// importRoster takes the raw HTML page as the request body.
func (s *svc) importRoster(c echo.Context) error {
	students, err := s.courseSvc.ImportRosterHTML(c.Request().Body)
	if err != nil {
		return fmt.Errorf("courseSvc.ImportRosterHTML: %w", err)
	}
	return c.JSON(http.StatusCreated, students)
}

func (s *svc) deleteStudent(c echo.Context) error {
	if err := s.courseSvc.RemoveStudent(c.Param("id")); err != nil {
		return fmt.Errorf("courseSvc.RemoveStudent: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *svc) deleteAllStudents(c echo.Context) error {
	removed := s.courseSvc.RemoveAllStudents()
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func (s *svc) getDay(c echo.Context) error {
	date := c.Param("date")
	stats, err := s.courseSvc.DayStats(date)
	if err != nil {
		return fmt.Errorf("courseSvc.DayStats: %w", err)
	}

	marks := make(map[string]domain.Mark)
	for _, student := range s.courseSvc.Students() {
		marks[student.ID] = s.courseSvc.Mark(student.ID, date)
	}
	return c.JSON(http.StatusOK, dayResponse{Stats: stats, Marks: marks})
}

func (s *svc) clearDay(c echo.Context) error {
	if err := s.courseSvc.ClearDay(c.Param("date")); err != nil {
		return fmt.Errorf("courseSvc.ClearDay: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *svc) markAllPresent(c echo.Context) error {
	if err := s.courseSvc.MarkAllPresent(c.Param("date")); err != nil {
		return fmt.Errorf("courseSvc.MarkAllPresent: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *svc) putMark(c echo.Context) error {
	req := markRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	mark, ok := domain.ParseMark(req.Mark)
	if !ok {
		return fmt.Errorf("domain.ParseMark(%q): %w", req.Mark, ierrors.ErrInvalidMark)
	}

	if err := s.courseSvc.SetMark(c.Param("studentID"), c.Param("date"), mark); err != nil {
		return fmt.Errorf("courseSvc.SetMark: %w", err)
	}
	return c.JSON(http.StatusOK, markRequest{Mark: string(mark)})
}

func (s *svc) cycleMark(c echo.Context) error {
	mark, err := s.courseSvc.CycleMark(c.Param("studentID"), c.Param("date"))
	if err != nil {
		return fmt.Errorf("courseSvc.CycleMark: %w", err)
	}
	return c.JSON(http.StatusOK, markRequest{Mark: string(mark)})
}

func (s *svc) getSelectedDate(c echo.Context) error {
	return c.JSON(http.StatusOK, dateRequest{Date: s.courseSvc.SelectedDate()})
}

func (s *svc) putSelectedDate(c echo.Context) error {
	req := dateRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := s.courseSvc.SelectDate(req.Date); err != nil {
		return fmt.Errorf("courseSvc.SelectDate: %w", err)
	}
	return c.JSON(http.StatusOK, dateRequest{Date: s.courseSvc.SelectedDate()})
}

func (s *svc) nextDay(c echo.Context) error {
	return c.JSON(http.StatusOK, dateRequest{Date: s.courseSvc.NextDay()})
}

func (s *svc) prevDay(c echo.Context) error {
	return c.JSON(http.StatusOK, dateRequest{Date: s.courseSvc.PrevDay()})
}

func (s *svc) getSummary(c echo.Context) error {
	overview := s.courseSvc.Overview()
	cfg := overview.Config
	matrix := overview.Matrix

	resp := summaryResponse{
		Units:    make([]summaryUnit, 0, len(matrix.Units)),
		Students: make([]summaryStudent, 0, len(matrix.Students)),
	}
	for _, unit := range matrix.Units {
		resp.Units = append(resp.Units, summaryUnit{
			ID:        unit.Unit.ID,
			Code:      unit.Unit.Code,
			Name:      unit.Unit.Name,
			Days:      len(unit.Days),
			Hours:     unit.Hours(cfg.HoursPerDay),
			Threshold: unit.Unit.Threshold(cfg.RequiredPct),
		})
	}
	for _, student := range matrix.Students {
		byUnit := make(map[string]summaryCell, len(matrix.Units))
		for _, unit := range matrix.Units {
			rec := student.ByUnit[unit.Unit.ID]
			byUnit[unit.Unit.ID] = summaryCell{
				UnitSummary: rec,
				Status:      summary.Classify(rec, unit.Unit.Threshold(cfg.RequiredPct)),
			}
		}
		resp.Students = append(resp.Students, summaryStudent{
			Student:        student.Student,
			ByUnit:         byUnit,
			TotalJustified: overview.TotalJustified[student.Student.ID],
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *svc) exportSummaryCSV(c echo.Context) error {
	buf := &bytes.Buffer{}
	if err := export.SummaryCSV(buf, s.courseSvc.Summary()); err != nil {
		return fmt.Errorf("export.SummaryCSV: %w", err)
	}
	return attachment(c, "attendance_summary.csv", "text/csv; charset=utf-8", buf)
}

func (s *svc) exportDetailCSV(c echo.Context) error {
	snapshot := s.courseSvc.Snapshot()

	buf := &bytes.Buffer{}
	err := export.DetailCSV(buf, calendar.ClassDays(snapshot.Config), snapshot.Students, snapshot.Attendance)
	if err != nil {
		return fmt.Errorf("export.DetailCSV: %w", err)
	}
	return attachment(c, "attendance_detail.csv", "text/csv; charset=utf-8", buf)
}

func (s *svc) getBackup(c echo.Context) error {
	buf := &bytes.Buffer{}
	if err := s.backupSvc.Export(buf); err != nil {
		return fmt.Errorf("backupSvc.Export: %w", err)
	}
	return attachment(c, "attendance_backup.json", echo.MIMEApplicationJSONCharsetUTF8, buf)
}

func (s *svc) postBackup(c echo.Context) error {
	if err := s.backupSvc.Import(c.Request().Body); err != nil {
		return fmt.Errorf("backupSvc.Import: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *svc) globalReport(c echo.Context) error {
	buf := &bytes.Buffer{}
	if err := s.reportSvc.Global(buf); err != nil {
		return fmt.Errorf("reportSvc.Global: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *svc) studentReport(c echo.Context) error {
	buf := &bytes.Buffer{}
	if err := s.reportSvc.Student(buf, c.Param("id")); err != nil {
		return fmt.Errorf("reportSvc.Student: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func attachment(c echo.Context, filename, contentType string, buf *bytes.Buffer) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
