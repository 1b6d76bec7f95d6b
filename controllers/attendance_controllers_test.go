package controllers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/attendance-portal/models"
	"github.com/yeremiapane/attendance-portal/services"
)

func markBody(supervisorID uint, date string) map[string]interface{} {
	return map[string]interface{}{
		"supervisorId": supervisorID,
		"date":         date,
		"cleaning":     true,
		"sweeping":     false,
		"mopping":      true,
	}
}

func TestMarkAttendance(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, markBody(sup.ID, "2026-10-15"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[models.Attendance](t, w)
	assert.True(t, resp.Status)
	assert.Equal(t, "Attendance marked successfully", resp.Message)
	assert.Equal(t, sup.ID, resp.Data.SupervisorID)
	assert.True(t, resp.Data.Cleaning)
	assert.False(t, resp.Data.Sweeping)
	assert.Equal(t, 2, resp.Data.TasksCompleted())
}

func TestMarkAttendanceAcceptsSnakeCaseSupervisor(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	body := markBody(0, "2026-10-15")
	delete(body, "supervisorId")
	body["supervisor_id"] = sup.ID

	w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, sup.ID, decode[models.Attendance](t, w).Data.SupervisorID)
}

func TestMarkAttendanceValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	body := markBody(sup.ID, "2026-10-15")
	delete(body, "mopping")
	w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required.", decode[any](t, w).Message)

	w = s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, markBody(sup.ID, "15/10/2026"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/attendance/mark-attendance", "", markBody(sup.ID, "2026-10-15"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAttendanceByDate(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	for _, date := range []string{"2026-10-15", "2026-10-15", "2026-10-16"} {
		w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, markBody(sup.ID, date))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/attendance?date=2026-10-15", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]models.Attendance](t, w).Data
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Supervisor)
	assert.Equal(t, "Sam Super", entries[0].Supervisor.Name)
	assert.Equal(t, sup.Email, entries[0].Supervisor.Email)

	w = s.do(t, http.MethodGet, "/api/attendance?date=2026-10-17", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Attendance](t, w).Data)

	w = s.do(t, http.MethodGet, "/api/attendance?date=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMonthlyAttendance(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	for _, date := range []string{"2026-09-30", "2026-10-01", "2026-10-31", "2026-11-01"} {
		w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, markBody(sup.ID, date))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/attendance/monthly?month=10&year=2026", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]models.Attendance](t, w).Data
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Date.Day())
	assert.Equal(t, 31, entries[1].Date.Day())

	for _, q := range []string{"month=13&year=2026", "month=abc", "year=0"} {
		w = s.do(t, http.MethodGet, "/api/attendance/monthly?"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestExportAttendance(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)
	sup, _ := s.seedUser(t, "Sam Super", models.RoleSupervisor)

	w := s.do(t, http.MethodPost, "/api/attendance/mark-attendance", token, markBody(sup.ID, "2026-10-15"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/attendance/export?month=10&year=2026", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, services.ReportContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=attendance-2026-10.xlsx", w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(services.ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Attendance Report - October 2026", rows[0][0])
	assert.Equal(t, []string{"2026-10-15", "Sam Super", sup.Email, "✓", "✗", "✓", "2"}, rows[2])
	assert.Equal(t, []string{"Total Records:", "1"}, rows[3])
}

func TestExportAttendanceRejectsBadMonth(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedUser(t, "Ada Admin", models.RoleAdmin)

	w := s.do(t, http.MethodGet, "/api/attendance/export?month=0", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}
