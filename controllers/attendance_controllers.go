package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/gorm"
)

type AttendanceController struct {
	Service *services.AttendanceService
}

func NewAttendanceController(db *gorm.DB, loc *time.Location) *AttendanceController {
	return &AttendanceController{Service: services.NewAttendanceService(db, loc)}
}

// MarkAttendance records one day's tasks for a supervisor.
func (ac *AttendanceController) MarkAttendance(c *gin.Context) {
	var body struct {
		SupervisorID *uint   `json:"supervisorId"`
		SnakeID      *uint   `json:"supervisor_id"`
		Date         *string `json:"date"`
		Cleaning     *bool   `json:"cleaning"`
		Sweeping     *bool   `json:"sweeping"`
		Mopping      *bool   `json:"mopping"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := ac.Service.RecordAttendance(c.Request.Context(), services.RecordAttendanceInput{
		SupervisorID: firstID(body.SupervisorID, body.SnakeID),
		Date:         body.Date,
		Cleaning:     body.Cleaning,
		Sweeping:     body.Sweeping,
		Mopping:      body.Mopping,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.WithField("supervisor_id", entry.SupervisorID).Info("Attendance marked")
	utils.RespondJSON(c, http.StatusCreated, "Attendance marked successfully", entry)
}

// GetAttendance lists one calendar day, today when ?date is absent.
func (ac *AttendanceController) GetAttendance(c *gin.Context) {
	day, err := ac.Service.ParseDay(c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entries, err := ac.Service.GetDailyAttendance(c.Request.Context(), day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Attendance records", entries)
}

func (ac *AttendanceController) GetMonthlyAttendance(c *gin.Context) {
	period, err := ac.Service.ResolveMonth(c.Query("month"), c.Query("year"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entries, err := ac.Service.GetMonthlyAttendance(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Monthly attendance records", entries)
}

// ExportAttendance streams the month as an .xlsx download.
func (ac *AttendanceController) ExportAttendance(c *gin.Context) {
	period, err := ac.Service.ResolveMonth(c.Query("month"), c.Query("year"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	report, err := ac.Service.ExportMonthlyAttendance(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer report.Close()

	c.Header("Content-Type", services.ReportContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename))
	c.Status(http.StatusOK)

	// Headers are already sent, so a write failure can only be logged.
	if _, err := report.WriteTo(c.Writer); err != nil {
		_ = c.Error(err)
		utils.ErrorLogger.WithError(err).WithField("file", report.Filename).Error("Failed to stream attendance export")
	}
}
