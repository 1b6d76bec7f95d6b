package services

import (
	"context"
	"strings"
	"time"

	"github.com/yeremiapane/attendance-portal/models"
	"gorm.io/gorm"
)

type AttendanceService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(db *gorm.DB, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{db: db, loc: loc, now: time.Now}
}

func (s *AttendanceService) today() time.Time {
	return s.now().In(s.loc)
}

// RecordAttendanceInput uses pointers so an explicit false is distinguishable from an absent flag.
type RecordAttendanceInput struct {
	SupervisorID *uint
	Date         *string
	Cleaning     *bool
	Sweeping     *bool
	Mopping      *bool
}

func (in RecordAttendanceInput) complete() bool {
	return in.SupervisorID != nil && *in.SupervisorID != 0 &&
		in.Date != nil && strings.TrimSpace(*in.Date) != "" &&
		in.Cleaning != nil && in.Sweeping != nil && in.Mopping != nil
}

// RecordAttendance stores one entry. Several entries for the same supervisor and day are allowed.
func (s *AttendanceService) RecordAttendance(ctx context.Context, in RecordAttendanceInput) (*models.Attendance, error) {
	if !in.complete() {
		return nil, validationErrorf("All fields are required.")
	}
	date, err := parseDate(*in.Date, s.loc)
	if err != nil {
		return nil, err
	}

	entry := models.Attendance{
		SupervisorID: *in.SupervisorID,
		Date:         date.UTC(),
		Cleaning:     *in.Cleaning,
		Sweeping:     *in.Sweeping,
		Mopping:      *in.Mopping,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, storeError("record attendance", err)
	}
	return &entry, nil
}

// ParseDay reads a query date. An empty string means today.
func (s *AttendanceService) ParseDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.today(), nil
	}
	return parseDate(raw, s.loc)
}

// ResolveMonth reads month/year query values, defaulting each to the current one.
func (s *AttendanceService) ResolveMonth(monthRaw, yearRaw string) (MonthPeriod, error) {
	return resolveMonth(monthRaw, yearRaw, s.today())
}

// GetDailyAttendance returns entries in [midnight, midnight+24h) of day's calendar date.
func (s *AttendanceService) GetDailyAttendance(ctx context.Context, day time.Time) ([]models.Attendance, error) {
	start := midnight(day.In(s.loc))
	end := start.Add(24 * time.Hour)

	var entries []models.Attendance
	err := s.db.WithContext(ctx).
		Preload("Supervisor", userRefColumns).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Order("date ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storeError("daily attendance", err)
	}
	return entries, nil
}

// GetMonthlyAttendance returns entries from the first day's midnight through the end of the last day, inclusive.
func (s *AttendanceService) GetMonthlyAttendance(ctx context.Context, period MonthPeriod) ([]models.Attendance, error) {
	var entries []models.Attendance
	err := s.db.WithContext(ctx).
		Preload("Supervisor", userRefColumns).
		Where("date >= ? AND date <= ?", period.Start().UTC(), period.End().UTC()).
		Order("date ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storeError("monthly attendance", err)
	}
	return entries, nil
}

// ExportMonthlyAttendance renders the monthly entries as a workbook.
// The caller must Close the returned report.
func (s *AttendanceService) ExportMonthlyAttendance(ctx context.Context, period MonthPeriod) (*AttendanceReport, error) {
	entries, err := s.GetMonthlyAttendance(ctx, period)
	if err != nil {
		return nil, err
	}
	return BuildAttendanceReport(period, entries, s.now())
}
