package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/attendance-portal/database"
	"github.com/yeremiapane/attendance-portal/models"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.SilenceLoggers()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedAttendance(t *testing.T, db *gorm.DB, supervisorID uint, at time.Time, flags ...bool) models.Attendance {
	t.Helper()
	for len(flags) < 3 {
		flags = append(flags, true)
	}
	a := models.Attendance{
		SupervisorID: supervisorID,
		Date:         at.UTC(),
		Cleaning:     flags[0],
		Sweeping:     flags[1],
		Mopping:      flags[2],
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }
