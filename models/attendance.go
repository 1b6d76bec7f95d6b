package models

import "time"

type Attendance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SupervisorID uint      `gorm:"not null;index" json:"supervisor_id"`
	Supervisor   *User     `gorm:"foreignKey:SupervisorID;references:ID" json:"supervisor,omitempty"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	Cleaning     bool      `gorm:"not null" json:"cleaning"`
	Sweeping     bool      `gorm:"not null" json:"sweeping"`
	Mopping      bool      `gorm:"not null" json:"mopping"`
}

// TasksCompleted counts the task flags that are set.
func (a Attendance) TasksCompleted() int {
	n := 0
	for _, done := range []bool{a.Cleaning, a.Sweeping, a.Mopping} {
		if done {
			n++
		}
	}
	return n
}
