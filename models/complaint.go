package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "PENDING"
	ComplaintResolved ComplaintStatus = "RESOLVED"
	ComplaintRejected ComplaintStatus = "REJECTED"
)

// ParseComplaintStatus uppercases s and reports whether it names a known status.
func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	st := ComplaintStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ComplaintPending, ComplaintResolved, ComplaintRejected:
		return st, true
	}
	return st, false
}

// Closed reports whether the complaint has been reviewed.
func (s ComplaintStatus) Closed() bool {
	return s == ComplaintResolved || s == ComplaintRejected
}

type Complaint struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerID   uint            `gorm:"not null;index" json:"customer_id"`
	Customer     *User           `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	SupervisorID uint            `gorm:"not null;index" json:"supervisor_id"`
	Supervisor   *User           `gorm:"foreignKey:SupervisorID;references:ID" json:"supervisor,omitempty"`
	Subject      string          `gorm:"type:varchar(255);not null" json:"subject"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Status       ComplaintStatus `gorm:"type:varchar(15);not null;default:'PENDING';index" json:"status"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
	Response     *string         `gorm:"type:text" json:"response,omitempty"`

	// Case-folded copies of Subject and Description used by search.
	SubjectSearch     string `gorm:"type:text" json:"-"`
	DescriptionSearch string `gorm:"type:text" json:"-"`
}

// FoldSearch applies Unicode case folding so "ÉCOLE" and "école" compare equal.
func FoldSearch(s string) string {
	return cases.Fold().String(s)
}

// BeforeSave keeps the search columns in step with the text they mirror.
func (c *Complaint) BeforeSave(tx *gorm.DB) error {
	c.SubjectSearch = FoldSearch(c.Subject)
	c.DescriptionSearch = FoldSearch(c.Description)
	return nil
}
