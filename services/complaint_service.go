package services

import (
	"context"
	"strings"
	"time"

	"github.com/yeremiapane/attendance-portal/models"
	"gorm.io/gorm"
)

type ComplaintService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db, now: time.Now}
}

type RaiseComplaintInput struct {
	SupervisorID uint
	Subject      string
	Description  string
}

type UpdateComplaintInput struct {
	Status   string
	Response *string
}

type ComplaintPage struct {
	Complaints  []models.Complaint `json:"complaints"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	Total       int64              `json:"total"`
}

// RaiseComplaint files a complaint as the caller. The customer is always the caller.
func (s *ComplaintService) RaiseComplaint(ctx context.Context, caller Caller, in RaiseComplaintInput) (*models.Complaint, error) {
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	if in.SupervisorID == 0 || subject == "" || description == "" {
		return nil, validationErrorf("SupervisorId, subject, and description are required fields.")
	}

	complaint := models.Complaint{
		CustomerID:   caller.ID,
		SupervisorID: in.SupervisorID,
		Subject:      subject,
		Description:  description,
		Status:       models.ComplaintPending,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&complaint).Error; err != nil {
		return nil, storeError("raise complaint", err)
	}
	return &complaint, nil
}

// ListComplaints pages through the complaints visible to caller, newest first,
// joined with supervisor and customer.
func (s *ComplaintService) ListComplaints(ctx context.Context, caller Caller, filter ComplaintFilter, page PageRequest) (*ComplaintPage, error) {
	return s.list(ctx, ScopeComplaintFilter(caller, filter), page, "Supervisor", "Customer")
}

// ListOwnComplaints is ListComplaints restricted to the caller's own complaints regardless of role.
func (s *ComplaintService) ListOwnComplaints(ctx context.Context, caller Caller, filter ComplaintFilter, page PageRequest) (*ComplaintPage, error) {
	return s.list(ctx, filter.WithCustomer(caller.ID), page, "Supervisor")
}

func (s *ComplaintService) list(ctx context.Context, filter ComplaintFilter, page PageRequest, joins ...string) (*ComplaintPage, error) {
	page = page.normalize()

	var total int64
	if err := filter.apply(s.db.WithContext(ctx).Model(&models.Complaint{})).Count(&total).Error; err != nil {
		return nil, storeError("count complaints", err)
	}

	q := filter.apply(s.db.WithContext(ctx))
	for _, rel := range joins {
		q = q.Preload(rel, userRefColumns)
	}
	complaints := make([]models.Complaint, 0, page.Limit)
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&complaints).Error
	if err != nil {
		return nil, storeError("list complaints", err)
	}

	return &ComplaintPage{
		Complaints:  complaints,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
		Total:       total,
	}, nil
}

// UpdateComplaintStatus sets a new status. Closing a complaint stamps ResolvedAt,
// reopening it clears the stamp.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, id uint, in UpdateComplaintInput) (*models.Complaint, error) {
	status, ok := models.ParseComplaintStatus(in.Status)
	if !ok {
		return nil, validationErrorf("status must be one of PENDING, RESOLVED, REJECTED")
	}

	db := s.db.WithContext(ctx)
	var complaint models.Complaint
	if err := db.First(&complaint, id).Error; err != nil {
		return nil, lookupError("Complaint", "find complaint", err)
	}

	updates := map[string]interface{}{"status": status}
	switch {
	case !status.Closed():
		updates["resolved_at"] = nil
	case complaint.ResolvedAt == nil || complaint.Status != status:
		updates["resolved_at"] = s.now().UTC()
	}
	if in.Response != nil {
		updates["response"] = strings.TrimSpace(*in.Response)
	}

	if err := db.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, storeError("update complaint", err)
	}

	var updated models.Complaint
	err := db.Preload("Supervisor", userRefColumns).
		Preload("Customer", userRefColumns).
		First(&updated, id).Error
	if err != nil {
		return nil, lookupError("Complaint", "reload complaint", err)
	}
	return &updated, nil
}
