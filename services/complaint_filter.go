package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/yeremiapane/attendance-portal/models"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	statusAll        = "all"
	likeEscape       = "!"
)

// ComplaintFilter is the set of optional constraints on a complaint listing.
// A nil field places no constraint.
type ComplaintFilter struct {
	CustomerID *uint
	Status     *models.ComplaintStatus
	Search     string
}

func NewComplaintFilter() ComplaintFilter {
	return ComplaintFilter{}
}

func (f ComplaintFilter) WithCustomer(id uint) ComplaintFilter {
	f.CustomerID = &id
	return f
}

// WithStatus matches the uppercased status exactly. Empty and "all" leave the filter open.
func (f ComplaintFilter) WithStatus(raw string) ComplaintFilter {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, statusAll) {
		f.Status = nil
		return f
	}
	st, _ := models.ParseComplaintStatus(raw)
	f.Status = &st
	return f
}

// WithSearch matches q case-insensitively as a substring of subject or description.
func (f ComplaintFilter) WithSearch(q string) ComplaintFilter {
	f.Search = strings.TrimSpace(q)
	return f
}

// likePattern case-folds q the same way the stored search columns are folded.
func likePattern(q string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(models.FoldSearch(q)) + "%"
}

func (f ComplaintFilter) apply(db *gorm.DB) *gorm.DB {
	if f.CustomerID != nil {
		db = db.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		db = db.Where("(subject_search LIKE ? ESCAPE '"+likeEscape+"' OR description_search LIKE ? ESCAPE '"+likeEscape+"')", pat, pat)
	}
	return db
}

// ScopeComplaintFilter applies complaint visibility: admins see every complaint,
// everyone else only their own, whatever else was requested.
func ScopeComplaintFilter(caller Caller, requested ComplaintFilter) ComplaintFilter {
	if caller.IsAdmin() {
		return requested
	}
	return requested.WithCustomer(caller.ID)
}

type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads page and limit query values. Small or oversized limits are clamped;
// a page whose offset would not fit in an int is rejected.
func ParsePageRequest(pageRaw, limitRaw string) (PageRequest, error) {
	p := PageRequest{Page: 1, Limit: defaultPageLimit}

	if s := strings.TrimSpace(pageRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, validationErrorf("page must be a number")
		}
		p.Page = n
	}
	if s := strings.TrimSpace(limitRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, validationErrorf("limit must be a number")
		}
		p.Limit = n
	}

	requested := p.Page
	p = p.normalize()
	if requested > p.Page {
		return p, validationErrorf("page is out of range")
	}
	return p, nil
}

// maxPage is the largest page whose offset fits in an int.
func maxPage(limit int) int {
	return math.MaxInt / limit
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if limit := maxPage(p.Limit); p.Page > limit {
		p.Page = limit
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p PageRequest) TotalPages(total int64) int {
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}
