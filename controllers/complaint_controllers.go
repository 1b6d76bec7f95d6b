package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/gorm"
)

type ComplaintController struct {
	Service *services.ComplaintService
}

func NewComplaintController(db *gorm.DB) *ComplaintController {
	return &ComplaintController{Service: services.NewComplaintService(db)}
}

// RaiseComplaint files a complaint as the authenticated caller.
// A customerId in the body is ignored.
func (cc *ComplaintController) RaiseComplaint(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body struct {
		SupervisorID *uint  `json:"supervisorId"`
		SnakeID      *uint  `json:"supervisor_id"`
		Subject      string `json:"subject"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	complaint, err := cc.Service.RaiseComplaint(c.Request.Context(), caller, services.RaiseComplaintInput{
		SupervisorID: valueOrZero(firstID(body.SupervisorID, body.SnakeID)),
		Subject:      body.Subject,
		Description:  body.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Complaint %d raised by user %d", complaint.ID, caller.ID)
	utils.RespondJSON(c, http.StatusCreated, "Complaint raised successfully.", complaint)
}

func complaintQuery(c *gin.Context) (services.ComplaintFilter, services.PageRequest, error) {
	page, err := services.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		return services.ComplaintFilter{}, page, err
	}
	filter := services.NewComplaintFilter().
		WithStatus(c.Query("status")).
		WithSearch(c.Query("search"))
	return filter, page, nil
}

// GetComplaints lists every complaint for admins and the caller's own for everyone else.
func (cc *ComplaintController) GetComplaints(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter, page, err := complaintQuery(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := cc.Service.ListComplaints(c.Request.Context(), caller, filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Complaints retrieved", result)
}

// GetUserComplaints lists only the caller's own complaints.
func (cc *ComplaintController) GetUserComplaints(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter, page, err := complaintQuery(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := cc.Service.ListOwnComplaints(c.Request.Context(), caller, filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Complaints retrieved", result)
}

func (cc *ComplaintController) UpdateComplaint(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondServiceError(c, &services.ValidationError{Message: "invalid complaint id"})
		return
	}

	var body struct {
		Status   string  `json:"status"`
		Response *string `json:"response"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	complaint, err := cc.Service.UpdateComplaintStatus(c.Request.Context(), uint(id), services.UpdateComplaintInput{
		Status:   body.Status,
		Response: body.Response,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Complaint updated", complaint)
}
