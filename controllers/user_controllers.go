package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/gorm"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Service: services.NewUserService(db)}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := uc.Service.GetProfile(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

func (uc *UserController) GetSupervisors(c *gin.Context) {
	supervisors, err := uc.Service.ListSupervisors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Supervisors", supervisors)
}
