package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/attendance-portal/middlewares"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
)

var errNoCaller = errors.New("user id not found in context")

// respondServiceError maps service errors onto HTTP status codes.
// Anything unrecognised is a 500 and is logged.
func respondServiceError(c *gin.Context, err error) {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
		aerr *services.AuthError
	)
	switch {
	case errors.As(err, &verr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &nf):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &aerr):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		fields := logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}
		var serr *services.StoreError
		if errors.As(err, &serr) {
			fields["op"] = serr.Op
		}
		utils.ErrorLogger.WithFields(fields).WithError(err).Error("request failed")
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// requireCaller returns the authenticated caller or writes a 401.
func requireCaller(c *gin.Context) (services.Caller, bool) {
	caller, ok := middlewares.CallerFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errNoCaller)
	}
	return caller, ok
}

// firstID accepts both supervisorId and supervisor_id in request bodies.
func firstID(ids ...*uint) *uint {
	for _, id := range ids {
		if id != nil {
			return id
		}
	}
	return nil
}

func valueOrZero(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
