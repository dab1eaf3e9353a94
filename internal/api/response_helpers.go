// internal/api/response_helpers.go
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/utils"
)

// ResponseHelper centralizes the wire conventions: success bodies are
// plain records, error bodies are {"detail": "..."}.
type ResponseHelper struct {
	logger *utils.Logger
}

// NewResponseHelper creates a response helper.
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{logger: utils.GetLogger()}
}

// Success writes data as a 200 response.
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data as a 201 response.
func (rh *ResponseHelper) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Detail writes an error body with the given status code.
func (rh *ResponseHelper) Detail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, gin.H{"detail": detail})
}

// BadRequest writes a 400 error body.
func (rh *ResponseHelper) BadRequest(c *gin.Context, detail string) {
	rh.Detail(c, http.StatusBadRequest, detail)
}

// NotFound writes a 404 error body.
func (rh *ResponseHelper) NotFound(c *gin.Context, detail string) {
	rh.Detail(c, http.StatusNotFound, detail)
}

// InternalError writes a 500 error body.
func (rh *ResponseHelper) InternalError(c *gin.Context, detail string) {
	rh.Detail(c, http.StatusInternalServerError, detail)
}

// ServiceError maps an application error onto the HTTP status taxonomy:
// validation and precondition failures are 400, missing records are 404,
// everything else is 500 with the message preserved in the detail.
func (rh *ResponseHelper) ServiceError(c *gin.Context, err error, fallbackDetail string) {
	switch {
	case apperrors.IsNotFoundError(err):
		rh.NotFound(c, errMessage(err))
	case apperrors.IsValidationError(err), apperrors.IsPreconditionError(err):
		rh.BadRequest(c, errMessage(err))
	default:
		rh.logger.Errorf("%s: %v", fallbackDetail, err)
		rh.InternalError(c, fallbackDetail+": "+err.Error())
	}
}

func errMessage(err error) string {
	var appError *apperrors.AppError
	if errors.As(err, &appError) {
		return appError.Message
	}
	return err.Error()
}
