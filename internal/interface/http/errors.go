package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/internal/domain/errs"
	"github.com/oksasatya/user-account-service/pkg/response"
)

func ok[T any](c *gin.Context, status int, data T, message string, meta any) {
	resp := response.Success(c, status, data, message, meta)
	c.JSON(resp.Status, resp)
}

func fail(c *gin.Context, status int, message string, details any) {
	resp := response.Error[any](c, status, message, details)
	c.JSON(resp.Status, resp)
}

// statusFor maps domain error codes to HTTP statuses at the transport
// boundary.
func statusFor(err error) int {
	if errors.Is(err, userapp.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	switch errs.CodeOf(err) {
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeConflict, errs.CodeInvalidState:
		return http.StatusConflict
	case errs.CodeInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errDetails exposes field-level detail for validation errors.
func errDetails(err error) any {
	var de *errs.Error
	if errors.As(err, &de) && de.Field != "" {
		return map[string]string{de.Field: de.Message}
	}
	return err.Error()
}
