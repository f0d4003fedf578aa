package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func validationFailed(c echo.Context, details []string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: details})
}

var errorStatuses = map[error]int{
	model.ErrorEmailTaken:               http.StatusConflict,
	model.ErrorInvalidVerificationToken: http.StatusBadRequest,
	model.ErrorAlreadyVerified:          http.StatusConflict,
	model.ErrorInvalidCredentials:       http.StatusUnauthorized,
	model.ErrorAccountLocked:            http.StatusLocked,
	model.ErrorEmailNotVerified:         http.StatusForbidden,
	model.ErrorInvalidResetToken:        http.StatusBadRequest,
	model.ErrorAccountNotFound:          http.StatusNotFound,
	model.ErrorSkillNotFound:            http.StatusNotFound,
}

// fail maps sentinel errors to their statuses; anything unrecognised becomes
// a generic 500 so internals never leak.
func fail(c echo.Context, err error) error {
	for sentinel, status := range errorStatuses {
		if errors.Is(err, sentinel) {
			return c.JSON(status, errorResponse{Error: sentinel.Error()})
		}
	}
	log.Errorf("unhandled error: %+v", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
