package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobkit/internal/domain/assist"
	"github.com/honeycarbs/jobkit/internal/domain/auth"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
)

// errorBody is the JSON outcome of every failed request
type errorBody struct {
	Error  string `json:"error"`
	Notice string `json:"notice,omitempty"`
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var (
		upstream     *search.UpstreamError
		trackerInput *tracker.ValidationError
		authInput    *auth.ValidationError
		assistInput  *assist.ValidationError
	)

	switch {
	case errors.Is(err, search.ErrInput),
		errors.As(err, &trackerInput),
		errors.As(err, &authInput),
		errors.As(err, &assistInput):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, auth.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, assist.ErrUnavailable), errors.Is(err, export.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, assist.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "err", err)
		body.Error = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: msg})
}
