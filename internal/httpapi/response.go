package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/carta/pkg/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Codes for failures that carry no BusinessError. Binding failures share
// the bad_request code with manager validation.
var (
	codeBadRequest = types.KindBadRequest.String()
	codeInternal   = "internal"
)

var errDishSetNotArray = errors.New("body must be a JSON array of dish references")

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusOf maps an error kind to its HTTP status.
func statusOf(kind types.ErrorKind) int {
	switch kind {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindBadRequest:
		return http.StatusBadRequest
	case types.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes a manager failure. Business errors keep their
// message; anything else is logged and hidden behind a 500.
func (h *Handler) respondServiceError(c *gin.Context, op string, err error) {
	if kind, ok := types.KindOf(err); ok {
		RespondError(c, statusOf(kind), kind.String(), err)
		return
	}
	h.log.Error(op+" failed", "error", err)
	RespondError(c, http.StatusInternalServerError, codeInternal, nil)
}
