package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

var kindStatus = map[string]int{
	types.KindInvalidConfiguration: http.StatusBadRequest,
	types.KindInvalidRequest:       http.StatusBadRequest,
	types.KindNotFound:             http.StatusNotFound,
	types.KindInsufficientBalance:  http.StatusUnprocessableEntity,
	types.KindInvariantViolation:   http.StatusUnprocessableEntity,
	types.KindSlippageExceeded:     http.StatusUnprocessableEntity,
	types.KindOverflow:             http.StatusUnprocessableEntity,
	types.KindUnauthorized:         http.StatusForbidden,
}

// statusForKind maps a module error kind to an HTTP status.
func statusForKind(kind string) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status and code its kind maps to.
// Internal errors are not echoed to the client.
func (s *Server) respondError(c *gin.Context, err error) {
	kind := types.ErrorKind(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "request_id", c.GetString(ctxKeyRequestID), "err", err)
		abortWith(c, status, kind, "Internal server error", "")
		return
	}
	abortWith(c, status, kind, http.StatusText(status), err.Error())
}

func badRequest(c *gin.Context, msg string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	abortWith(c, http.StatusBadRequest, types.KindInvalidRequest, msg, details)
}

func abortWith(c *gin.Context, status int, code, msg, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}
