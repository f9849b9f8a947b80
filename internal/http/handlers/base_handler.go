// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motofrete/internal/modules/delivery"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDeliveryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, delivery.ErrEmptyAddress), errors.Is(err, delivery.ErrBadSession):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, delivery.ErrNoResult):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, delivery.ErrLocationUnresolved):
		writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			Error: delivery.ErrLocationUnresolved.Error(),
			Hint:  "enable device location and try again",
		})
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
