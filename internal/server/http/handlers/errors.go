package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/server/http/dto"
	"github.com/polkiloo/delivery/internal/server/http/middleware"
)

const internalErrorDetail = "internal server error"

// writeError maps domain errors onto HTTP statuses with a detail body.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		middleware.AbortUnauthorized(c, err.Error())
		return
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrConflict):
		status = http.StatusConflict
	default:
		logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: internalErrorDetail})
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: err.Error()})
}

func badRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Detail: detail})
}
