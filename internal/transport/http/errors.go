package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// writeError maps store errors to HTTP responses. The typed error kinds
// each get a stable status so UI collaborators can branch on them:
// validation failures carry every field message, conflicts carry the
// current server-side record for re-merge.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var vErr *domain.ValidationError
	var cErr *domain.ConflictError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: vErr.Violations,
		})
	case errors.As(err, &cErr):
		resp := ErrorResponse{Error: "revision conflict, refresh and retry"}
		if cErr.Current != nil {
			current := toProductResponse(cErr.Current)
			resp.Current = &current
		}
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "record not found"})
	case errors.Is(err, domain.ErrAlreadyArchived):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "record is archived"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error("backing store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "backing store unavailable"})
	default:
		log.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
