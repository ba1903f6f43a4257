package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/futuresmile/clinic-api/pkg/httputil"
)

type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Liveness)
	r.GET("/health/ready", h.Readiness)
}

func (h *Handler) Liveness(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"status": "healthy"})
}

// Readiness verifies the database is reachable.
func (h *Handler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, httputil.Response{
			Success: false,
			Error:   &httputil.Error{Code: http.StatusServiceUnavailable, Message: "database unavailable"},
		})
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"status": "ready"})
}
