package queue

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/futuresmile/clinic-api/internal/service/queue"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
	"github.com/futuresmile/clinic-api/pkg/httputil"
)

type Handler struct {
	service *queue.Service
}

func NewHandler(service *queue.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	q := r.Group("/queue")
	{
		q.GET("/current", h.Current)
		q.GET("/track/:booking_id", h.Track)
	}
}

// Current returns today's queue, or another day's when ?date=YYYY-MM-DD
// is given.
func (h *Handler) Current(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", nil))
			return
		}
	}

	status, err := h.service.CurrentQueue(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, status)
}

func (h *Handler) Track(c *gin.Context) {
	bookingID := c.Param("booking_id")
	if bookingID == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("booking ID is required", nil))
		return
	}

	info, err := h.service.TrackBooking(c.Request.Context(), bookingID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, info)
}
