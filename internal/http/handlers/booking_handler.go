package handlers

import (
	"context"
	"net/http"

	"limo-backend/internal/domain"
	"limo-backend/internal/domain/models"
	"limo-backend/internal/http/middleware"
	"limo-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingService is what the booking endpoints need from the service layer.
type BookingService interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error)
}

type BookingHandler struct {
	Service BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// Mount registers the booking routes on g (normally /api/bookings).
func (h *BookingHandler) Mount(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/user/:email", h.ListByEmail)
	g.PUT("/:id/status", h.UpdateStatus)
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var in models.Booking
	if !BindJSONOrError(c, &in) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "booking", "create", "booking created",
		zap.Int64("booking_id", created.ID))
	c.JSON(http.StatusOK, created)
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/bookings/:id. An unknown id is a bare 404.
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListByEmail handles GET /api/bookings/user/:email.
func (h *BookingHandler) ListByEmail(c *gin.Context) {
	out, err := h.Service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus handles PUT /api/bookings/:id/status?status=. The status may
// also arrive as a form field.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, ok := c.GetQuery("status")
	if !ok {
		status, ok = c.GetPostForm("status")
	}
	if !ok {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "is required"})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "booking", "update_status", "status updated",
		zap.Int64("booking_id", id), zap.String("status", status))
	c.JSON(http.StatusOK, updated)
}
