package handler

import (
	"context"
	"log/slog"
	"net/http"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/middleware"
	"mindwell/internal/microservices/http-api/service"
	"mindwell/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	svc    service.BookingService
	logger *slog.Logger
}

func NewBookingHandler(svc service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// RegisterRoutes expects rg to be mounted at /bookings behind AuthMiddleware.
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/me", h.ListMine)
	rg.GET("/counsellor/:counsellorId", middleware.RequireCounsellor(), h.ListForCounsellor)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/decision", middleware.RequireCounsellor(), h.Decide)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var in dto.CreateBookingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	b, err := h.svc.Submit(ctx, c.GetString("userID"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.ListForStudent(ctx, c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// ListForCounsellor serves a counsellor's own queue; admins may read any.
func (h *BookingHandler) ListForCounsellor(c *gin.Context) {
	counsellorID := c.Param("counsellorId")
	if counsellorID != c.GetString("userID") && c.GetString("role") != auth.RoleAdmin {
		respondFail(c, http.StatusForbidden, "You can only view your own booking requests")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.ListForCounsellor(ctx, counsellorID, c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h *BookingHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	b, err := h.svc.Get(ctx, callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, b)
}

func (h *BookingHandler) Decide(c *gin.Context) {
	var in dto.DecideBookingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	b, err := h.svc.Decide(ctx, callerFrom(c), c.Param("id"), in.Action)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: b, Message: "Booking " + string(b.Status)})
}

func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{ID: c.GetString("userID"), Role: c.GetString("role")}
}
