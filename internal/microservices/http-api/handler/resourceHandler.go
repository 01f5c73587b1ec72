package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	svc    service.ResourceService
	logger *slog.Logger
}

func NewResourceHandler(svc service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the public catalog. Static segments are registered
// before /:id so gin prefers them.
func (h *ResourceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/featured", h.Featured)
	rg.GET("/meta/categories", h.Categories)
	rg.GET("/meta/types", h.Types)
	rg.GET("/:id", h.Get)
}

// RegisterAdminRoutes mounts content management; rg must already require
// authentication and the admin role.
func (h *ResourceHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler) List(c *gin.Context) {
	var q dto.ResourceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page := service.NormalizePage(q.Window())
	items, total, err := h.svc.List(ctx, q.Filter(), page, q.Sort())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondPage(c, items, dto.NewPagination(page.Page, page.Limit, total))
}

func (h *ResourceHandler) Featured(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			respondFail(c, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = parsed
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	items, err := h.svc.Featured(ctx, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, err := h.svc.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, r)
}

func (h *ResourceHandler) Categories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.Categories(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h *ResourceHandler) Types(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.Types(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var in dto.CreateResourceDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	model := in.ToModel()
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Create(ctx, &model); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, model)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	var in dto.UpdateResourceDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.svc.Update(ctx, c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Deactivate(ctx, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, http.StatusOK, "Resource removed")
}
