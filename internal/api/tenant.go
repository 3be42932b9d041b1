package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/simulive/internal/tenant"
)

// CreateTenantRequest represents a request to register a tenant account.
// UID comes from the external auth provider.
type CreateTenantRequest struct {
	UID         string `json:"uid" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"company_name" binding:"required"`
}

// UpdateTenantStatusRequest represents a request to activate or suspend a
// tenant account
type UpdateTenantStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TenantHandler handles tenant account requests
type TenantHandler struct {
	service *tenant.Service
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(service *tenant.Service) *TenantHandler {
	return &TenantHandler{service: service}
}

// Create handles POST /api/tenants. Repeated calls for the same UID return
// the existing record, so sign-in flows can call this unconditionally.
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.UID, req.Email, req.CompanyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/tenants/:uid
func (h *TenantHandler) Get(c *gin.Context) {
	found, err := h.service.GetByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get tenant"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// List handles GET /api/tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list tenants"})
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// UpdateStatus handles PATCH /api/tenants/:uid/status
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	var req UpdateTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("uid"), req.Status); err != nil {
		switch {
		case errors.Is(err, tenant.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, tenant.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "tenant not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update tenant status"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// SetupTenantRoutes registers tenant account routes
func SetupTenantRoutes(apiGroup *gin.RouterGroup, service *tenant.Service) {
	handler := NewTenantHandler(service)

	apiGroup.POST("/tenants", handler.Create)
	apiGroup.GET("/tenants", handler.List)
	apiGroup.GET("/tenants/:uid", handler.Get)
	apiGroup.PATCH("/tenants/:uid/status", handler.UpdateStatus)
}
