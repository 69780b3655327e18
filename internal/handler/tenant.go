package handler

import (
	"net/http"

	"github.com/Re1354/building-management-system/internal/service"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TenantHandler struct {
	Tenants *service.TenantService
	Log     *zap.Logger
}

func NewTenantHandler(tenants *service.TenantService, log *zap.Logger) *TenantHandler {
	return &TenantHandler{Tenants: tenants, Log: log}
}

type createTenantReq struct {
	Floor      *util.Number `json:"floor"`
	Flat       string       `json:"flat" binding:"max=32"`
	TenantName string       `json:"tenantName" binding:"max=128"`
	Phone      string       `json:"phone" binding:"max=32"`
}

type updateTenantReq struct {
	Floor      *util.Number `json:"floor"`
	Flat       *string      `json:"flat" binding:"omitempty,max=32"`
	TenantName *string      `json:"tenantName" binding:"omitempty,max=128"`
	Phone      *string      `json:"phone" binding:"omitempty,max=32"`
}

func (h *TenantHandler) CreateTenant(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req createTenantReq
	if !bindJSON(c, &req) {
		return
	}
	floor, err := optionalInt(req.Floor, "floor")
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	tenant, err := h.Tenants.Create(c.Request.Context(), service.CreateTenantInput{
		Floor:      floor,
		Flat:       req.Flat,
		TenantName: req.TenantName,
		Phone:      req.Phone,
	}, user.ID)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.Tenants.List(c.Request.Context())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.Tenants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req updateTenantReq
	if !bindJSON(c, &req) {
		return
	}
	floor, err := optionalInt(req.Floor, "floor")
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	tenant, err := h.Tenants.Update(c.Request.Context(), c.Param("id"), service.UpdateTenantInput{
		Floor:      floor,
		Flat:       req.Flat,
		TenantName: req.TenantName,
		Phone:      req.Phone,
	})
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if err := h.Tenants.Delete(c.Request.Context(), c.Param("id")); err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted"})
}
