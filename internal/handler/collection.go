package handler

import (
	"net/http"
	"time"

	"github.com/Re1354/building-management-system/internal/apperr"
	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/service"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CollectionHandler serves collection recording, listings and dashboard summaries.
type CollectionHandler struct {
	Collections *service.CollectionService
	Log         *zap.Logger
}

func NewCollectionHandler(collections *service.CollectionService, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{Collections: collections, Log: log}
}

type addCollectionReq struct {
	TenantID   string       `json:"tenantId" binding:"max=36"`
	Floor      *util.Number `json:"floor"`
	Flat       string       `json:"flat" binding:"max=32"`
	TenantName string       `json:"tenantName" binding:"max=128"`
	Phone      string       `json:"phone" binding:"max=32"`
	Amount     *util.Number `json:"amount"`
	Date       string       `json:"date" binding:"max=64"`
	Note       string       `json:"note" binding:"max=512"`
}

type collectorResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type collectionResp struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenantId"`
	Tenant      *models.Tenant `json:"tenant,omitempty"`
	CollectedBy string         `json:"collectedBy"`
	Collector   *collectorResp `json:"collector,omitempty"`
	Amount      float64        `json:"amount"`
	Date        time.Time      `json:"date"`
	Month       int            `json:"month"`
	Year        int            `json:"year"`
	Note        string         `json:"note,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toCollectionResp(c *models.Collection) collectionResp {
	resp := collectionResp{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Tenant:      c.Tenant,
		CollectedBy: c.CollectedBy,
		Amount:      util.CentToAmount(c.AmountCent),
		Date:        c.Date,
		Month:       c.Month,
		Year:        c.Year,
		Note:        c.Note,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Collector != nil {
		resp.Collector = &collectorResp{ID: c.Collector.ID, Name: c.Collector.Name, Email: c.Collector.Email}
	}
	return resp
}

func toCollectionList(list []models.Collection) []collectionResp {
	items := make([]collectionResp, 0, len(list))
	for i := range list {
		items = append(items, toCollectionResp(&list[i]))
	}
	return items
}

func (h *CollectionHandler) AddCollection(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req addCollectionReq
	if !bindJSON(c, &req) {
		return
	}
	floor, err := optionalInt(req.Floor, "floor")
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	amount, err := optionalFloat(req.Amount, "amount")
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	coll, err := h.Collections.Add(c.Request.Context(), service.AddCollectionInput{
		TenantID:   req.TenantID,
		Floor:      floor,
		Flat:       req.Flat,
		TenantName: req.TenantName,
		Phone:      req.Phone,
		Amount:     amount,
		Date:       req.Date,
		Note:       req.Note,
	}, user.ID)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, toCollectionResp(coll))
}

func (h *CollectionHandler) MyCollections(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	list, err := h.Collections.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionList(list))
}

func (h *CollectionHandler) AllCollections(c *gin.Context) {
	list, err := h.Collections.ListAll(c.Request.Context())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionList(list))
}

// period reads the optional ?month and ?year filters; absent values are 0.
func period(c *gin.Context) (month, year int, err error) {
	month, _, err = util.ParseMonth(c.Query("month"))
	if err != nil {
		return 0, 0, apperr.Validation(err.Error())
	}
	year, _, err = util.ParseYear(c.Query("year"))
	if err != nil {
		return 0, 0, apperr.Validation(err.Error())
	}
	return month, year, nil
}

func (h *CollectionHandler) MyMonthlySummary(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	month, year, err := period(c)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	summary, err := h.Collections.MyMonthlySummary(c.Request.Context(), user.ID, month, year)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *CollectionHandler) MyYearlySummary(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	_, year, err := period(c)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	totals, err := h.Collections.MyYearlySummary(c.Request.Context(), user.ID, year)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *CollectionHandler) BuildingSummary(c *gin.Context) {
	month, year, err := period(c)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	summary, err := h.Collections.BuildingSummary(c.Request.Context(), month, year)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *CollectionHandler) AdminSummary(c *gin.Context) {
	totals, err := h.Collections.AdminSummary(c.Request.Context())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *CollectionHandler) ChartData(c *gin.Context) {
	_, year, err := period(c)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	data, err := h.Collections.ChartData(c.Request.Context(), year)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
