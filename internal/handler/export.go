package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/service"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportHandler downloads every collection as a spreadsheet.
type ExportHandler struct {
	Collections *service.CollectionService
	Log         *zap.Logger
}

func NewExportHandler(collections *service.CollectionService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{Collections: collections, Log: log}
}

var exportHeader = []string{"Date", "Floor", "Flat", "Tenant", "Phone", "Amount", "Month", "Year", "Collected By", "Note"}

func exportRow(c *models.Collection) []string {
	var floor, flat, tenant, phone, collector string
	if c.Tenant != nil {
		floor = strconv.Itoa(c.Tenant.Floor)
		flat = c.Tenant.Flat
		tenant = c.Tenant.TenantName
		phone = c.Tenant.Phone
	}
	if c.Collector != nil {
		collector = c.Collector.Name
	}
	return []string{
		c.Date.Format("2006-01-02"),
		floor,
		flat,
		tenant,
		phone,
		strconv.FormatFloat(util.CentToAmount(c.AmountCent), 'f', 2, 64),
		strconv.Itoa(c.Month),
		strconv.Itoa(c.Year),
		collector,
		c.Note,
	}
}

func attachment(c *gin.Context, contentType, ext string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"collections_%s.%s\"",
		time.Now().Format("20060102"), ext))
}

// ExportCSV streams all collections as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	list, err := h.Collections.ListAll(c.Request.Context())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	attachment(c, "text/csv; charset=utf-8", "csv")
	c.Status(http.StatusOK)

	// UTF-8 BOM so spreadsheet apps detect the encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for i := range list {
		_ = w.Write(exportRow(&list[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.Log.Warn("write csv export", zap.Error(err))
	}
}

// ExportXLSX writes all collections into a single worksheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	list, err := h.Collections.ListAll(c.Request.Context())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Collections"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i := range list {
		row := exportRow(&list[i])
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			// amount, month and year stay numeric so the sheet can sum them
			switch col {
			case 5:
				_ = f.SetCellValue(sheet, cell, util.CentToAmount(list[i].AmountCent))
			case 6, 7:
				n, _ := strconv.Atoi(v)
				_ = f.SetCellValue(sheet, cell, n)
			default:
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}

	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Log.Warn("write xlsx export", zap.Error(err))
	}
}
