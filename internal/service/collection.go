package service

import (
	"context"
	"strings"
	"time"

	"github.com/Re1354/building-management-system/internal/apperr"
	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionService records rent collections and computes dashboard
// aggregates. Every aggregate is recomputed from stored rows on each call.
type CollectionService struct {
	db      *gorm.DB
	tenants *TenantService
	now     func() time.Time
}

func NewCollectionService(db *gorm.DB, tenants *TenantService) *CollectionService {
	return &CollectionService{db: db, tenants: tenants, now: time.Now}
}

// AddCollectionInput names the tenant either by TenantID or by the
// (Floor, Flat, TenantName) triple, which is created on first use.
type AddCollectionInput struct {
	TenantID   string
	Floor      *int
	Flat       string
	TenantName string
	Phone      string
	Amount     *float64
	Date       string
	Note       string
}

type Summary struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type MonthTotal struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type AdminTotal struct {
	AdminID string  `json:"adminId"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Total   float64 `json:"total"`
	Count   int64   `json:"count"`
}

type BuildingSummary struct {
	ByAdmin []AdminTotal `json:"byAdmin"`
	Overall Summary      `json:"overall"`
}

// Add records a collection for adminID. Month and year come from the
// collection date (default now), never from the caller.
func (s *CollectionService) Add(ctx context.Context, in AddCollectionInput, adminID string) (*models.Collection, error) {
	if in.Amount == nil {
		return nil, apperr.Validation("Amount is required")
	}
	if err := util.ValidateAmount(*in.Amount); err != nil {
		return nil, apperr.Validation("Invalid amount: " + err.Error())
	}

	date := s.now()
	if strings.TrimSpace(in.Date) != "" {
		d, err := util.ParseDate(in.Date)
		if err != nil {
			return nil, apperr.Validation("Invalid date")
		}
		date = d
	}

	var tenant *models.Tenant
	if in.TenantID != "" {
		if _, err := uuid.Parse(in.TenantID); err != nil {
			return nil, apperr.Validation("Invalid tenantId")
		}
		t, err := s.tenants.Get(ctx, in.TenantID)
		if err != nil {
			return nil, err
		}
		tenant = t
	} else {
		flat := strings.TrimSpace(in.Flat)
		name := strings.TrimSpace(in.TenantName)
		if in.Floor == nil || flat == "" || name == "" {
			return nil, apperr.Validation("Provide tenant info (floor, flat, tenantName) when no tenantId")
		}
		t, err := s.tenants.findOrCreate(ctx, *in.Floor, flat, name, in.Phone, adminID)
		if err != nil {
			return nil, err
		}
		tenant = t
	}

	c := models.Collection{
		TenantID:    tenant.ID,
		CollectedBy: adminID,
		AmountCent:  util.AmountToCent(*in.Amount),
		Date:        date,
		Month:       int(date.Month()),
		Year:        date.Year(),
		Note:        strings.TrimSpace(in.Note),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isValueTooLong(err) {
			return nil, apperr.Validation(msgValueTooLong)
		}
		return nil, apperr.Internal("create collection", err)
	}
	c.Tenant = tenant
	return &c, nil
}

// archived tenants still show up on the collections that reference them
func withTenant(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func withCollector(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// ListMine returns the collections recorded by adminID, newest first.
func (s *CollectionService) ListMine(ctx context.Context, adminID string) ([]models.Collection, error) {
	out := make([]models.Collection, 0)
	err := s.db.WithContext(ctx).
		Preload("Tenant", withTenant).
		Where("collected_by = ?", adminID).
		Order("date DESC, created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("list my collections", err)
	}
	return out, nil
}

// ListAll returns every collection with tenant and collector, newest first.
func (s *CollectionService) ListAll(ctx context.Context) ([]models.Collection, error) {
	out := make([]models.Collection, 0)
	err := s.db.WithContext(ctx).
		Preload("Tenant", withTenant).
		Preload("Collector", withCollector).
		Order("date DESC, created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("list collections", err)
	}
	return out, nil
}

// SUM over bigint is numeric on Postgres, hence the casts.
const sumSelect = "CAST(COALESCE(SUM(amount_cent), 0) AS BIGINT) AS total_cent, COUNT(*) AS count"

type sumRow struct {
	TotalCent int64
	Count     int64
}

type monthRow struct {
	Month     int
	TotalCent int64
}

type adminRow struct {
	AdminID   string
	Name      string
	Email     string
	TotalCent int64
	Count     int64
}

// MyMonthlySummary totals adminID's collections for one month. Zero month or
// year means the current one.
func (s *CollectionService) MyMonthlySummary(ctx context.Context, adminID string, month, year int) (Summary, error) {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	var row sumRow
	err := s.db.WithContext(ctx).Model(&models.Collection{}).
		Select(sumSelect).
		Where("collected_by = ? AND month = ? AND year = ?", adminID, month, year).
		Scan(&row).Error
	if err != nil {
		return Summary{}, apperr.Internal("monthly summary", err)
	}
	return Summary{Total: util.CentToAmount(row.TotalCent), Count: row.Count}, nil
}

// MyYearlySummary returns per-month totals for adminID in year (zero means
// the current year). Months without collections are absent.
func (s *CollectionService) MyYearlySummary(ctx context.Context, adminID string, year int) ([]MonthTotal, error) {
	if year == 0 {
		year = s.now().Year()
	}
	totals, err := s.monthTotals(ctx, adminID, year)
	if err != nil {
		return nil, apperr.Internal("yearly summary", err)
	}
	return totals, nil
}

// ChartData returns exactly twelve entries for year, zero-filled.
func (s *CollectionService) ChartData(ctx context.Context, year int) ([]MonthTotal, error) {
	if year == 0 {
		year = s.now().Year()
	}
	totals, err := s.monthTotals(ctx, "", year)
	if err != nil {
		return nil, apperr.Internal("chart data", err)
	}

	byMonth := make(map[int]float64, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t.Total
	}
	full := make([]MonthTotal, 12)
	for i := range full {
		full[i] = MonthTotal{Month: i + 1, Total: byMonth[i+1]}
	}
	return full, nil
}

// BuildingSummary aggregates across all admins. A zero month or year leaves
// that field unfiltered.
func (s *CollectionService) BuildingSummary(ctx context.Context, month, year int) (BuildingSummary, error) {
	byAdmin, err := s.adminTotals(ctx, month, year)
	if err != nil {
		return BuildingSummary{}, apperr.Internal("building summary", err)
	}

	q := s.db.WithContext(ctx).Model(&models.Collection{}).
		Select(sumSelect)
	q = filterPeriod(q, "", month, year)

	var row sumRow
	if err := q.Scan(&row).Error; err != nil {
		return BuildingSummary{}, apperr.Internal("building summary overall", err)
	}

	return BuildingSummary{
		ByAdmin: byAdmin,
		Overall: Summary{Total: util.CentToAmount(row.TotalCent), Count: row.Count},
	}, nil
}

// AdminSummary returns all-time totals per admin, largest first.
func (s *CollectionService) AdminSummary(ctx context.Context) ([]AdminTotal, error) {
	totals, err := s.adminTotals(ctx, 0, 0)
	if err != nil {
		return nil, apperr.Internal("admin summary", err)
	}
	return totals, nil
}

func filterPeriod(q *gorm.DB, table string, month, year int) *gorm.DB {
	prefix := ""
	if table != "" {
		prefix = table + "."
	}
	if month > 0 {
		q = q.Where(prefix+"month = ?", month)
	}
	if year > 0 {
		q = q.Where(prefix+"year = ?", year)
	}
	return q
}

func (s *CollectionService) monthTotals(ctx context.Context, adminID string, year int) ([]MonthTotal, error) {
	q := s.db.WithContext(ctx).Model(&models.Collection{}).
		Select("month, CAST(SUM(amount_cent) AS BIGINT) AS total_cent").
		Where("year = ?", year)
	if adminID != "" {
		q = q.Where("collected_by = ?", adminID)
	}

	var rows []monthRow
	if err := q.Group("month").Order("month ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]MonthTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthTotal{Month: r.Month, Total: util.CentToAmount(r.TotalCent)})
	}
	return out, nil
}

// adminTotals groups collections by collector. The inner join drops
// collections whose collector no longer resolves to a user.
func (s *CollectionService) adminTotals(ctx context.Context, month, year int) ([]AdminTotal, error) {
	q := s.db.WithContext(ctx).Table("collections").
		Select("users.id AS admin_id, users.name AS name, users.email AS email, " +
			"CAST(SUM(collections.amount_cent) AS BIGINT) AS total_cent, COUNT(*) AS count").
		Joins("JOIN users ON users.id = collections.collected_by")
	q = filterPeriod(q, "collections", month, year)

	var rows []adminRow
	err := q.Group("users.id, users.name, users.email").
		Order("total_cent DESC, users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]AdminTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminTotal{
			AdminID: r.AdminID,
			Name:    r.Name,
			Email:   r.Email,
			Total:   util.CentToAmount(r.TotalCent),
			Count:   r.Count,
		})
	}
	return out, nil
}
