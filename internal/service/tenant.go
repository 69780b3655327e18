package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Re1354/building-management-system/internal/apperr"
	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgTenantExists = "Tenant for this floor+flat already exists"

// TenantService manages tenant records. The (floor, flat) uniqueness of live
// tenants is enforced by the idx_tenant_floor_flat index, not by lookups.
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

type CreateTenantInput struct {
	Floor      *int
	Flat       string
	TenantName string
	Phone      string
}

// UpdateTenantInput holds a partial update; nil fields are left unchanged.
type UpdateTenantInput struct {
	Floor      *int
	Flat       *string
	TenantName *string
	Phone      *string
}

func (s *TenantService) Create(ctx context.Context, in CreateTenantInput, createdBy string) (*models.Tenant, error) {
	in.Flat = strings.TrimSpace(in.Flat)
	in.TenantName = strings.TrimSpace(in.TenantName)
	if in.Floor == nil || in.Flat == "" || in.TenantName == "" {
		return nil, apperr.Validation("Missing required fields")
	}
	if err := util.ValidateFlat(in.Flat); err != nil {
		return nil, apperr.Validation("Invalid flat: " + err.Error())
	}

	t := models.Tenant{
		Floor:      *in.Floor,
		Flat:       in.Flat,
		TenantName: in.TenantName,
		Phone:      strings.TrimSpace(in.Phone),
	}
	if createdBy != "" {
		t.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict(msgTenantExists)
		}
		if isValueTooLong(err) {
			return nil, apperr.Validation(msgValueTooLong)
		}
		return nil, apperr.Internal("create tenant", err)
	}
	return &t, nil
}

// List returns every live tenant ordered by floor, then flat.
func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	tenants := make([]models.Tenant, 0)
	if err := s.db.WithContext(ctx).Order("floor ASC, flat ASC").Find(&tenants).Error; err != nil {
		return nil, apperr.Internal("list tenants", err)
	}
	return tenants, nil
}

// Get looks a tenant up by id. Malformed ids are reported as not found.
func (s *TenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("Tenant not found")
	}
	var t models.Tenant
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tenant not found")
		}
		return nil, apperr.Internal("get tenant", err)
	}
	return &t, nil
}

// Update applies the supplied fields. Moving a tenant onto a (floor, flat)
// pair held by another live tenant is a conflict.
func (s *TenantService) Update(ctx context.Context, id string, in UpdateTenantInput) (*models.Tenant, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if in.Floor != nil {
		changes["floor"] = *in.Floor
	}
	if in.Flat != nil {
		flat := strings.TrimSpace(*in.Flat)
		if err := util.ValidateFlat(flat); err != nil {
			return nil, apperr.Validation("Invalid flat: " + err.Error())
		}
		changes["flat"] = flat
	}
	if in.TenantName != nil {
		name := strings.TrimSpace(*in.TenantName)
		if name == "" {
			return nil, apperr.Validation("tenantName must not be empty")
		}
		changes["tenant_name"] = name
	}
	if in.Phone != nil {
		changes["phone"] = strings.TrimSpace(*in.Phone)
	}
	if len(changes) == 0 {
		return t, nil
	}

	if err := s.db.WithContext(ctx).Model(t).Updates(changes).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict(msgTenantExists)
		}
		if isValueTooLong(err) {
			return nil, apperr.Validation(msgValueTooLong)
		}
		return nil, apperr.Internal("update tenant", err)
	}
	return s.Get(ctx, id)
}

// Delete archives the tenant. Its collections keep pointing at the archived
// row and the (floor, flat) pair becomes available again.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("Tenant not found")
	}
	res := s.db.WithContext(ctx).Delete(&models.Tenant{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal("delete tenant", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Tenant not found")
	}
	return nil
}

// findOrCreate resolves a live tenant by (floor, flat), creating it when
// absent. A concurrent insert of the same pair is resolved by re-reading.
func (s *TenantService) findOrCreate(ctx context.Context, floor int, flat, name, phone, createdBy string) (*models.Tenant, error) {
	db := s.db.WithContext(ctx)

	var existing models.Tenant
	err := db.Where("floor = ? AND flat = ?", floor, flat).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("find tenant", err)
	}

	t, err := s.Create(ctx, CreateTenantInput{Floor: &floor, Flat: flat, TenantName: name, Phone: phone}, createdBy)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, apperr.ErrConflict) {
		return nil, err
	}

	var winner models.Tenant
	if err := db.Where("floor = ? AND flat = ?", floor, flat).First(&winner).Error; err != nil {
		return nil, apperr.Internal("find tenant after conflict", err)
	}
	return &winner, nil
}
