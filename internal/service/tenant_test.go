package service

import (
	"context"
	"testing"

	"github.com/Re1354/building-management-system/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantCreate_DuplicateFloorFlat(t *testing.T) {
	db, tenants, _ := newServices(t)
	admin := createAdmin(t, db, "Admin", "admin@example.com")
	ctx := context.Background()

	first := createTenant(t, tenants, 3, "B", "Alice", admin.ID)
	assert.Equal(t, admin.ID, *first.CreatedBy)

	_, err := tenants.Create(ctx, CreateTenantInput{Floor: ptr(3), Flat: "B", TenantName: "Bob"}, admin.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	list, err := tenants.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].TenantName)
}

func TestTenantCreate_MissingFields(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()

	cases := []CreateTenantInput{
		{Flat: "A", TenantName: "No floor"},
		{Floor: ptr(1), TenantName: "No flat"},
		{Floor: ptr(1), Flat: "A"},
		{Floor: ptr(1), Flat: "  ", TenantName: "Blank flat"},
	}
	for _, in := range cases {
		_, err := tenants.Create(ctx, in, "")
		assert.ErrorIs(t, err, apperr.ErrValidation, "input %+v", in)
	}
}

func TestTenantCreate_FloorZeroIsValid(t *testing.T) {
	_, tenants, _ := newServices(t)

	tn, err := tenants.Create(context.Background(), CreateTenantInput{Floor: ptr(0), Flat: "G1", TenantName: "Ground"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, tn.Floor)
	assert.Nil(t, tn.CreatedBy)
}

func TestTenantList_OrderedByFloorThenFlat(t *testing.T) {
	_, tenants, _ := newServices(t)
	createTenant(t, tenants, 2, "A", "Carol", "")
	createTenant(t, tenants, 1, "B", "Bob", "")
	createTenant(t, tenants, 1, "A", "Alice", "")

	list, err := tenants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"},
		[]string{list[0].TenantName, list[1].TenantName, list[2].TenantName})
}

func TestTenantList_EmptyAndIdempotent(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()

	list, err := tenants.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	createTenant(t, tenants, 1, "A", "Alice", "")
	first, err := tenants.List(ctx)
	require.NoError(t, err)
	second, err := tenants.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTenantGet(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()
	tn := createTenant(t, tenants, 4, "C", "Dave", "")

	got, err := tenants.Get(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave", got.TenantName)

	_, err = tenants.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = tenants.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTenantUpdate_Partial(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()
	tn := createTenant(t, tenants, 1, "A", "Alice", "")

	updated, err := tenants.Update(ctx, tn.ID, UpdateTenantInput{Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Alice", updated.TenantName)
	assert.Equal(t, 1, updated.Floor)

	updated, err = tenants.Update(ctx, tn.ID, UpdateTenantInput{Floor: ptr(5), TenantName: ptr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Floor)
	assert.Equal(t, "Alicia", updated.TenantName)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestTenantUpdate_Errors(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()
	createTenant(t, tenants, 1, "A", "Alice", "")
	bob := createTenant(t, tenants, 1, "B", "Bob", "")

	_, err := tenants.Update(ctx, uuid.NewString(), UpdateTenantInput{Phone: ptr("1")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = tenants.Update(ctx, bob.ID, UpdateTenantInput{Flat: ptr("A")})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = tenants.Update(ctx, bob.ID, UpdateTenantInput{TenantName: ptr(" ")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := tenants.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Flat)
}

func TestTenantDelete(t *testing.T) {
	_, tenants, _ := newServices(t)
	ctx := context.Background()
	tn := createTenant(t, tenants, 2, "D", "Erin", "")

	require.NoError(t, tenants.Delete(ctx, tn.ID))
	assert.ErrorIs(t, tenants.Delete(ctx, tn.ID), apperr.ErrNotFound)
	assert.ErrorIs(t, tenants.Delete(ctx, "garbage"), apperr.ErrNotFound)

	_, err := tenants.Get(ctx, tn.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// the pair is free again once the previous tenant is archived
	again := createTenant(t, tenants, 2, "D", "Frank", "")
	assert.NotEqual(t, tn.ID, again.ID)
}
