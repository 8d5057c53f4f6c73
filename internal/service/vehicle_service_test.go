package service_test

import (
	"context"
	"testing"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/repository/postgres"
	"github.com/Jarecamang/ParkingPassport/internal/service"
	"github.com/Jarecamang/ParkingPassport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVehicleService(t *testing.T) (*service.VehicleService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewVehicleService(repos.Vehicle, repos.SearchHistory, nil), testDB
}

func countEntries(t *testing.T, testDB *testutil.TestDB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.SearchEntry{}).Count(&count).Error)
	return count
}

func TestVehicleService_CreateNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, _ := newVehicleService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateVehicleInput{
		PlateNumber: " abc123 ",
		Apartment:   "9",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", created.PlateNumber)
	assert.NotZero(t, created.ID)

	// Same plate in a different case is the same plate.
	_, err = svc.Create(ctx, service.CreateVehicleInput{
		PlateNumber: "Abc123",
		Apartment:   "12",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate)
}

func TestVehicleService_CreateValidation(t *testing.T) {
	svc, _ := newVehicleService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CreateVehicleInput{Apartment: "1"})
	assert.ErrorIs(t, err, domain.ErrPlateRequired)

	_, err = svc.Create(ctx, service.CreateVehicleInput{PlateNumber: "XYZ789"})
	assert.ErrorIs(t, err, domain.ErrApartmentRequired)
}

func TestVehicleService_UpdatePartialAndPlateConflict(t *testing.T) {
	svc, testDB := newVehicleService(t)
	ctx := context.Background()

	first := testutil.NewVehicleBuilder().WithPlate("AAA111").Build(t, testDB.DB)
	second := testutil.NewVehicleBuilder().WithPlate("BBB222").WithOwner("Maria Rodriguez").Build(t, testDB.DB)

	// Partial update leaves absent fields untouched.
	newNotes := "garage spot 4"
	updated, err := svc.Update(ctx, second.ID, service.UpdateVehicleInput{Notes: &newNotes})
	require.NoError(t, err)
	assert.Equal(t, "BBB222", updated.PlateNumber)
	assert.Equal(t, "Maria Rodriguez", updated.OwnerName)
	assert.Equal(t, newNotes, updated.Notes)

	// Changing a plate onto an existing one conflicts.
	clash := "aaa111"
	_, err = svc.Update(ctx, second.ID, service.UpdateVehicleInput{PlateNumber: &clash})
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate)

	// Unknown id is not found.
	_, err = svc.Update(ctx, first.ID+second.ID+1000, service.UpdateVehicleInput{Notes: &newNotes})
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestVehicleService_DeleteIsIdempotent(t *testing.T) {
	svc, testDB := newVehicleService(t)
	ctx := context.Background()

	vehicle := testutil.NewVehicleBuilder().Build(t, testDB.DB)

	require.NoError(t, svc.Delete(ctx, vehicle.ID))
	require.NoError(t, svc.Delete(ctx, vehicle.ID))

	_, err := svc.Update(ctx, vehicle.ID, service.UpdateVehicleInput{})
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestVehicleService_LookupWritesOneEntryPerCall(t *testing.T) {
	svc, testDB := newVehicleService(t)
	ctx := context.Background()

	testutil.NewVehicleBuilder().WithPlate("ABC123").WithApartment("9").Build(t, testDB.DB)

	// Allowed lookup, case-insensitive via normalization.
	result, err := svc.Lookup(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	require.NotNil(t, result.Vehicle)
	assert.Equal(t, "ABC123", result.Vehicle.PlateNumber)
	assert.Equal(t, "9", result.Vehicle.Apartment)
	assert.EqualValues(t, 1, countEntries(t, testDB))

	// Denied lookup still writes exactly one entry.
	result, err = svc.Lookup(ctx, "ZZZ000")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Nil(t, result.Vehicle)
	assert.EqualValues(t, 2, countEntries(t, testDB))

	var entries []*domain.SearchEntry
	require.NoError(t, testDB.DB.Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, "ABC123", entries[0].PlateNumber)
	assert.True(t, entries[0].Allowed)
	require.NotNil(t, entries[0].ApartmentNumber)
	assert.Equal(t, "9", *entries[0].ApartmentNumber)

	assert.Equal(t, "ZZZ000", entries[1].PlateNumber)
	assert.False(t, entries[1].Allowed)
	assert.Nil(t, entries[1].ApartmentNumber)
}

func TestVehicleService_LookupOnEmptyCollection(t *testing.T) {
	svc, testDB := newVehicleService(t)

	result, err := svc.Lookup(context.Background(), "ZZZ000")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Nil(t, result.Vehicle)
	assert.EqualValues(t, 1, countEntries(t, testDB))
}

func TestVehicleService_HistoryNewestFirstWithLimit(t *testing.T) {
	svc, _ := newVehicleService(t)
	ctx := context.Background()

	for _, plate := range []string{"AAA111", "BBB222", "CCC333"} {
		_, err := svc.Lookup(ctx, plate)
		require.NoError(t, err)
	}

	entries, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CCC333", entries[0].PlateNumber)
	assert.Equal(t, "BBB222", entries[1].PlateNumber)

	// Zero means the default page size.
	entries, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
