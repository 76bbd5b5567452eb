package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTripRepository_SkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore(entity.SchemaVersion)
	raw := []any{
		map[string]any{"tripId": "RED_0800_KJ-01", "routeId": "ROUTE_RED", "startStationId": "KJ-01", "departureTime": "08:00"},
		map[string]any{"tripId": "BROKEN", "departureTime": "quarter past"},
		map[string]any{"routeId": "ROUTE_RED"},
		map[string]any{"tripId": "GREEN_1000_GR-01", "routeId": "ROUTE_GREEN", "startStationId": "GR-01", "departureTime": "10:00", "status": "STARTED"},
	}
	require.NoError(t, store.Save(ctx, database.DocTrips, raw))

	repo := repository.NewTripRepository(store, zap.NewNop())

	trips, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	red := trips[0]
	assert.Equal(t, entity.TripStatusScheduled, red.Status, "missing status defaults to scheduled")
	assert.True(t, red.DepartureTime.ClockOnly)
	assert.Equal(t, "08:20", red.ArrivalTime.String())
	assert.Equal(t, "10:45", trips[1].ArrivalTime.String())

	green, err := repo.FindByColor(ctx, "green")
	require.NoError(t, err)
	require.Len(t, green, 1)
	assert.Equal(t, "GREEN_1000_GR-01", green[0].TripID)

	missing, err := repo.FindByID(ctx, "BLUE_0800_KJ-03")
	require.NoError(t, err)
	assert.Nil(t, missing)

	red.Status = entity.TripStatusCancelled
	require.NoError(t, repo.Save(ctx, &red))

	var stored []json.RawMessage
	_, err = store.Load(ctx, database.DocTrips, &stored)
	require.NoError(t, err)
	assert.Len(t, stored, 4, "undecodable records are written back")

	reloaded, err := repo.FindByID(ctx, "RED_0800_KJ-01")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, entity.TripStatusCancelled, reloaded.Status)
}

func TestBookingRepository_CancelByTrip(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore(entity.SchemaVersion)
	repo := repository.NewBookingRepository(store, zap.NewNop())

	require.NoError(t, repo.Append(ctx, "u1", []entity.TripBooking{
		{TripBookingID: "b1", TripID: "RED_0800_KJ-01", Status: entity.TripBookingStatusConfirmed},
		{TripBookingID: "b2", TripID: "RED_0900_KJ-01", Status: entity.TripBookingStatusConfirmed},
	}))
	require.NoError(t, repo.Append(ctx, "u2", []entity.TripBooking{
		{TripBookingID: "b3", TripID: "RED_0800_KJ-01", Status: entity.TripBookingStatusCancelled},
		{TripBookingID: "b4", TripID: "RED_0800_KJ-01", Status: entity.TripBookingStatusConfirmed},
	}))

	affected, err := repo.CancelByTrip(ctx, "RED_0800_KJ-01")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"u1": {"b1"}, "u2": {"b4"}}, affected)

	again, err := repo.CancelByTrip(ctx, "RED_0800_KJ-01")
	require.NoError(t, err)
	assert.Empty(t, again)

	updated, err := repo.UpdateStatus(ctx, map[string][]string{"u1": {"b2", "b1"}}, entity.TripBookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	none, err := repo.FindByUserID(ctx, "u9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
