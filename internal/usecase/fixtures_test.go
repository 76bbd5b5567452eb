package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/database"
	"art-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixedNow is the wall clock every service test runs at.
var fixedNow = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// recordingPublisher keeps what the notification service hands over.
type recordingPublisher struct {
	mu    sync.Mutex
	items []entity.Notification
}

func (p *recordingPublisher) Publish(ctx context.Context, n entity.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, n)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Contents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.items))
	for i, n := range p.items {
		out[i] = n.Content
	}
	return out
}

type fixture struct {
	ctx       context.Context
	store     *database.MemoryStore
	repo      *repository.Repository
	clock     *testClock
	publisher *recordingPublisher
	gateway   *scriptedGateway
	service   *Service
}

// scriptedGateway approves or declines charges in order; once the script
// runs out it repeats the last answer.
type scriptedGateway struct {
	mu      sync.Mutex
	answers []bool
	calls   []entity.PaymentMethod
	amounts []decimal.Decimal
}

func (g *scriptedGateway) Charge(ctx context.Context, method entity.PaymentMethod, amount decimal.Decimal) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, method)
	g.amounts = append(g.amounts, amount)
	if len(g.answers) == 0 {
		return true, nil
	}
	answer := g.answers[0]
	if len(g.answers) > 1 {
		g.answers = g.answers[1:]
	}
	return answer, nil
}

func (g *scriptedGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func testConfig() *utils.Config {
	return &utils.Config{
		Business: utils.BusinessConfig{
			PaymentSuccessRate: DefaultPaymentSuccessRate,
			MaxPaymentAttempts: DefaultMaxPaymentAttempts,
			BookingHorizonDays: 30,
		},
	}
}

func newFixture(t *testing.T, answers ...bool) *fixture {
	t.Helper()
	return newFixtureAt(t, fixedNow, answers...)
}

// newFixtureAt runs the services on a clock starting at now, in now's zone.
func newFixtureAt(t *testing.T, now time.Time, answers ...bool) *fixture {
	t.Helper()
	t.Cleanup(func() { entity.SetLocation(time.Local) })

	f := &fixture{
		ctx:       context.Background(),
		store:     database.NewMemoryStore(entity.SchemaVersion),
		clock:     &testClock{now: now},
		publisher: &recordingPublisher{},
		gateway:   &scriptedGateway{answers: answers},
	}
	f.repo = repository.NewRepository(f.store, zap.NewNop())
	seedNetwork(t, f.store)

	f.service = NewService(f.repo, testConfig(), f.publisher, zap.NewNop(), Options{
		Gateway: f.gateway,
		Now:     f.clock.Now,
	})
	return f
}

func seedNetwork(t *testing.T, store database.DocumentStore) {
	t.Helper()
	ctx := context.Background()

	routes := []entity.Route{
		{
			RouteID: "ROUTE_RED", RouteName: "Red Line",
			StartStationID: "KJ-01", EndStationID: "KJ-03", NumberOfStops: 3,
			StopsSequence: []string{"KJ-01", "KJ-02", "KJ-03"},
			BasePrice:     decimal.RequireFromString("5.00"),
		},
		{
			RouteID: "ROUTE_BLUE", RouteName: "Blue Line",
			StartStationID: "KJ-03", EndStationID: "BL-02", NumberOfStops: 3,
			StopsSequence: []string{"KJ-03", "BL-01", "BL-02"},
			BasePrice:     decimal.RequireFromString("3.00"),
		},
		{
			RouteID: "ROUTE_GREEN", RouteName: "Green Line",
			StartStationID: "GR-01", EndStationID: "GR-02", NumberOfStops: 2,
			StopsSequence: []string{"GR-01", "GR-02"},
			BasePrice:     decimal.RequireFromString("4.00"),
		},
	}
	require.NoError(t, store.Save(ctx, database.DocRoutes, routes))

	stations := []entity.StationLine{
		{Line: "Red Line", Stations: []entity.Station{
			{StationID: "KJ-01", StationName: "Gombak"},
			{StationID: "KJ-02", StationName: "Taman Melati"},
			{StationID: "KJ-03", StationName: "Wangsa Maju"},
		}},
		{Line: "Blue Line", Stations: []entity.Station{
			{StationID: "BL-01", StationName: "Setiawangsa"},
			{StationID: "BL-02", StationName: "Jelatek"},
		}},
	}
	require.NoError(t, store.Save(ctx, database.DocStations, stations))

	trips := []map[string]any{
		{"tripId": "RED_0800_KJ-01", "routeId": "ROUTE_RED", "startStationId": "KJ-01", "departureTime": "08:00", "status": "SCHEDULED"},
		{"tripId": "RED_0900_KJ-01", "routeId": "ROUTE_RED", "startStationId": "KJ-01", "departureTime": "09:00", "status": "SCHEDULED"},
		{"tripId": "RED_1200_KJ-01", "routeId": "ROUTE_RED", "startStationId": "KJ-01", "departureTime": "12:00", "status": "COMPLETED"},
		{"tripId": "BLUE_0800_KJ-03", "routeId": "ROUTE_BLUE", "startStationId": "KJ-03", "departureTime": "08:00", "status": "SCHEDULED"},
	}
	require.NoError(t, store.Save(ctx, database.DocTrips, trips))
}

func (f *fixture) setPoints(t *testing.T, userID string, points int64) {
	t.Helper()
	ledger := entity.PointsLedger{}
	_, err := f.store.Load(f.ctx, database.DocPointsLedger, &ledger)
	require.NoError(t, err)
	if ledger == nil {
		ledger = entity.PointsLedger{}
	}
	ledger[userID] = points
	require.NoError(t, f.store.Save(f.ctx, database.DocPointsLedger, ledger))
}

func (f *fixture) points(t *testing.T, userID string) int64 {
	t.Helper()
	balance, err := f.service.Ledger.GetPoints(f.ctx, userID)
	require.NoError(t, err)
	return balance
}

func (f *fixture) trip(t *testing.T, tripID string) *entity.Trip {
	t.Helper()
	trip, err := f.repo.Trip.FindByID(f.ctx, tripID)
	require.NoError(t, err)
	require.NotNil(t, trip)
	return trip
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
