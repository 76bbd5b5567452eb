package repository

import (
	"context"
	"fmt"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

// RouteRepository reads the static network topology.
type RouteRepository interface {
	FindAll(ctx context.Context) ([]entity.Route, error)
	FindByID(ctx context.Context, routeID string) (*entity.Route, error)
	StationLines(ctx context.Context) ([]entity.StationLine, error)
	FindStation(ctx context.Context, stationID string) (*entity.Station, error)
}

type routeRepository struct {
	store database.DocumentStore
	log   *zap.Logger
}

func NewRouteRepository(store database.DocumentStore, log *zap.Logger) RouteRepository {
	return &routeRepository{
		store: store,
		log:   log.With(zap.String("repository", "routes")),
	}
}

func (r *routeRepository) FindAll(ctx context.Context) ([]entity.Route, error) {
	var routes []entity.Route
	if _, err := r.store.Load(ctx, database.DocRoutes, &routes); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	return routes, nil
}

func (r *routeRepository) FindByID(ctx context.Context, routeID string) (*entity.Route, error) {
	routes, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range routes {
		if routes[i].RouteID == routeID {
			return &routes[i], nil
		}
	}
	return nil, nil
}

func (r *routeRepository) StationLines(ctx context.Context) ([]entity.StationLine, error) {
	var lines []entity.StationLine
	if _, err := r.store.Load(ctx, database.DocStations, &lines); err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	return lines, nil
}

func (r *routeRepository) FindStation(ctx context.Context, stationID string) (*entity.Station, error) {
	lines, err := r.StationLines(ctx)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		for i := range line.Stations {
			if line.Stations[i].StationID == stationID {
				return &line.Stations[i], nil
			}
		}
	}
	return nil, nil
}
