package olhovivo

import (
	"context"
	"encoding/json"
)

// API defines the Olho Vivo operations
type API interface {
	// Line operations
	SearchLines(ctx context.Context, terms string) ([]Line, error)
	LinesByDirection(ctx context.Context, terms string, direction Direction) ([]Line, error)

	// Stop operations
	SearchStops(ctx context.Context, terms string) ([]Stop, error)
	StopsByLine(ctx context.Context, lineCode string) ([]Stop, error)
	StopsByLane(ctx context.Context, laneCode string) ([]Stop, error)

	// Lanes and companies
	Lanes(ctx context.Context) ([]Lane, error)
	Companies(ctx context.Context) (*Companies, error)

	// Vehicle positions
	Positions(ctx context.Context) (*Positions, error)
	PositionsRaw(ctx context.Context) (json.RawMessage, error)
	VehiclesByLine(ctx context.Context, lineCode string) (*LineVehicles, error)
	VehiclesInGarage(ctx context.Context, companyCode, lineCode string) (*Positions, error)

	// Arrival forecasts
	StopLineForecast(ctx context.Context, stopCode, lineCode string) (*StopForecast, error)
	StopForecast(ctx context.Context, stopCode string) (*StopForecast, error)
	LineForecast(ctx context.Context, lineCode string) (*LineForecast, error)
	ArrivalAt(ctx context.Context, line, stop string) (*LineArrival, error)

	// Map export
	ExportMap(ctx context.Context, route string) (bool, error)
}

var _ API = (*Client)(nil)
