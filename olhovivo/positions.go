package olhovivo

import (
	"context"
	"encoding/json"
	"fmt"
)

// Positions returns the location of every vehicle currently in service
func (c *Client) Positions(ctx context.Context) (*Positions, error) {
	var positions Positions
	if err := c.getJSON(ctx, "Posicao", nil, &positions); err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	positions.Lines = nonNil(positions.Lines)
	c.logger.Debug().
		Str("time", positions.Time).
		Int("lines", len(positions.Lines)).
		Msg("Retrieved vehicle positions from Olho Vivo")

	return &positions, nil
}

// PositionsRaw returns the Posicao payload exactly as the API sent it
func (c *Client) PositionsRaw(ctx context.Context) (json.RawMessage, error) {
	body, err := c.getRaw(ctx, "Posicao", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	return json.RawMessage(body), nil
}

// VehiclesByLine returns the vehicles of one line
func (c *Client) VehiclesByLine(ctx context.Context, lineCode string) (*LineVehicles, error) {
	params, err := codeParams("codigoLinha", lineCode)
	if err != nil {
		return nil, err
	}

	var vehicles LineVehicles
	if err := c.getJSON(ctx, "Posicao/Linha", params, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to get vehicles for line %s: %w", lineCode, err)
	}

	vehicles.Vehicles = nonNil(vehicles.Vehicles)
	return &vehicles, nil
}

// VehiclesInGarage returns the vehicles of a company parked in its garages.
// An empty lineCode asks for every line of the company.
func (c *Client) VehiclesInGarage(ctx context.Context, companyCode, lineCode string) (*Positions, error) {
	if lineCode == "" {
		lineCode = "0"
	}

	params, err := codeParams("codigoEmpresa", companyCode, "codigoLinha", lineCode)
	if err != nil {
		return nil, err
	}

	var positions Positions
	if err := c.getJSON(ctx, "Posicao/Garagem", params, &positions); err != nil {
		return nil, fmt.Errorf("failed to get garage vehicles for company %s: %w", companyCode, err)
	}

	positions.Lines = nonNil(positions.Lines)
	return &positions, nil
}
