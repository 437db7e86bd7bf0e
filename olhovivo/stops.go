package olhovivo

import (
	"context"
	"fmt"
	"net/url"
)

// SearchStops searches stops by name or address
func (c *Client) SearchStops(ctx context.Context, terms string) ([]Stop, error) {
	params := url.Values{}
	params.Set("termosBusca", terms)

	stops := []Stop{}
	if err := c.getJSON(ctx, "Parada/Buscar", params, &stops); err != nil {
		return nil, fmt.Errorf("failed to search stops: %w", err)
	}

	c.logger.Debug().Str("terms", terms).Int("count", len(stops)).Msg("Retrieved stops from Olho Vivo")
	return nonNil(stops), nil
}

// StopsByLine returns the stops served by a line
func (c *Client) StopsByLine(ctx context.Context, lineCode string) ([]Stop, error) {
	params, err := codeParams("codigoLinha", lineCode)
	if err != nil {
		return nil, err
	}

	stops := []Stop{}
	if err := c.getJSON(ctx, "Parada/BuscarParadasPorLinha", params, &stops); err != nil {
		return nil, fmt.Errorf("failed to get stops for line %s: %w", lineCode, err)
	}

	return nonNil(stops), nil
}

// StopsByLane returns the stops of a bus corridor
func (c *Client) StopsByLane(ctx context.Context, laneCode string) ([]Stop, error) {
	params, err := codeParams("codigoCorredor", laneCode)
	if err != nil {
		return nil, err
	}

	stops := []Stop{}
	if err := c.getJSON(ctx, "Parada/BuscarParadasPorCorredor", params, &stops); err != nil {
		return nil, fmt.Errorf("failed to get stops for lane %s: %w", laneCode, err)
	}

	return nonNil(stops), nil
}
