package olhovivo

import (
	"context"
	"fmt"
)

// StopLineForecast returns the arrival forecast of one line at one stop
func (c *Client) StopLineForecast(ctx context.Context, stopCode, lineCode string) (*StopForecast, error) {
	params, err := codeParams("codigoParada", stopCode, "codigoLinha", lineCode)
	if err != nil {
		return nil, err
	}

	var forecast StopForecast
	if err := c.getJSON(ctx, "Previsao", params, &forecast); err != nil {
		return nil, fmt.Errorf("failed to get forecast for stop %s and line %s: %w", stopCode, lineCode, err)
	}

	return &forecast, nil
}

// StopForecast returns the arrival forecast of every line at a stop
func (c *Client) StopForecast(ctx context.Context, stopCode string) (*StopForecast, error) {
	params, err := codeParams("codigoParada", stopCode)
	if err != nil {
		return nil, err
	}

	var forecast StopForecast
	if err := c.getJSON(ctx, "Previsao/Parada", params, &forecast); err != nil {
		return nil, fmt.Errorf("failed to get forecast for stop %s: %w", stopCode, err)
	}

	return &forecast, nil
}

// LineForecast returns the arrival forecast of a line at each of its stops
func (c *Client) LineForecast(ctx context.Context, lineCode string) (*LineForecast, error) {
	params, err := codeParams("codigoLinha", lineCode)
	if err != nil {
		return nil, err
	}

	var forecast LineForecast
	if err := c.getJSON(ctx, "Previsao/Linha", params, &forecast); err != nil {
		return nil, fmt.Errorf("failed to get forecast for line %s: %w", lineCode, err)
	}

	forecast.Stops = nonNil(forecast.Stops)
	return &forecast, nil
}
