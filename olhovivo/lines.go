package olhovivo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchLines searches lines by number or by terminal name, e.g. "8000" or "Lapa"
func (c *Client) SearchLines(ctx context.Context, terms string) ([]Line, error) {
	params := url.Values{}
	params.Set("termosBusca", terms)

	lines := []Line{}
	if err := c.getJSON(ctx, "Linha/Buscar", params, &lines); err != nil {
		return nil, fmt.Errorf("failed to search lines: %w", err)
	}

	c.logger.Debug().Str("terms", terms).Int("count", len(lines)).Msg("Retrieved lines from Olho Vivo")
	return nonNil(lines), nil
}

// LinesByDirection searches lines like SearchLines, restricted to one direction
func (c *Client) LinesByDirection(ctx context.Context, terms string, direction Direction) ([]Line, error) {
	if !ValidDirection(direction) {
		return nil, &ValidationError{
			Param:  "sentido",
			Value:  strconv.Itoa(int(direction)),
			Reason: "direction must be 1 or 2",
		}
	}

	params := url.Values{}
	params.Set("termosBusca", terms)
	params.Set("sentido", strconv.Itoa(int(direction)))

	lines := []Line{}
	if err := c.getJSON(ctx, "Linha/BuscarLinhaSentido", params, &lines); err != nil {
		return nil, fmt.Errorf("failed to search lines by direction: %w", err)
	}

	return nonNil(lines), nil
}

// nonNil turns a JSON null list into an empty one
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
