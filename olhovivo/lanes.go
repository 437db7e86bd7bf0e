package olhovivo

import (
	"context"
	"fmt"
)

// Lanes returns every bus corridor
func (c *Client) Lanes(ctx context.Context) ([]Lane, error) {
	lanes := []Lane{}
	if err := c.getJSON(ctx, "Corredor", nil, &lanes); err != nil {
		return nil, fmt.Errorf("failed to get lanes: %w", err)
	}

	c.logger.Debug().Msgf("Retrieved %d lanes from Olho Vivo", len(lanes))
	return nonNil(lanes), nil
}
