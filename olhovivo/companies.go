package olhovivo

import (
	"context"
	"fmt"
)

// Companies returns the bus operators grouped by area
func (c *Client) Companies(ctx context.Context) (*Companies, error) {
	var companies Companies
	if err := c.getJSON(ctx, "Empresa", nil, &companies); err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}

	companies.Areas = nonNil(companies.Areas)
	return &companies, nil
}
