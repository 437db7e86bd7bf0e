package olhovivo

import (
	"context"
	"strconv"
)

// ArrivalAt looks up a line and a stop by search terms and returns the line's
// arrival forecast at that stop.
//
// The first line and the first stop found are used. If the line lists the stop
// more than once, the first entry wins.
func (c *Client) ArrivalAt(ctx context.Context, line, stop string) (*LineArrival, error) {
	if !c.authenticated {
		return nil, ErrNotAuthenticated
	}
	if line == "" || stop == "" {
		return nil, ErrEmptyArgument
	}

	lines, err := c.SearchLines(ctx, line)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrInvalidLookup
	}

	stops, err := c.SearchStops(ctx, stop)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, ErrInvalidLookup
	}

	found := lines[0]
	stopCode := stops[0].Code

	forecast, err := c.LineForecast(ctx, strconv.Itoa(found.Code))
	if err != nil {
		return nil, err
	}

	var match *StopArrivals
	matches := 0
	for i := range forecast.Stops {
		if forecast.Stops[i].Code != stopCode {
			continue
		}
		matches++
		if match == nil {
			match = &forecast.Stops[i]
		}
	}

	if match == nil {
		return nil, ErrArrivalNotFound
	}
	if matches > 1 {
		c.logger.Debug().
			Int("line", found.Code).
			Int("stop", stopCode).
			Int("matches", matches).
			Msg("Stop listed more than once on line, using first entry")
	}

	return &LineArrival{Line: found, Arrival: *match}, nil
}
