package olhovivo

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineForecastJSON(stops ...string) string {
	body := `{"hr":"20:09","ps":[`
	for i, s := range stops {
		if i > 0 {
			body += ","
		}
		body += s
	}
	return body + `]}`
}

func TestArrivalAt(t *testing.T) {
	const (
		firstEntry  = `{"cp":340015329,"np":"AFONSO BRAZ B/C1","py":-23.59,"px":-46.67,"vs":[{"p":"11436","t":"23:26","a":false,"ta":"2017-05-07T23:18:37Z","py":-23.5,"px":-46.6}]}`
		secondEntry = `{"cp":340015329,"np":"AFONSO BRAZ B/C1","py":-23.59,"px":-46.67,"vs":[{"p":"11437","t":"23:40","a":true,"ta":"2017-05-07T23:18:37Z","py":-23.5,"px":-46.6}]}`
		otherStop   = `{"cp":700016623,"np":"ANA CINTRA B/C","py":-23.53,"px":-46.64,"vs":[]}`
	)

	tests := []struct {
		name       string
		line, stop string
		lines      string
		stops      string
		forecast   string
		wantErr    error
		wantPrefix string
		wantCalls  int
	}{
		{
			name:      "empty line",
			line:      "",
			stop:      "Afonso",
			wantErr:   ErrEmptyArgument,
			wantCalls: 0,
		},
		{
			name:      "empty stop",
			line:      "8000",
			stop:      "",
			wantErr:   ErrEmptyArgument,
			wantCalls: 0,
		},
		{
			name:      "unknown line",
			line:      "nope",
			stop:      "Afonso",
			lines:     `[]`,
			wantErr:   ErrInvalidLookup,
			wantCalls: 1,
		},
		{
			name:      "unknown stop",
			line:      "8000",
			stop:      "nope",
			lines:     linesJSON,
			stops:     `[]`,
			wantErr:   ErrInvalidLookup,
			wantCalls: 2,
		},
		{
			name:      "line does not serve stop",
			line:      "8000",
			stop:      "Afonso",
			lines:     linesJSON,
			stops:     stopsJSON,
			forecast:  lineForecastJSON(otherStop),
			wantErr:   ErrArrivalNotFound,
			wantCalls: 3,
		},
		{
			name:       "found",
			line:       "8000",
			stop:       "Afonso",
			lines:      linesJSON,
			stops:      stopsJSON,
			forecast:   lineForecastJSON(otherStop, firstEntry),
			wantPrefix: "11436",
			wantCalls:  3,
		},
		{
			name:       "stop listed twice uses first entry",
			line:       "8000",
			stop:       "Afonso",
			lines:      linesJSON,
			stops:      stopsJSON,
			forecast:   lineForecastJSON(firstEntry, otherStop, secondEntry),
			wantPrefix: "11436",
			wantCalls:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t)
			if tt.lines != "" {
				api.respond("Linha/Buscar", tt.lines)
			}
			if tt.stops != "" {
				api.respond("Parada/Buscar", tt.stops)
			}
			if tt.forecast != "" {
				api.respond("Previsao/Linha", tt.forecast)
			}
			client := newTestClient(t, api)

			arrival, err := client.ArrivalAt(context.Background(), tt.line, tt.stop)
			assert.Equal(t, tt.wantCalls, api.totalCalls())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, arrival)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1273, arrival.Line.Code)
			assert.Equal(t, 340015329, arrival.Arrival.Code)
			require.NotEmpty(t, arrival.Arrival.Vehicles)
			assert.Equal(t, tt.wantPrefix, arrival.Arrival.Vehicles[0].Prefix.String())
			assert.Equal(t, "1273", api.lastQuery("Previsao/Linha").Get("codigoLinha"))
		})
	}
}

func TestArrivalAtRequiresAuthentication(t *testing.T) {
	api := newFakeAPI(t)

	client, err := newClient(api.config(), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.ArrivalAt(context.Background(), "8000", "Afonso")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, api.totalCalls())
}
