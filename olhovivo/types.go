package olhovivo

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Line represents a bus line. Each direction of a route has its own code.
type Line struct {
	Code              int       `json:"cl"`
	Circular          bool      `json:"lc"`
	SignPrefix        string    `json:"lt"`
	SignSuffix        int       `json:"tl"`
	Direction         Direction `json:"sl"`
	PrimaryTerminal   string    `json:"tp"`
	SecondaryTerminal string    `json:"ts"`
}

// Sign returns the full line sign as shown on the bus, e.g. "8000-10"
func (l Line) Sign() string {
	return l.SignPrefix + "-" + strconv.Itoa(l.SignSuffix)
}

// Destination returns the terminal the line heads to in its direction
func (l Line) Destination() string {
	if l.Direction == DirectionSecondaryToPrimary {
		return l.PrimaryTerminal
	}
	return l.SecondaryTerminal
}

// Stop represents a bus stop
type Stop struct {
	Code      int     `json:"cp"`
	Name      string  `json:"np"`
	Address   string  `json:"ed"`
	Latitude  float64 `json:"py"`
	Longitude float64 `json:"px"`
}

// Lane represents a bus corridor
type Lane struct {
	Code int    `json:"cc"`
	Name string `json:"nc"`
}

// Companies lists the operators grouped by operation area
type Companies struct {
	Time  string        `json:"hr"`
	Areas []CompanyArea `json:"e"`
}

// CompanyArea groups the companies operating in one area
type CompanyArea struct {
	Area      int       `json:"a"`
	Companies []Company `json:"e"`
}

// Company is a bus operator
type Company struct {
	Area int    `json:"a"`
	Code int    `json:"c"`
	Name string `json:"n"`
}

// Vehicle is a bus position, optionally with a predicted arrival time
type Vehicle struct {
	Prefix     FlexString      `json:"p"`
	Arrival    string          `json:"t,omitempty"`
	Accessible bool            `json:"a"`
	UpdatedAt  string          `json:"ta"`
	Latitude   float64         `json:"py"`
	Longitude  float64         `json:"px"`
	SV         json.RawMessage `json:"sv,omitempty"`
	IS         json.RawMessage `json:"is,omitempty"`
}

// Timestamp parses UpdatedAt, returning the zero time if it is missing or malformed
func (v Vehicle) Timestamp() time.Time {
	t, err := time.Parse(time.RFC3339, v.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LinePositions is a line together with its located vehicles
type LinePositions struct {
	Sign         string    `json:"c"`
	Code         int       `json:"cl"`
	Direction    Direction `json:"sl"`
	Destination  string    `json:"lt0"`
	Origin       string    `json:"lt1"`
	VehicleCount int       `json:"qv"`
	Vehicles     []Vehicle `json:"vs"`
}

// Positions is the answer of the Posicao and Posicao/Garagem endpoints
type Positions struct {
	Time  string          `json:"hr"`
	Lines []LinePositions `json:"l"`
}

// LineVehicles is the answer of the Posicao/Linha endpoint
type LineVehicles struct {
	Time     string    `json:"hr"`
	Vehicles []Vehicle `json:"vs"`
}

// ForecastStop is a stop with the lines expected to pass by it
type ForecastStop struct {
	Code      int             `json:"cp"`
	Name      string          `json:"np"`
	Latitude  float64         `json:"py"`
	Longitude float64         `json:"px"`
	Lines     []LinePositions `json:"l"`
}

// StopForecast is the answer of the Previsao and Previsao/Parada endpoints.
// Stop is nil when the API has no forecast for the stop.
type StopForecast struct {
	Time string        `json:"hr"`
	Stop *ForecastStop `json:"p"`
}

// StopArrivals is a stop of a line with the vehicles expected there
type StopArrivals struct {
	Code      int       `json:"cp"`
	Name      string    `json:"np"`
	Latitude  float64   `json:"py"`
	Longitude float64   `json:"px"`
	Vehicles  []Vehicle `json:"vs"`
}

// LineForecast is the answer of the Previsao/Linha endpoint
type LineForecast struct {
	Time  string         `json:"hr"`
	Stops []StopArrivals `json:"ps"`
}

// LineArrival combines a line with its arrival forecast at one stop
type LineArrival struct {
	Line    Line         `json:"linha"`
	Arrival StopArrivals `json:"chegada"`
}

// FlexString accepts both JSON strings and numbers. The API is not consistent
// about vehicle prefixes.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the value as a string
func (f FlexString) String() string {
	return string(f)
}
