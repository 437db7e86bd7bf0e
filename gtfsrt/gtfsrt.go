// Package gtfsrt converts Olho Vivo vehicle positions into a GTFS-realtime feed.
package gtfsrt

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/s0up4200/olhovivo/olhovivo"
)

// Version is the GTFS-realtime specification version of generated feeds
const Version = "2.0"

// FromPositions builds a full-dataset VehiclePositions feed stamped with at.
// Lines map to routes by their sign (e.g. "8000-10"), which matches the route_id
// of the SPTrans static GTFS.
func FromPositions(positions *olhovivo.Positions, at time.Time) *gtfsrtpb.FeedMessage {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(Version),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(at.Unix())),
		},
	}
	if positions == nil {
		return fm
	}

	for _, line := range positions.Lines {
		trip := &gtfsrtpb.TripDescriptor{
			RouteId: proto.String(line.Sign),
		}
		if dir, ok := directionID(line.Direction); ok {
			trip.DirectionId = proto.Uint32(dir)
		}

		for _, v := range line.Vehicles {
			fm.Entity = append(fm.Entity, vehicleEntity(line, trip, v))
		}
	}

	return fm
}

func vehicleEntity(line olhovivo.LinePositions, trip *gtfsrtpb.TripDescriptor, v olhovivo.Vehicle) *gtfsrtpb.FeedEntity {
	prefix := v.Prefix.String()

	vp := &gtfsrtpb.VehiclePosition{
		Trip: proto.Clone(trip).(*gtfsrtpb.TripDescriptor),
		Vehicle: &gtfsrtpb.VehicleDescriptor{
			Id:    proto.String(prefix),
			Label: proto.String(line.Sign),
		},
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(float32(v.Latitude)),
			Longitude: proto.Float32(float32(v.Longitude)),
		},
	}
	if ts := v.Timestamp(); !ts.IsZero() {
		vp.Timestamp = proto.Uint64(uint64(ts.Unix()))
	}

	return &gtfsrtpb.FeedEntity{
		Id:      proto.String(strconv.Itoa(line.Code) + ":" + prefix),
		Vehicle: vp,
	}
}

// directionID maps Olho Vivo directions (1, 2) onto GTFS direction_id (0, 1)
func directionID(d olhovivo.Direction) (uint32, bool) {
	switch d {
	case olhovivo.DirectionPrimaryToSecondary:
		return 0, true
	case olhovivo.DirectionSecondaryToPrimary:
		return 1, true
	default:
		return 0, false
	}
}

// Marshal encodes the feed in protobuf wire format
func Marshal(fm *gtfsrtpb.FeedMessage) ([]byte, error) {
	b, err := proto.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a protobuf feed
func Unmarshal(b []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed: %w", err)
	}
	return &fm, nil
}

// WriteFile marshals the feed and writes it to path
func WriteFile(path string, fm *gtfsrtpb.FeedMessage) error {
	b, err := Marshal(fm)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
