// README: Google Maps directions client for delivery distances.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DrivingDistanceKm returns the road distance in kilometres between two
// coordinate pairs, assuming driving mode. Used for vehicle delivery
// charges when a car has to be brought to the pickup branch.
func (s *RouteService) DrivingDistanceKm(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", fromLat, fromLng),
		Destination: fmt.Sprintf("%f,%f", toLat, toLng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found")
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / 1000.0, nil
}
