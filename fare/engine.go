// Package fare prices suburban journeys: it resolves a route distance across
// lines joined at interchange hubs, maps the distance to a fare stage and
// scales it by passengers, class and journey type.
//
// Engine is pure. It reads only the immutable network and fare table and may
// be called concurrently without synchronization.
package fare

import (
	"errors"
	"math"

	"github.com/mumbai-atvm/atvm/models"
	"github.com/mumbai-atvm/atvm/network"
)

// FirstClassMultiplier scales a second-class subtotal to first class
const FirstClassMultiplier = 10

// ReturnMultiplier scales a single-journey subtotal to a return journey
const ReturnMultiplier = 2

// Route is a resolved itinerary distance between two stations
type Route struct {
	DistanceKm float64
	Hubs       []models.Hub // interchanges crossed, in travel order
	// Approximate is set when no hub path joins the two lines
	Approximate bool
}

// Via returns the interchange station names along the route
func (r Route) Via() []string {
	if len(r.Hubs) == 0 {
		return nil
	}
	names := make([]string, len(r.Hubs))
	for i, h := range r.Hubs {
		names[i] = h.Station
	}
	return names
}

// Engine computes fares over a network and fare table
type Engine struct {
	network *network.Network
	table   *Table
}

// NewEngine creates an engine over an immutable network and fare table
func NewEngine(net *network.Network, table *Table) *Engine {
	return &Engine{network: net, table: table}
}

// Network returns the network the engine routes over
func (e *Engine) Network() *network.Network {
	return e.network
}

// ComputeFare prices a trip request. It fails with *models.InvalidRequestError
// for an invalid passenger mix or a station missing from the network, and
// otherwise always returns a complete quote.
func (e *Engine) ComputeFare(req models.TripRequest) (models.FareQuote, error) {
	if err := req.Validate(); err != nil {
		return models.FareQuote{}, err
	}

	src, err := e.resolve(req.Source, "source")
	if err != nil {
		return models.FareQuote{}, err
	}
	dst, err := e.resolve(req.Destination, "destination")
	if err != nil {
		return models.FareQuote{}, err
	}

	route := e.Route(src, dst)
	baseFare := e.table.Lookup(route.DistanceKm)
	childFare := halfFare(baseFare)

	amount := baseFare*req.Adults + childFare*req.Children
	if req.TicketClass == models.ClassFirst {
		amount *= FirstClassMultiplier
	}
	if req.JourneyType == models.JourneyReturn {
		amount *= ReturnMultiplier
	}

	return models.FareQuote{
		Source:      src,
		Destination: dst,
		DistanceKm:  route.DistanceKm,
		BaseFare:    baseFare,
		ChildFare:   childFare,
		Adults:      req.Adults,
		Children:    req.Children,
		JourneyType: req.JourneyType,
		TicketClass: req.TicketClass,
		FareAmount:  amount,
		Via:         route.Via(),
		Approximate: route.Approximate,
	}, nil
}

// resolve swaps a caller-supplied station for its catalog entry
func (e *Engine) resolve(s models.Station, role string) (models.Station, error) {
	found, err := e.network.Station(s.Line, s.Name)
	if err != nil {
		var unknownLine *models.UnknownLineError
		if errors.As(err, &unknownLine) {
			return models.Station{}, &models.InvalidRequestError{Reason: "unknown " + role + " line", Err: err}
		}
		return models.Station{}, &models.InvalidRequestError{Reason: "unknown " + role + " station", Err: err}
	}
	return found, nil
}

// Route resolves the itinerary distance between two catalog stations.
//
// Stations on the same line are measured directly. Otherwise the route goes
// through the hub joining both lines, or failing that through the shortest
// path over one intermediate line that has hubs to both. When no such path
// exists the distance falls back to the sum of both markers and the route is
// flagged Approximate.
func (e *Engine) Route(src, dst models.Station) Route {
	if network.SameLine(src, dst) {
		return Route{DistanceKm: roundKm(math.Abs(src.PositionKm - dst.PositionKm))}
	}

	if hub, ok := e.network.HubBetween(src.Line, dst.Line); ok {
		d := math.Abs(src.PositionKm-hub.PositionA) + math.Abs(dst.PositionKm-hub.PositionB)
		return Route{DistanceKm: roundKm(d), Hubs: []models.Hub{hub}}
	}

	best := Route{DistanceKm: math.Inf(1)}
	for _, via := range e.network.LineIDs() {
		if via == src.Line || via == dst.Line {
			continue
		}
		in, ok := e.network.HubBetween(src.Line, via)
		if !ok {
			continue
		}
		out, ok := e.network.HubBetween(via, dst.Line)
		if !ok {
			continue
		}

		d := math.Abs(src.PositionKm-in.PositionA) +
			math.Abs(in.PositionB-out.PositionA) +
			math.Abs(out.PositionB-dst.PositionKm)
		d = roundKm(d)
		if d < best.DistanceKm {
			best = Route{DistanceKm: d, Hubs: []models.Hub{in, out}}
		}
	}
	if !math.IsInf(best.DistanceKm, 1) {
		return best
	}

	// TODO: replace with a multi-hop search once a line pair needs more than one intermediate line
	return Route{
		DistanceKm:  roundKm(src.PositionKm + dst.PositionKm),
		Approximate: true,
	}
}

// halfFare is the child fare: half the adult fare, rounded up
func halfFare(fare int) int {
	return (fare + 1) / 2
}

// roundKm trims floating-point noise from sums of 0.1 km markers so that
// stage thresholds compare exactly
func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
