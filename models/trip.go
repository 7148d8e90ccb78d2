package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JourneyType is either a single or a return journey
type JourneyType string

const (
	JourneySingle JourneyType = "single"
	JourneyReturn JourneyType = "return"
)

// ParseJourneyType accepts "single" or "return" in any case
func ParseJourneyType(s string) (JourneyType, error) {
	switch JourneyType(strings.ToLower(strings.TrimSpace(s))) {
	case JourneySingle:
		return JourneySingle, nil
	case JourneyReturn:
		return JourneyReturn, nil
	}
	return "", fmt.Errorf("unknown journey type %q", s)
}

// TicketClass is the fare tier
type TicketClass string

const (
	ClassSecond TicketClass = "second"
	ClassFirst  TicketClass = "first"
)

// ParseTicketClass accepts "second" or "first" in any case
func ParseTicketClass(s string) (TicketClass, error) {
	switch TicketClass(strings.ToLower(strings.TrimSpace(s))) {
	case ClassSecond:
		return ClassSecond, nil
	case ClassFirst:
		return ClassFirst, nil
	}
	return "", fmt.Errorf("unknown ticket class %q", s)
}

// MaxPassengers caps adults and children separately on one ticket
const MaxPassengers = 10

// TripRequest is a single fare query. It is built per request and never shared.
type TripRequest struct {
	Source      Station
	Destination Station
	Adults      int
	Children    int
	JourneyType JourneyType
	TicketClass TicketClass
}

// Validate enforces the passenger-count invariant and the enumerated fields
func (r *TripRequest) Validate() error {
	if r.Adults < 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("adults must not be negative, got %d", r.Adults)}
	}
	if r.Children < 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("children must not be negative, got %d", r.Children)}
	}
	if r.Adults > MaxPassengers || r.Children > MaxPassengers {
		return &InvalidRequestError{Reason: fmt.Sprintf("at most %d adults and %d children per ticket", MaxPassengers, MaxPassengers)}
	}
	if r.Adults+r.Children < 1 {
		return &InvalidRequestError{Reason: "at least one passenger is required"}
	}
	if r.JourneyType != JourneySingle && r.JourneyType != JourneyReturn {
		return &InvalidRequestError{Reason: fmt.Sprintf("unknown journey type %q", r.JourneyType)}
	}
	if r.TicketClass != ClassSecond && r.TicketClass != ClassFirst {
		return &InvalidRequestError{Reason: fmt.Sprintf("unknown ticket class %q", r.TicketClass)}
	}
	return nil
}

// FareQuote is the result of a fare computation
type FareQuote struct {
	Source      Station     `json:"source"`
	Destination Station     `json:"destination"`
	DistanceKm  float64     `json:"distanceKm"`
	BaseFare    int         `json:"baseFare"`  // Second-class adult single fare for the stage
	ChildFare   int         `json:"childFare"` // Half of BaseFare, rounded up
	Adults      int         `json:"adults"`
	Children    int         `json:"children"`
	JourneyType JourneyType `json:"journeyType"`
	TicketClass TicketClass `json:"ticketClass"`
	FareAmount  int         `json:"fareAmount"`

	// Interchange stations crossed, in travel order
	Via []string `json:"via,omitempty"`

	// Set when no hub path joins the two lines and the distance is only an estimate
	Approximate bool `json:"approximate"`
}

// Ticket is an issued, printable fare quote
type Ticket struct {
	ID        uuid.UUID `json:"ticketId"`
	IssuedAt  time.Time `json:"issuedAt"`
	Quote     FareQuote `json:"quote"`
	FareLocal string    `json:"fareLocal"` // FareAmount in Devanagari digits
	Text      string    `json:"text"`
}
