package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mumbai-atvm/atvm/models"
	"github.com/mumbai-atvm/atvm/numerals"
)

// FareCalculator prices trip requests
type FareCalculator interface {
	ComputeFare(req models.TripRequest) (models.FareQuote, error)
}

// StationRef names a station by line and canonical name
type StationRef struct {
	Line string `json:"line" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// FareRequest is the JSON body of POST /api/fares and POST /api/tickets.
// Adults defaults to 1, journeyType to single and ticketClass to second.
type FareRequest struct {
	Source      StationRef `json:"source"`
	Destination StationRef `json:"destination"`
	Adults      *int       `json:"adults" validate:"omitempty,gte=0,max=10"`
	Children    int        `json:"children" validate:"gte=0,max=10"`
	JourneyType string     `json:"journeyType"`
	TicketClass string     `json:"ticketClass"`
}

// FareResponse is the JSON response structure for POST /api/fares
type FareResponse struct {
	Quote     models.FareQuote `json:"quote"`
	FareLocal string           `json:"fareLocal"` // FareAmount in Devanagari digits
}

// FareHandler handles HTTP requests for fare quotes
type FareHandler struct {
	calc     FareCalculator
	validate *validator.Validate
}

// NewFareHandler creates a new handler with the given calculator
func NewFareHandler(calc FareCalculator) *FareHandler {
	return &FareHandler{calc: calc, validate: validator.New()}
}

// ComputeFare handles POST /api/fares
func (h *FareHandler) ComputeFare(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.quote(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, FareResponse{
		Quote:     quote,
		FareLocal: numerals.Devanagari(quote.FareAmount),
	})
}

// quote decodes, validates and prices the request body. On failure it has
// already written the error response.
func (h *FareHandler) quote(w http.ResponseWriter, r *http.Request) (models.FareQuote, bool) {
	var body FareRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", map[string]interface{}{
			"internal": err.Error(),
		})
		return models.FareQuote{}, false
	}

	req, err := h.toTripRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid fare request", map[string]interface{}{
			"reason": err.Error(),
		})
		return models.FareQuote{}, false
	}

	quote, err := h.calc.ComputeFare(req)
	if err != nil {
		var invalid *models.InvalidRequestError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, "Invalid fare request", map[string]interface{}{
				"reason": invalid.Error(),
			})
			return models.FareQuote{}, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute fare", map[string]interface{}{
			"internal": err.Error(),
		})
		return models.FareQuote{}, false
	}

	if quote.Approximate {
		log.Printf("Warning: no hub path between %s and %s, fare for %s -> %s is approximate",
			quote.Source.Line, quote.Destination.Line, quote.Source.Name, quote.Destination.Name)
	}
	return quote, true
}

func (h *FareHandler) toTripRequest(body FareRequest) (models.TripRequest, error) {
	if err := h.validate.Struct(body); err != nil {
		return models.TripRequest{}, err
	}

	adults := 1
	if body.Adults != nil {
		adults = *body.Adults
	}

	journey := models.JourneySingle
	if body.JourneyType != "" {
		jt, err := models.ParseJourneyType(body.JourneyType)
		if err != nil {
			return models.TripRequest{}, err
		}
		journey = jt
	}

	class := models.ClassSecond
	if body.TicketClass != "" {
		tc, err := models.ParseTicketClass(body.TicketClass)
		if err != nil {
			return models.TripRequest{}, err
		}
		class = tc
	}

	return models.TripRequest{
		Source:      models.Station{Line: models.LineID(body.Source.Line), Name: body.Source.Name},
		Destination: models.Station{Line: models.LineID(body.Destination.Line), Name: body.Destination.Name},
		Adults:      adults,
		Children:    body.Children,
		JourneyType: journey,
		TicketClass: class,
	}, nil
}
