package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mumbai-atvm/atvm/models"
	"github.com/mumbai-atvm/atvm/numerals"
)

// TicketHandler issues printable tickets for fare quotes. Tickets are not stored.
type TicketHandler struct {
	fares *FareHandler
	now   func() time.Time
	newID func() uuid.UUID
}

// NewTicketHandler creates a ticket handler that prices through calc
func NewTicketHandler(calc FareCalculator) *TicketHandler {
	return &TicketHandler{
		fares: NewFareHandler(calc),
		now:   time.Now,
		newID: uuid.New,
	}
}

// IssueTicket handles POST /api/tickets
func (h *TicketHandler) IssueTicket(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.fares.quote(w, r)
	if !ok {
		return
	}

	ticket := models.Ticket{
		ID:        h.newID(),
		IssuedAt:  h.now().UTC(),
		Quote:     quote,
		FareLocal: numerals.Devanagari(quote.FareAmount),
	}
	ticket.Text = RenderTicket(ticket)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusCreated, ticket)
}

// RenderTicket formats a ticket as plain text for printing or sharing
func RenderTicket(t models.Ticket) string {
	q := t.Quote
	var b strings.Builder

	b.WriteString("MUMBAI SUBURBAN RAILWAY\n")
	fmt.Fprintf(&b, "Ticket   %s\n", strings.ToUpper(t.ID.String()[:8]))
	fmt.Fprintf(&b, "From     %s (%s) [%s]\n", q.Source.Name, q.Source.LocalLabel, q.Source.Line)
	fmt.Fprintf(&b, "To       %s (%s) [%s]\n", q.Destination.Name, q.Destination.LocalLabel, q.Destination.Line)
	if len(q.Via) > 0 {
		fmt.Fprintf(&b, "Via      %s\n", strings.Join(q.Via, ", "))
	}
	fmt.Fprintf(&b, "Adult    %d   Child %d\n", q.Adults, q.Children)
	fmt.Fprintf(&b, "Class    %s   %s\n", strings.ToUpper(string(q.TicketClass)), strings.ToUpper(string(q.JourneyType)))
	fmt.Fprintf(&b, "Distance %.1f km", q.DistanceKm)
	if q.Approximate {
		b.WriteString(" (approx.)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Fare     Rs %d (%s)\n", q.FareAmount, t.FareLocal)
	fmt.Fprintf(&b, "Issued   %s\n", t.IssuedAt.Format("02-01-2006 15:04"))

	return b.String()
}
