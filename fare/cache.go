package fare

import (
	"github.com/bluele/gcache"

	"github.com/mumbai-atvm/atvm/models"
)

// quoteKey identifies a trip request by station identity only; positions
// supplied by the caller are ignored because the catalog is authoritative.
type quoteKey struct {
	srcLine, srcName string
	dstLine, dstName string
	adults, children int
	journey          models.JourneyType
	class            models.TicketClass
}

func keyFor(req models.TripRequest) quoteKey {
	return quoteKey{
		srcLine:  string(req.Source.Line),
		srcName:  req.Source.Name,
		dstLine:  string(req.Destination.Line),
		dstName:  req.Destination.Name,
		adults:   req.Adults,
		children: req.Children,
		journey:  req.JourneyType,
		class:    req.TicketClass,
	}
}

// CachedEngine memoizes quotes in a bounded LRU. Errors are not cached.
type CachedEngine struct {
	*Engine
	quotes gcache.Cache
}

// NewCachedEngine wraps engine with an LRU holding up to size quotes
func NewCachedEngine(engine *Engine, size int) *CachedEngine {
	if size <= 0 {
		size = 1024
	}
	return &CachedEngine{
		Engine: engine,
		quotes: gcache.New(size).LRU().Build(),
	}
}

// ComputeFare returns a memoized quote or computes and stores a new one
func (c *CachedEngine) ComputeFare(req models.TripRequest) (models.FareQuote, error) {
	key := keyFor(req)
	if v, err := c.quotes.Get(key); err == nil {
		return cloneQuote(v.(models.FareQuote)), nil
	}

	quote, err := c.Engine.ComputeFare(req)
	if err != nil {
		return models.FareQuote{}, err
	}
	_ = c.quotes.Set(key, cloneQuote(quote))
	return quote, nil
}

// Len returns the number of memoized quotes
func (c *CachedEngine) Len() int {
	return c.quotes.Len(false)
}

// HitRate returns the fraction of lookups served from the cache
func (c *CachedEngine) HitRate() float64 {
	return c.quotes.HitRate()
}

// cloneQuote copies the Via slice so callers cannot mutate cached entries
func cloneQuote(q models.FareQuote) models.FareQuote {
	if q.Via != nil {
		via := make([]string, len(q.Via))
		copy(via, q.Via)
		q.Via = via
	}
	return q
}
