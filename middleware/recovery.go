// Package middleware holds HTTP middleware that chi's own set does not cover.
package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type panicResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// Recovery turns a handler panic into the JSON error envelope with status 500.
// Mount it after chimw.RequestID so the response carries the request ID.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				// net/http suppresses logging for aborted responses
				panic(rvr)
			}

			reqID := chimw.GetReqID(r.Context())
			log.Printf("Panic recovered [%s] %s %s: %v\n%s", reqID, r.Method, r.URL.Path, rvr, debug.Stack())

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(panicResponse{Error: "Internal server error", RequestID: reqID})
		}()
		next.ServeHTTP(w, r)
	})
}
