package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/estatemap/internal/logger"
)

// requestIDHeader matches the header the backend client sends.
const requestIDHeader = "X-Request-ID"

// echoRequestID copies the request id assigned by middleware.RequestID onto
// the response so clients can correlate failures.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(requestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests writes one debug line per request through the verbose logger.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debug("http: %s %s -> %d (%d bytes, %s) [%s]",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
			time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}
