package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-ampgen/pkg/head"
	"github.com/goliatone/go-ampgen/pkg/styles"
)

// requestScope installs a fresh style registry and head collector on every
// request. Render code downstream finds them through the context, which is
// what keeps one request's styles from bleeding into another's.
func requestScope(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := styles.NewContext(r.Context(), styles.NewRegistry())
	ctx = head.NewContext(ctx, head.New())
	next.ServeHTTP(w, r.WithContext(ctx))
}

// responseHeaders sets the headers every page response carries.
func responseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	next.ServeHTTP(w, r)
}

// statusRecorder captures the status code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLog emits one structured line per request.
func requestLog(logger zerolog.Logger) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		start := time.Now()
		id := requestID()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		rec.Header().Set("X-Request-Id", id)
		next.ServeHTTP(rec, r)

		logger.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func requestID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf[:])
}
