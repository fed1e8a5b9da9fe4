package main

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestLogger logs one line per request after it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// securityHeaders sets the headers every page and API response carries.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// formLimiter throttles form submissions with a single server-wide token
// bucket. Rejected requests get 429 and a Retry-After hint.
func formLimiter(perMin, burst int) func(http.Handler) http.Handler {
	if perMin <= 0 {
		perMin = 10
	}
	if burst <= 0 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := lim.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				zap.L().Warn("form submission throttled",
					zap.String("path", r.URL.Path),
					zap.Duration("retry_after", delay),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "Too many submissions. Please wait a moment and try again.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
