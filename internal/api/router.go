package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/reellords/studio-league/backend/internal/api/handlers"
	"github.com/reellords/studio-league/backend/pkg/logger"
	"github.com/reellords/studio-league/backend/pkg/redis"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	scoringHandler *handlers.ScoringHandler,
	rosterHandler *handlers.RosterHandler,
	awardsHandler *handlers.AwardsHandler,
	limiter *redis.RateLimiter,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Scoring
	api.HandleFunc("/seasons/{seasonID}/weeks/{weekIndex}/compute", scoringHandler.ComputeWeek).Methods("POST")
	api.HandleFunc("/seasons/{seasonID}/weeks/{weekIndex}/totals", scoringHandler.GetTotals).Methods("GET")
	api.HandleFunc("/seasons/{seasonID}/weeks/{weekIndex}/ranking", scoringHandler.GetRanking).Methods("GET")
	api.HandleFunc("/seasons/{seasonID}/standings", scoringHandler.GetStandings).Methods("GET")

	// Roster
	api.HandleFunc("/seasons/{seasonID}/ownerships", rosterHandler.Acquire).Methods("POST")
	api.HandleFunc("/seasons/{seasonID}/ownerships", rosterHandler.GetRoster).Methods("GET")
	api.HandleFunc("/ownerships/{ownershipID}/retire", rosterHandler.Retire).Methods("POST")

	// Awards
	api.HandleFunc("/seasons/{seasonID}/awards", awardsHandler.Apply).Methods("POST")
	api.HandleFunc("/seasons/{seasonID}/awards", awardsHandler.GetBonuses).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	if limiter != nil {
		api.Use(rateLimitMiddleware(limiter, log))
	}

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "studio-league-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware throttles per client IP using the Redis sliding window
func rateLimitMiddleware(limiter *redis.RateLimiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := redis.APIRateLimit
			cfg.Key = fmt.Sprintf("%s:%s", cfg.Key, clientIP(r))

			allowed, remaining, err := limiter.Allow(r.Context(), cfg)
			if err != nil {
				// Redis trouble should not take the API down
				log.WithError(err).Warn("Rate limit check failed, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
