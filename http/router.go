package http

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type Handlers struct {
	Loan         *LoanHandler
	DebtStrategy *DebtStrategyHandler
}

// NewRouter registers every API route behind the rate limiter and request
// logging.
func NewRouter(h Handlers, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	routes := map[string]http.HandlerFunc{
		"/loan/calculate":  h.Loan.CalculateLoan,
		"/loan/history":    h.Loan.History,
		"/debts/normalize": h.DebtStrategy.Normalize,
		"/debts/plan":      h.DebtStrategy.Plan,
		"/debts/compare":   h.DebtStrategy.Compare,
	}
	for path, handler := range routes {
		mux.Handle(path, RateLimitMiddleware(limiter, handler))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
