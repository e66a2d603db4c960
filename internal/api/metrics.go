package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas Prometheus da API pública
var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_http_requests_total",
		Help: "Total de requisições HTTP por método e status",
	}, []string{"method", "status"})

	predictionsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "api_predictions_served_total",
		Help: "Total de previsões calculadas pelo /predict",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, predictionsServed)
}

// countRequests contabiliza cada requisição com o status final.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
