package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Router serves /metrics in Prometheus format and a /health probe.
func (r *Recorder) Router() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", r.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")
	return router
}

// NewServer builds the standalone metrics server; the caller starts it.
func (r *Recorder) NewServer(port int) *http.Server {
	return &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      r.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
