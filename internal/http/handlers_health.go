package httpx

import (
	"io"
	"net/http"
)

const healthResponse = `{"status":"ok","service":"bankadmin-api"}`

// healthHandler answers readiness/liveness probes. It runs outside the
// admin gate and touches no backing store.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Client connection is gone; nothing more to do.
		return
	}
}
