package health

import (
	"encoding/json"
	"net/http"
)

// Handler reports process liveness. There are no hard dependencies to probe;
// the consent engine degrades rather than fails when collaborators are absent.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
