package http

import (
	"net/http"

	"github.com/ddanilova/organizer-sync/internal/utils"
)

// health reports server liveness. The endpoint is public: load balancers and
// dashboards probe it without credentials.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := h.services.HealthService.Health(r.Context())
	utils.WriteJSON(w, status, http.StatusOK)
}
