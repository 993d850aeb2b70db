package http

import (
	"context"
	"net/http"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/utils"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, h.services.EntityService.ListAccounts)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, h.services.EntityService.ListCategories)
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, h.services.EntityService.ListReminders)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, h.services.EntityService.ListEvents)
}

// handleList serves the read-only listing endpoints: live (non-deleted)
// records of one entity type owned by the authenticated user.
func handleList[R any](
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID int64) ([]R, error),
) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "handleList").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	records, err := list(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing records")
		http.Error(w, "error listing records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}
