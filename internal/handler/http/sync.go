// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/utils"
	"github.com/ddanilova/organizer-sync/models"
)

func (h *Handler) syncAccounts(w http.ResponseWriter, r *http.Request) {
	handleSync(w, r, h.services.SyncService.SyncAccounts)
}

func (h *Handler) syncCategories(w http.ResponseWriter, r *http.Request) {
	handleSync(w, r, h.services.SyncService.SyncCategories)
}

func (h *Handler) syncReminders(w http.ResponseWriter, r *http.Request) {
	handleSync(w, r, h.services.SyncService.SyncReminders)
}

func (h *Handler) syncEvents(w http.ResponseWriter, r *http.Request) {
	handleSync(w, r, h.services.SyncService.SyncEvents)
}

// handleSync is the shared body of the four sync endpoints. Handler methods
// cannot be generic, so each endpoint passes its service method here and the
// compiler instantiates the decode/reconcile/respond pipeline per entity type.
func handleSync[R any](
	w http.ResponseWriter,
	r *http.Request,
	sync func(ctx context.Context, userID int64, req models.SyncRequest[R]) (models.SyncResponse[R], error),
) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "handleSync").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var syncRequest models.SyncRequest[R]
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "handleSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := sync(ctx, userID, syncRequest)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Int("changes", len(syncRequest.Changes)).
			Msg("error reconciling sync batch")
		http.Error(w, "error reconciling sync batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
