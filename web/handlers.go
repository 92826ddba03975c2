package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/oldman-gg/Sleeper-Sheets/controller"
	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/unrolled/render"
)

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "sleeper sheets")
	}
}

func statusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, ctrl.LastSync())
	}
}

func recordsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := ctrl.LeagueRecord()
		if record == (model.LeagueRecord{}) {
			render.JSON(w, http.StatusNotFound, map[string]string{"error": "no league record computed yet"})
			return
		}
		render.JSON(w, http.StatusOK, record)
	}
}

// forceSyncHandler kicks off a sync outside the periodic schedule. The sync
// can outlive the request timeout, so it runs in the background and the
// handler answers right away.
func forceSyncHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctrl.LastSync().Running() {
			render.JSON(w, http.StatusConflict, map[string]string{"error": controller.ErrSyncInProgress.Error()})
			return
		}

		go func() {
			// Detached from the request context so the sync is not cut off
			// when the response is sent.
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
			defer cancel()

			if err := ctrl.SyncAll(ctx); err != nil && !errors.Is(err, controller.ErrSyncInProgress) {
				log.Printf("forced sync failed: %v", err)
			}
		}()

		render.JSON(w, http.StatusAccepted, map[string]string{"status": "sync started"})
	}
}
