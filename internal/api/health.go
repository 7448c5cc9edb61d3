package api

import (
	"context"
	"log"
	"net/http"
	"time"
)

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	status, dbStatus, code := "ok", "up", http.StatusOK
	if a.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := a.ping(ctx); err != nil {
			log.Printf("health: database ping: %v", err)
			status, dbStatus, code = "degraded", "down", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, Response{
		Success: code == http.StatusOK,
		Data: map[string]any{
			"status":    status,
			"database":  dbStatus,
			"timestamp": time.Now().UTC(),
		},
	})
}
