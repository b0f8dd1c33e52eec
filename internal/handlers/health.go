package handlers

import "net/http"

// Health — liveness-проба без авторизации.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
