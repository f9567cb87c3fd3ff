package http

import "net/http"

// HandleRoot reports that the API is up.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Customer Service API running",
	})
}
