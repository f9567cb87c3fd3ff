package http

import (
	"encoding/json"
	"net/http"
)

// ListResponse is the envelope for collection endpoints. Count mirrors
// len(Data) so clients do not have to count themselves.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed: the status line is already on the wire, so there is nothing
// useful left to send the client.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteCreated responds 201 with the stored representation of data.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteList responds 200 with data wrapped in a ListResponse. A nil slice
// renders as an empty array, never null.
func WriteList[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	WriteJSON(w, http.StatusOK, ListResponse[T]{Data: data, Count: len(data)})
}
