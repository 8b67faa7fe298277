package handlers

import "net/http"

// RegisterRoutes mounts the set routes on mux. Writes go through syncUser so
// token holders get a profile before their first set is stored.
func (h *SetHandler) RegisterRoutes(mux *http.ServeMux, syncUser func(http.HandlerFunc) http.HandlerFunc) {
	if syncUser == nil {
		syncUser = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	mux.HandleFunc("GET /health", Health)

	// Sets
	mux.HandleFunc("POST /api/sets/create", syncUser(h.CreateSet))
	mux.HandleFunc("PUT /api/sets/update/{id}", syncUser(h.UpdateSet))
	mux.HandleFunc("GET /api/sets/{id}", h.GetSet)
	mux.HandleFunc("DELETE /api/sets/{id}", syncUser(h.DeleteSet))
	mux.HandleFunc("POST /api/sets/save", syncUser(h.SaveSet))
	mux.HandleFunc("GET /api/sets", h.GetSetsByClassCode)

	// User sets
	mux.HandleFunc("GET /api/sets/created/{userId}", h.GetCreatedSets)
	mux.HandleFunc("GET /api/sets/saved/{userId}", h.GetSavedSets)

	// Class codes
	mux.HandleFunc("GET /api/class-codes", h.SuggestClassCodes)
}
