package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/classcodes"
	"github.com/andrewpaige1/fliply-api/models"
	"github.com/andrewpaige1/fliply-api/utils"
)

type setRequest struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ClassCode   string             `json:"classCode"`
	Description string             `json:"description"`
	Flashcards  []models.Flashcard `json:"flashcards"`
	IsPublic    bool               `json:"isPublic"`
	UserID      string             `json:"userId"`
}

func (req setRequest) toModel() *models.FlashcardSet {
	return &models.FlashcardSet{
		ID:          req.ID,
		Title:       req.Title,
		ClassCode:   req.ClassCode,
		Description: req.Description,
		Flashcards:  req.Flashcards,
		IsPublic:    req.IsPublic,
		UserID:      req.UserID,
	}
}

// POST /api/sets/create
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		log.Warn().Err(err).Msg("CreateSet: invalid request body")
		respondMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID != "" && !utils.CallerMatches(r, req.UserID) {
		respondMessage(w, r, http.StatusForbidden, "You cannot create sets for another user")
		return
	}

	id, err := h.Sets.Create(r.Context(), req.toModel())
	if err != nil {
		respondRepoError(w, r, "CreateSet", err, errorMessages{
			Conflict: "A set with this ID already exists",
			Internal: "Failed to create flashcard set",
		})
		return
	}

	log.Info().Str("setID", id).Str("userID", req.UserID).Msg("CreateSet: created set")
	respondJSON(w, r, http.StatusCreated, MessageResponse{Message: "Flashcard set created successfully", ID: id})
}

// PUT /api/sets/update/{id}
func (h *SetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("id")

	var req setRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		log.Warn().Err(err).Str("setID", setID).Msg("UpdateSet: invalid request body")
		respondMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID != "" && !utils.CallerMatches(r, req.UserID) {
		respondMessage(w, r, http.StatusForbidden, "You do not have permission to update this set")
		return
	}

	if err := h.Sets.Update(r.Context(), setID, req.toModel()); err != nil {
		respondRepoError(w, r, "UpdateSet", err, errorMessages{
			NotFound:  "Flashcard set not found",
			Forbidden: "You do not have permission to update this set",
			Internal:  "Failed to update flashcard set",
		})
		return
	}

	log.Info().Str("setID", setID).Msg("UpdateSet: updated set")
	respondJSON(w, r, http.StatusOK, MessageResponse{Message: "Flashcard set updated successfully", ID: setID})
}

// GET /api/sets/{id}
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("id")

	set, err := h.Sets.Get(r.Context(), setID)
	if err != nil {
		respondRepoError(w, r, "GetSet", err, errorMessages{
			NotFound: "Flashcard set not found",
			Internal: "Failed to get flashcard set",
		})
		return
	}
	respondJSON(w, r, http.StatusOK, set)
}

// GET /api/sets/created/{userId}
func (h *SetHandler) GetCreatedSets(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	sets, err := h.Sets.ListByOwnerOriginals(r.Context(), userID)
	if err != nil {
		respondRepoError(w, r, "GetCreatedSets", err, errorMessages{Internal: "Failed to get user's created sets"})
		return
	}
	log.Debug().Str("userID", userID).Int("count", len(sets)).Msg("GetCreatedSets: found sets")
	respondJSON(w, r, http.StatusOK, sets)
}

// GET /api/sets/saved/{userId}
func (h *SetHandler) GetSavedSets(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	sets, err := h.Sets.ListByOwnerSaved(r.Context(), userID)
	if err != nil {
		respondRepoError(w, r, "GetSavedSets", err, errorMessages{Internal: "Failed to get user's saved sets"})
		return
	}
	log.Debug().Str("userID", userID).Int("count", len(sets)).Msg("GetSavedSets: found sets")
	respondJSON(w, r, http.StatusOK, sets)
}

// GET /api/sets?classCode=X
func (h *SetHandler) GetSetsByClassCode(w http.ResponseWriter, r *http.Request) {
	classCode := r.URL.Query().Get("classCode")

	sets, err := h.Sets.ListByClassCode(r.Context(), classCode)
	if err != nil {
		respondRepoError(w, r, "GetSetsByClassCode", err, errorMessages{Internal: "Failed to get sets by class code"})
		return
	}
	log.Debug().Str("classCode", classCode).Int("count", len(sets)).Msg("GetSetsByClassCode: found public sets")
	respondJSON(w, r, http.StatusOK, sets)
}

// POST /api/sets/save
func (h *SetHandler) SaveSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalSetID string `json:"originalSetId"`
		UserID        string `json:"userId"`
	}
	if err := decodeBody(w, r, &req, false); err != nil {
		log.Warn().Err(err).Msg("SaveSet: invalid request body")
		respondMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID != "" && !utils.CallerMatches(r, req.UserID) {
		respondMessage(w, r, http.StatusForbidden, "You cannot save sets for another user")
		return
	}

	id, err := h.Sets.SaveAsCopy(r.Context(), req.OriginalSetID, req.UserID)
	if err != nil {
		respondRepoError(w, r, "SaveSet", err, errorMessages{
			NotFound: "Original set not found",
			Conflict: "You have already saved this set",
			Internal: "Failed to save set",
		})
		return
	}

	log.Info().Str("userID", req.UserID).Str("originalSetID", req.OriginalSetID).Str("setID", id).Msg("SaveSet: saved copy")
	respondJSON(w, r, http.StatusCreated, MessageResponse{Message: "Set saved successfully", ID: id})
}

// DELETE /api/sets/{id}
//
// The owner's userId comes from the JSON body or, failing that, the query string.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("id")

	var req struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(w, r, &req, true); err != nil {
		log.Warn().Err(err).Str("setID", setID).Msg("DeleteSet: invalid request body")
		respondMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = r.URL.Query().Get("userId")
	}
	if req.UserID != "" && !utils.CallerMatches(r, req.UserID) {
		respondMessage(w, r, http.StatusForbidden, "You do not have permission to delete this set")
		return
	}

	if err := h.Sets.Delete(r.Context(), setID, req.UserID); err != nil {
		respondRepoError(w, r, "DeleteSet", err, errorMessages{
			NotFound:  "Flashcard set not found",
			Forbidden: "You do not have permission to delete this set",
			Internal:  "Failed to delete flashcard set",
		})
		return
	}

	log.Info().Str("setID", setID).Msg("DeleteSet: deleted set")
	respondJSON(w, r, http.StatusOK, MessageResponse{Message: "Flashcard set deleted successfully", ID: setID})
}

// GET /api/class-codes?prefix=X
func (h *SetHandler) SuggestClassCodes(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	respondJSON(w, r, http.StatusOK, h.ClassCodes.Suggest(prefix, classcodes.SuggestionLimit))
}
