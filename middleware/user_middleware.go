package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/models"
	"github.com/andrewpaige1/fliply-api/utils"
)

// ProfileStore persists user profiles.
type ProfileStore interface {
	Upsert(ctx context.Context, user *models.User) error
}

type UserSync struct {
	Users ProfileStore
}

// SyncUserMiddleware makes sure the token's user has a profile, keeping its
// username in step with the token's nickname claim. Anonymous requests are
// passed through untouched.
func (s UserSync) SyncUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetSubject(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user := models.User{ID: userID, Username: utils.GetNickname(r)}
		if err := s.Users.Upsert(r.Context(), &user); err != nil {
			log.Error().Err(err).Str("userID", userID).Msg("SyncUserMiddleware: failed to sync user")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": "Failed to sync user", "error": err.Error()})
			return
		}

		next.ServeHTTP(w, r)
	}
}
