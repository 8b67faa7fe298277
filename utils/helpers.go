package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// GetSubject returns the user id of the validated token on r, if any.
func GetSubject(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// GetNickname returns the nickname claim of the validated token on r.
func GetNickname(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	if custom, ok := claims.CustomClaims.(interface{ GetNickname() string }); ok {
		return custom.GetNickname()
	}
	return ""
}

// CallerMatches reports whether userID may act for the request. Anonymous
// requests are trusted with the userID they carry; token-authenticated
// requests must name the token's own subject.
func CallerMatches(r *http.Request, userID string) bool {
	subject, ok := GetSubject(r)
	return !ok || subject == userID
}
