package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"medgpt-backend/internal/auth"
	"medgpt-backend/pkg/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// --- JWT Middleware ---

// bearerToken returns the token of an "Authorization: Bearer <token>"
// header. present is false when there is no Authorization header.
func bearerToken(r *http.Request) (token string, present bool, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", true, errors.New("malformed Authorization header")
	}
	return parts[1], true, nil
}

// respondTokenError writes the 401 for a token that failed to parse.
func respondTokenError(w http.ResponseWriter, err error) {
	log.Printf("Auth Middleware: Error parsing token: %v", err)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		httputil.RespondError(w, http.StatusUnauthorized, "Token has expired")
	case errors.Is(err, jwt.ErrTokenMalformed):
		httputil.RespondError(w, http.StatusUnauthorized, "Malformed token")
	default:
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
	}
}

// JwtAuthMiddleware verifies the JWT token from the Authorization header.
// If valid, it injects the UserID into the request context.
func JwtAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, present, err := bearerToken(r)
			if !present {
				log.Println("Auth Middleware: Missing Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Malformed Authorization header (Expected: Bearer <token>)")
				return
			}

			userID, err := auth.ParseAccessToken(tokenString, jwtSecret)
			if err != nil {
				respondTokenError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalJwtAuthMiddleware lets anonymous requests through. A request
// that does carry a token must carry a valid one.
func OptionalJwtAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, present, err := bearerToken(r)
			if !present {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Malformed Authorization header (Expected: Bearer <token>)")
				return
			}

			userID, err := auth.ParseAccessToken(tokenString, jwtSecret)
			if err != nil {
				respondTokenError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
