package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

const (
	clientCookie                   = "sufra_client"
	clientContextKey    ContextKey = "client_id"
	clientCookieMaxAge             = 180 * 24 * 60 * 60
)

// ClientSession ensures every request carries a stable client id, issued as a
// cookie. The id keys the client's cart and ties orders back to the client
// that created them.
func ClientSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(clientCookie); err == nil {
			// the id reaches storage keys, so only a well-formed uuid is
			// accepted; anything else gets a fresh identity
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   clientCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), clientContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClientID(r *http.Request) (string, error) {
	id, ok := r.Context().Value(clientContextKey).(string)
	if !ok || id == "" {
		return "", errors.New("no client id in context")
	}
	return id, nil
}
