package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/saskatoon/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	username [sha256.Size]byte
	password [sha256.Size]byte
	// bcrypt hash of the password, if the configured password is one
	hash []byte
}

func newCredentials(username, password string) credentials {
	c := credentials{
		username: sha256.Sum256([]byte(username)),
	}

	if isBcryptHash(password) {
		c.hash = []byte(password)
	} else {
		c.password = sha256.Sum256([]byte(password))
	}

	return c
}

// verify checks the given username and password against the credentials.
// The username digest is always compared in constant time.
func (c credentials) verify(username, password string) bool {
	usernameHash := sha256.Sum256([]byte(username))
	usernameMatch := subtle.ConstantTimeCompare(c.username[:], usernameHash[:])

	var passwordMatch int
	if c.hash != nil {
		if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err == nil {
			passwordMatch = 1
		}
	} else {
		passwordHash := sha256.Sum256([]byte(password))
		passwordMatch = subtle.ConstantTimeCompare(c.password[:], passwordHash[:])
	}

	return usernameMatch&passwordMatch == 1
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func basicAuth(auth *BasicAuth, prefix string, next http.Handler) http.Handler {
	expected := newCredentials(auth.Username, auth.Password)
	challenge := fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, auth.Realm)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if ok && expected.verify(username, password) {
			next.ServeHTTP(w, r)
			return
		}

		if ok {
			slog.WarnContext(r.Context(), "basic authentication failed", slog.String("prefix", prefix), slog.String("username", username))
			metrics.AuthFailures.With(map[string]string{metrics.LabelPrefix: prefix}).Inc()
		}

		w.Header().Set("WWW-Authenticate", challenge)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	})
}
