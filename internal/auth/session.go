package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie. All session state lives in the signed
// payload; there is no server-side session store, so logout simply
// overwrites the cookie and stolen cookies stay valid until expiry.
const CookieName = "gsh_session"

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session has expired")
)

// SessionClaims is the payload carried in the session cookie.
type SessionClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	LoggedIn bool      `json:"logged_in"`
	jwt.RegisteredClaims
}

// SessionService signs and validates the session cookie payload.
type SessionService struct {
	secret []byte
	expiry time.Duration
}

func NewSessionService(secret string, expiry time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Expiry returns the configured session lifetime.
func (s *SessionService) Expiry() time.Duration {
	return s.expiry
}

// Issue signs a session token for the given identity.
func (s *SessionService) Issue(userID uuid.UUID, email, name, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   userID,
		Email:    email,
		Name:     name,
		Role:     role,
		LoggedIn: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "global-security-hub",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a session token. A token whose logged-in flag is false
// is treated the same as an invalid one.
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || !claims.LoggedIn {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// SetCookie writes the session cookie on the response.
func (s *SessionService) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // set behind TLS termination in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.expiry.Seconds()),
	})
}

// ClearCookie destroys the session cookie.
func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
