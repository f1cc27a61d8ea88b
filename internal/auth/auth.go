package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieName is the cookie the browser client sends with every order request.
const CookieName = "token"

// ErrUnauthenticated covers every way a request can fail to prove an
// identity: no cookie, empty cookie, garbage token, bad signature, wrong
// signing method, expired token, non-uuid subject. Callers must not be able
// to tell these apart.
var ErrUnauthenticated = errors.New("unauthenticated")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	Secret []byte
	TTL    time.Duration
}

func New(secret []byte, ttl time.Duration) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty JWT secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{Secret: secret, TTL: ttl}, nil
}

// UserID resolves the caller's identity from the token cookie. It never
// touches the database.
func (a *Authenticator) UserID(c echo.Context) (uuid.UUID, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, ErrUnauthenticated
	}

	claims, err := a.claimsFromToken(cookie.Value)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	return userID, nil
}

func (a *Authenticator) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	exp := time.Now().Add(a.TTL)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

func (a *Authenticator) claimsFromToken(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return a.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrUnauthenticated
	}
	return &claims, nil
}

func SessionCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
