package web

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookie   = "auth_token"
	tokenTTL     = time.Hour
	operatorRole = "operator"
)

type authClaimsKey struct{}

// AuthClaims holds the authenticated operator extracted from the JWT.
type AuthClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// tokenFromRequest reads the auth_token cookie, falling back to a Bearer header
// for scales and terminals that cannot keep cookies.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(authCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func (h *Handler) parseToken(raw string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (h *Handler) signToken(subject string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(tokenTTL)
	claims := &jwtClaims{
		Role: operatorRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	return signed, expires, err
}

// RequireAuth is chi middleware that validates the token and injects AuthClaims into
// the request context. Returns 401 if the token is absent or invalid. With no secret
// configured every request passes.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.jwtSecret == "" {
			next.ServeHTTP(w, r)
			return
		}
		raw := tokenFromRequest(r)
		if raw == "" {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		claims, err := h.parseToken(raw)
		if err != nil {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		ac := &AuthClaims{Subject: claims.Subject, Role: claims.Role}
		if claims.ExpiresAt != nil {
			ac.ExpiresAt = claims.ExpiresAt.Time
		}
		ctx := context.WithValue(r.Context(), authClaimsKey{}, ac)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// login handles POST /api/auth/login. The operator PIN is exchanged for a one-hour token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Operator string `json:"operator"`
		PIN      string `json:"pin"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.jwtSecret == "" || h.operatorPIN == "" {
		writeError(w, r, "authentication is not configured", "AUTH_DISABLED", http.StatusServiceUnavailable)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(h.operatorPIN)) != 1 {
		h.log.WithField("operator", req.Operator).Warn("login rejected")
		writeError(w, r, "invalid PIN", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	subject := strings.TrimSpace(req.Operator)
	if subject == "" {
		subject = operatorRole
	}
	signed, expires, err := h.signToken(subject)
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(tokenTTL.Seconds()),
	})
	writeJSON(w, map[string]any{"token": signed, "operator": subject, "expires_at": expires.UTC()})
}

// logout handles POST /api/auth/logout and clears the auth cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{"operator": claims.Subject, "role": claims.Role, "expires_at": claims.ExpiresAt})
}
