package middleware

import (
	"CookieVault/internal/model"
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName — имя auth-cookie с подписанным токеном сессии.
const CookieName = "auth_token"

type contextKey string

const sessionContextKey contextKey = "session"

// Claims — подписанные клеймы сессии: идентичность актора и его роль.
// Абсолютное истечение задаётся при выпуске и не сдвигается.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session — сессия запроса, извлечённая из валидного токена.
type Session struct {
	Email     string
	Role      model.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// BuildToken выпускает подписанный HS256-токен сессии для аккаунта.
func BuildToken(acc *model.Account, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: acc.Email,
		Role:  acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SetLoginCookie выпускает токен сессии и ставит его в HttpOnly cookie.
func SetLoginCookie(w http.ResponseWriter, acc *model.Account, secret string, ttl time.Duration) error {
	signed, err := BuildToken(acc, secret, ttl, time.Now())
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearLoginCookie сбрасывает auth-cookie (logout).
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ParseToken проверяет подпись и срок токена и возвращает клеймы.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// WithAuth проверяет auth-cookie на каждом запросе и кладёт сессию в контекст.
// Отсутствующий, невалидный или истёкший токен оставляет запрос анонимным —
// истёкшая сессия неотличима от её отсутствия.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseToken(cookie.Value, secret)
			if err != nil {
				// невалидный или истёкший токен — запрос идёт дальше анонимным
				next.ServeHTTP(w, r)
				return
			}

			sess := Session{
				Email:     claims.Email,
				Role:      claims.Role,
				IssuedAt:  claims.IssuedAt.Time,
				ExpiresAt: claims.ExpiresAt.Time,
			}
			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionFromContext возвращает сессию запроса, если она установлена.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// RoleFromContext возвращает роль актора; пустая роль — анонимный посетитель.
func RoleFromContext(ctx context.Context) model.Role {
	if sess, ok := GetSessionFromContext(ctx); ok {
		return sess.Role
	}
	return ""
}
