package middleware

import (
	"fmt"
	"net/http"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/Bidex-03/ummah-connect/internal/pkg/jwt"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/pkg/response"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

func bearerToken(r *http.Request) (string, bool) {
	authorization := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

// CustomerSession verifies the bearer token and resolves the customer's
// session before the route handler runs.
type CustomerSession struct {
	jsonWebToken *jwt.JSONWebToken
	session      session.Store
}

func NewCustomerSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *CustomerSession {
	return &CustomerSession{
		jsonWebToken: jsonWebToken,
		session:      store,
	}
}

func (m *CustomerSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r)
		if !ok {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "authorization bearer token is required",
			})

			return
		}

		claims := gojwt.RegisteredClaims{}
		if err := m.jsonWebToken.Parse(ctx, token, &claims); err != nil {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "invalid bearer token",
			})

			return
		}

		account, err := m.session.Get(ctx, fmt.Sprintf("customerapp:%s", claims.Subject))
		if err != nil {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "session is expired or revoked",
			})

			return
		}

		ctx = session.SetAccountToCtx(ctx, account)
		next(w, r.WithContext(ctx))
	}
}

// AdminSession verifies the bearer token, resolves the admin's session and
// rejects non-elevated accounts.
type AdminSession struct {
	jsonWebToken *jwt.JSONWebToken
	session      session.Store
}

func NewAdminSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *AdminSession {
	return &AdminSession{
		jsonWebToken: jsonWebToken,
		session:      store,
	}
}

func (m *AdminSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r)
		if !ok {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "authorization bearer token is required",
			})

			return
		}

		claims := gojwt.RegisteredClaims{}
		if err := m.jsonWebToken.Parse(ctx, token, &claims); err != nil {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "invalid bearer token",
			})

			return
		}

		account, err := m.session.Get(ctx, fmt.Sprintf("adminapp:%s", claims.Subject))
		if err != nil {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "session is expired or revoked",
			})

			return
		}

		if account.Type != session.TypeAdmin {
			response.JSON(w, http.StatusForbidden, response.RESTEnvelope{
				Status:  status.FORBIDDEN,
				Message: "this action requires an admin account",
			})

			return
		}

		ctx = session.SetAccountToCtx(ctx, account)
		next(w, r.WithContext(ctx))
	}
}
