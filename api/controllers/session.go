package controllers

import (
	"context"
	"net/http"

	"github.com/vnbcommerce/storefront-sync/api/responses"
	"github.com/vnbcommerce/storefront-sync/api/validators"
	"github.com/vnbcommerce/storefront-sync/internal/gateway"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

type SessionService interface {
	User() *gateway.User
	IsAuthenticated() bool
	Loading() bool
	Login(ctx context.Context, email, password string) (*gateway.User, error)
	Logout(ctx context.Context)
}

type sessionState struct {
	User            *gateway.User `json:"user"`
	IsAuthenticated bool          `json:"is_authenticated"`
	Loading         bool          `json:"loading"`
}

func SessionMe(sessions SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		responses.WriteSuccess(w, sessionState{
			User:            sessions.User(),
			IsAuthenticated: sessions.IsAuthenticated(),
			Loading:         sessions.Loading(),
		})
	}
}

func SessionLogin(sessions SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := sessions.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, loginError(err))
			return
		}
		responses.WriteSuccess(w, sessionState{User: user, IsAuthenticated: true, Loading: sessions.Loading()})
	}
}

func SessionLogout(sessions SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		sessions.Logout(r.Context())
		responses.WriteSuccess(w, sessionState{Loading: sessions.Loading()})
	}
}

// loginError distinguishes rejected credentials from a dead gateway. The
// gateway client collapses every non-2xx into one code, so the original
// status rides in the details.
func loginError(err error) error {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeGateway {
		return err
	}
	if details, ok := typed.Details().(map[string]any); ok {
		if status, ok := details["status"].(int); ok && status >= 400 && status < 500 {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
	}
	return err
}
