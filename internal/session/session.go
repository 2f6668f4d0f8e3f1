// Package session holds the signed-in user state backed by the remote
// accounts API. Credentials themselves are ambient (cookie jar on the
// gateway client); this package only tracks who the session belongs to.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vnbcommerce/storefront-sync/internal/gateway"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

type accountsGateway interface {
	Login(ctx context.Context, email, password string) (*gateway.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*gateway.User, error)
}

type Service struct {
	accounts accountsGateway
	logg     *logger.Logger

	mu      sync.RWMutex
	user    *gateway.User
	loading atomic.Bool
}

func NewService(accounts accountsGateway, logg *logger.Logger) (*Service, error) {
	if accounts == nil {
		return nil, fmt.Errorf("accounts gateway is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{accounts: accounts, logg: logg}, nil
}

// Restore asks the backend who the ambient session belongs to. Any failure,
// transport or auth, leaves the session signed out without an error.
func (s *Service) Restore(ctx context.Context) *gateway.User {
	s.loading.Store(true)
	defer s.loading.Store(false)

	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		s.logg.Info(ctx, "no restorable session")
		s.setUser(nil)
		return nil
	}
	s.setUser(user)
	return user
}

func (s *Service) Login(ctx context.Context, email, password string) (*gateway.User, error) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	if _, err := s.accounts.Login(ctx, email, password); err != nil {
		return nil, err
	}
	// The login response is not trusted for identity; re-read it through the
	// same endpoint Restore uses so both paths agree.
	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// Logout clears local state even when the backend call fails; the worst case
// is a server session that outlives the client's memory of it.
func (s *Service) Logout(ctx context.Context) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	if err := s.accounts.Logout(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "logout request failed")
	}
	s.setUser(nil)
}

func (s *Service) User() *gateway.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Service) Loading() bool {
	return s.loading.Load()
}

func (s *Service) setUser(user *gateway.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
