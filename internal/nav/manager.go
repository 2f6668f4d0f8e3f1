// Package nav tracks which storefront page is active and the parameters that
// page was opened with. It is an in-memory stack, not a URL router: history
// only remembers page names, never their parameters.
package nav

import (
	"context"
	"fmt"
	"sync"

	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

// Page names the storefront exposes.
const (
	PageHome              = "home"
	PageCategory          = "category"
	PageProduct           = "product"
	PageCart              = "cart"
	PageCheckout          = "checkout"
	PageOrderConfirmation = "order-confirmation"
	PageAccount           = "account"
	PageLogin             = "login"
	PageCreateAccount     = "create-account"
	PageForgotPassword    = "forgot-password"
	PageResetPassword     = "reset-password"
	PageContact           = "contact"
	PageInvest            = "invest"
)

// Reserved parameter keys that are promoted to dedicated state fields.
const (
	paramProductID  = "productId"
	paramCategoryID = "categoryId"
)

// ScrollResetter is told to jump back to the top after every navigation.
type ScrollResetter interface {
	ResetScroll(ctx context.Context)
}

// State is a point-in-time copy of the navigation position.
type State struct {
	CurrentPage string            `json:"current_page"`
	ProductID   string            `json:"product_id,omitempty"`
	CategoryID  string            `json:"category_id,omitempty"`
	PageParams  map[string]string `json:"page_params"`
	Depth       int               `json:"depth"`
}

type Manager struct {
	logg     *logger.Logger
	scroller ScrollResetter

	mu          sync.Mutex
	currentPage string
	productID   string
	categoryID  string
	pageParams  map[string]string
	history     []string
}

func NewManager(logg *logger.Logger, scroller ScrollResetter) (*Manager, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Manager{
		logg:        logg,
		scroller:    scroller,
		currentPage: PageHome,
		pageParams:  map[string]string{},
		history:     []string{PageHome},
	}, nil
}

// NavigateTo makes page current and pushes it onto history. The productId and
// categoryId keys are promoted out of params; every call resets both, so a
// navigation without them clears any earlier selection.
func (m *Manager) NavigateTo(ctx context.Context, page string, params map[string]string) State {
	m.mu.Lock()
	m.currentPage = page
	m.productID = params[paramProductID]
	m.categoryID = params[paramCategoryID]
	extra := make(map[string]string, len(params))
	for k, v := range params {
		if k == paramProductID || k == paramCategoryID {
			continue
		}
		extra[k] = v
	}
	m.pageParams = extra
	m.history = append(m.history, page)
	state := m.stateLocked()
	m.mu.Unlock()

	m.logg.Info(m.logg.WithPage(ctx, page), "navigated")
	m.resetScroll(ctx)
	return state
}

// GoBack pops one page off history. At the root it does nothing. The popped
// page's params are dropped but the product/category selection survives, the
// destination page re-derives what it needs from those.
func (m *Manager) GoBack(ctx context.Context) State {
	m.mu.Lock()
	if len(m.history) <= 1 {
		state := m.stateLocked()
		m.mu.Unlock()
		return state
	}
	m.history = m.history[:len(m.history)-1]
	m.currentPage = m.history[len(m.history)-1]
	m.pageParams = map[string]string{}
	state := m.stateLocked()
	m.mu.Unlock()

	m.logg.Info(m.logg.WithPage(ctx, state.CurrentPage), "navigated back")
	m.resetScroll(ctx)
	return state
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	params := make(map[string]string, len(m.pageParams))
	for k, v := range m.pageParams {
		params[k] = v
	}
	return State{
		CurrentPage: m.currentPage,
		ProductID:   m.productID,
		CategoryID:  m.categoryID,
		PageParams:  params,
		Depth:       len(m.history),
	}
}

func (m *Manager) resetScroll(ctx context.Context) {
	if m.scroller != nil {
		m.scroller.ResetScroll(ctx)
	}
}
