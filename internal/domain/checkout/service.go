// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/gateway"
)

// ErrEmptyCart is returned when there is nothing to order
var ErrEmptyCart = errors.New("cart is empty")

// OrderPlacer submits an order on behalf of the bearer of accessToken
type OrderPlacer interface {
	CreateOrder(ctx context.Context, accessToken string, req order.CreateRequest) (*order.Order, error)
}

// Service turns the active cart into an order
type Service struct {
	cart    *cart.Store
	gateway *gateway.Gateway
	orders  OrderPlacer
	logger  *logrus.Logger
}

// NewService creates a new checkout service
func NewService(store *cart.Store, gw *gateway.Gateway, orders OrderPlacer, logger *logrus.Logger) *Service {
	return &Service{
		cart:    store,
		gateway: gw,
		orders:  orders,
		logger:  logger,
	}
}

// BuildRequest converts cart lines into an order request. Lines of the same
// product are combined since the backend orders products, not variants.
func BuildRequest(items []cart.LineItem) order.CreateRequest {
	req := order.CreateRequest{Items: make([]order.Line, 0, len(items))}
	index := make(map[int64]int, len(items))

	for _, item := range items {
		if i, ok := index[item.Product.ID]; ok {
			req.Items[i].Quantity += item.Quantity
			continue
		}
		index[item.Product.ID] = len(req.Items)
		req.Items = append(req.Items, order.Line{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	return req
}

// Checkout places an order for the active cart and takes the ordered units
// out of it on success. Guests must log in first.
func (s *Service) Checkout(ctx context.Context) (*order.Order, error) {
	snapshot := s.cart.Snapshot()
	if snapshot.Owner == session.GuestOwner {
		return nil, gateway.ErrLoginRequired
	}
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	req := BuildRequest(snapshot.Items)

	placed, err := gateway.FetchSession(ctx, s.gateway, func(ctx context.Context, accessToken string) (*order.Order, error) {
		return s.orders.CreateOrder(ctx, accessToken, req)
	})
	if err != nil {
		s.logger.WithError(err).WithField("owner", snapshot.Owner).Warn("Checkout failed")
		return nil, err
	}

	for _, item := range snapshot.Items {
		s.cart.Deduct(ctx, item.ID, item.Quantity)
	}

	s.logger.WithFields(logrus.Fields{
		"owner":    snapshot.Owner,
		"order_id": placed.ID,
		"lines":    len(req.Items),
	}).Info("Order placed")

	return placed, nil
}
