package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/betbot/gorh/internal/metrics"
	"github.com/betbot/gorh/rhcrypto/types"
)

// PlaceOrder creates an order. The request is copied and a fresh client order
// id is attached on every call; req itself is not modified.
func (c *Client) PlaceOrder(ctx context.Context, req *types.OrderRequest) (*types.Order, error) {
	if req == nil {
		return nil, errors.New("rhcrypto: order request is nil")
	}
	payload := *req
	payload.ClientOrderID = c.newID()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "rhcrypto: marshal order request")
	}

	var out types.Order
	if err := c.dispatchInto(ctx, EndpointOrders, http.MethodPost, body, &out); err != nil {
		return nil, err
	}
	metrics.OrdersPlaced.Add(1)
	c.log.WithField("client_order_id", payload.ClientOrderID).
		WithField("symbol", payload.Symbol).
		WithField("side", payload.Side).
		Info("order placed")
	return &out, nil
}

// GetOrder order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.Order, error) {
	if err := validateOrderID(orderID); err != nil {
		return nil, err
	}
	var out types.Order
	if err := c.dispatchInto(ctx, orderPath(orderID), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder requests cancellation of an open order and returns the parsed
// response as-is; the API answers with a message, not an order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (any, error) {
	if err := validateOrderID(orderID); err != nil {
		return nil, err
	}
	return c.Dispatch(ctx, cancelOrderPath(orderID), http.MethodPost, nil)
}

// ListOrders orders matching filter. A nil filter lists every order.
func (c *Client) ListOrders(ctx context.Context, filter *types.OrderFilter) (*types.OrdersPage, error) {
	var out types.OrdersPage
	if err := c.dispatchInto(ctx, withQuery(EndpointOrders, orderFilterQuery(filter)), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func validateOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.New("rhcrypto: order id is required")
	}
	if strings.ContainsAny(orderID, "/?#") {
		return errors.Errorf("rhcrypto: invalid order id %q", orderID)
	}
	return nil
}
