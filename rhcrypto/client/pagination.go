package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/betbot/gorh/rhcrypto/types"
)

// nextPath turns the absolute next URL of a page into the path to sign.
func nextPath(page types.Page) (string, error) {
	if !page.HasNext() {
		return "", ErrNoNextPage
	}
	u, err := url.Parse(*page.Next)
	if err != nil {
		return "", errors.Wrapf(err, "rhcrypto: parse next page url %q", *page.Next)
	}
	return u.RequestURI(), nil
}

// NextOrders fetches the page after page. ErrNoNextPage when there is none.
func (c *Client) NextOrders(ctx context.Context, page *types.OrdersPage) (*types.OrdersPage, error) {
	if page == nil {
		return nil, ErrNoNextPage
	}
	path, err := nextPath(page.Page)
	if err != nil {
		return nil, err
	}
	var out types.OrdersPage
	if err := c.dispatchInto(ctx, path, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextHoldings fetches the page after page. ErrNoNextPage when there is none.
func (c *Client) NextHoldings(ctx context.Context, page *types.HoldingsPage) (*types.HoldingsPage, error) {
	if page == nil {
		return nil, ErrNoNextPage
	}
	path, err := nextPath(page.Page)
	if err != nil {
		return nil, err
	}
	var out types.HoldingsPage
	if err := c.dispatchInto(ctx, path, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextTradingPairs fetches the page after page. ErrNoNextPage when there is
// none.
func (c *Client) NextTradingPairs(ctx context.Context, page *types.TradingPairsPage) (*types.TradingPairsPage, error) {
	if page == nil {
		return nil, ErrNoNextPage
	}
	path, err := nextPath(page.Page)
	if err != nil {
		return nil, err
	}
	var out types.TradingPairsPage
	if err := c.dispatchInto(ctx, path, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
