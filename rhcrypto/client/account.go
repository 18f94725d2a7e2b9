package client

import (
	"context"
	"net/http"

	"github.com/betbot/gorh/rhcrypto/types"
)

// GetAccount trading account of the API key.
func (c *Client) GetAccount(ctx context.Context) (*types.Account, error) {
	var out types.Account
	if err := c.dispatchInto(ctx, EndpointAccounts, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHoldings holdings filtered by asset code, e.g. "BTC". No codes returns
// every holding.
func (c *Client) GetHoldings(ctx context.Context, assetCodes ...string) (*types.HoldingsPage, error) {
	q := &query{}
	q.addAll("asset_code", assetCodes)

	var out types.HoldingsPage
	if err := c.dispatchInto(ctx, withQuery(EndpointHoldings, q), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
