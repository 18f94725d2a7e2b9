package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/betbot/gorh/rhcrypto/types"
)

// GetBestBidAsk best bid/ask for symbols, e.g. "BTC-USD". No symbols returns
// every supported symbol.
func (c *Client) GetBestBidAsk(ctx context.Context, symbols ...string) (*types.BestBidAskResponse, error) {
	q := &query{}
	q.addAll("symbol", symbols)

	var out types.BestBidAskResponse
	if err := c.dispatchInto(ctx, withQuery(EndpointBestBidAsk, q), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEstimatedPrice estimated execution price of symbol for each quantity.
func (c *Client) GetEstimatedPrice(ctx context.Context, symbol string, side types.QuoteSide, quantities ...decimal.Decimal) (*types.EstimatedPriceResponse, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, errors.New("rhcrypto: symbol is required")
	}
	if len(quantities) == 0 {
		return nil, errors.New("rhcrypto: at least one quantity is required")
	}
	qs := make([]string, len(quantities))
	for i, qty := range quantities {
		qs[i] = qty.String()
	}

	q := &query{}
	q.add("symbol", symbol)
	q.add("side", string(side))
	q.add("quantity", strings.Join(qs, ","))

	var out types.EstimatedPriceResponse
	if err := c.dispatchInto(ctx, withQuery(EndpointEstimatedPrice, q), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTradingPairs trading rules for symbols, all pairs when none is given.
func (c *Client) GetTradingPairs(ctx context.Context, symbols ...string) (*types.TradingPairsPage, error) {
	q := &query{}
	q.addAll("symbol", symbols)

	var out types.TradingPairsPage
	if err := c.dispatchInto(ctx, withQuery(EndpointTradingPairs, q), http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
