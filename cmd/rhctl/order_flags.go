package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betbot/gorh/rhcrypto/types"
)

type orderFlags struct {
	symbol        string
	side          string
	orderType     string
	assetQuantity string
	quoteAmount   string
	limitPrice    string
	stopPrice     string
	timeInForce   string
}

func optionalDecimal(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("%s must be positive", name)
	}
	return &d, nil
}

func requiredDecimal(name, raw string) (decimal.Decimal, error) {
	d, err := optionalDecimal(name, raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d == nil {
		return decimal.Decimal{}, fmt.Errorf("-%s is required", name)
	}
	return *d, nil
}

// request builds the order request the flags describe.
func (o orderFlags) request() (*types.OrderRequest, error) {
	if o.symbol == "" {
		return nil, errors.New("-symbol is required")
	}
	side := types.Side(o.side)
	if side != types.SideBuy && side != types.SideSell {
		return nil, errors.New("-side must be buy or sell")
	}
	qty, err := optionalDecimal("qty", o.assetQuantity)
	if err != nil {
		return nil, err
	}
	quote, err := optionalDecimal("quote-amount", o.quoteAmount)
	if err != nil {
		return nil, err
	}

	req := &types.OrderRequest{Symbol: o.symbol, Side: side, Type: types.OrderType(o.orderType)}
	tif := types.TimeInForce(o.timeInForce)

	switch req.Type {
	case types.OrderTypeMarket:
		if qty == nil {
			return nil, errors.New("market orders need -qty")
		}
		req.MarketOrderConfig = &types.MarketOrderConfig{AssetQuantity: qty}
	case types.OrderTypeLimit:
		limit, err := requiredDecimal("limit-price", o.limitPrice)
		if err != nil {
			return nil, err
		}
		req.LimitOrderConfig = &types.LimitOrderConfig{QuoteAmount: quote, AssetQuantity: qty, LimitPrice: limit, TimeInForce: tif}
	case types.OrderTypeStopLoss:
		stop, err := requiredDecimal("stop-price", o.stopPrice)
		if err != nil {
			return nil, err
		}
		req.StopLossOrderConfig = &types.StopLossOrderConfig{QuoteAmount: quote, AssetQuantity: qty, StopPrice: stop, TimeInForce: tif}
	case types.OrderTypeStopLimit:
		limit, err := requiredDecimal("limit-price", o.limitPrice)
		if err != nil {
			return nil, err
		}
		stop, err := requiredDecimal("stop-price", o.stopPrice)
		if err != nil {
			return nil, err
		}
		req.StopLimitOrderConfig = &types.StopLimitOrderConfig{QuoteAmount: quote, AssetQuantity: qty, LimitPrice: limit, StopPrice: stop, TimeInForce: tif}
	default:
		return nil, fmt.Errorf("unknown order type %q", o.orderType)
	}
	if req.Type != types.OrderTypeMarket && (qty == nil) == (quote == nil) {
		return nil, errors.New("exactly one of -qty and -quote-amount is required")
	}
	return req, nil
}
