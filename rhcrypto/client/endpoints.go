package client

import "net/url"

// DefaultBaseURL production host of the trading API.
const DefaultBaseURL = "https://trading.robinhood.com"

// API paths. Trailing slashes are part of the signed path.
const (
	// Market data
	EndpointBestBidAsk     = "/api/v1/crypto/marketdata/best_bid_ask/"
	EndpointEstimatedPrice = "/api/v1/crypto/marketdata/estimated_price/"

	// Trading
	EndpointTradingPairs = "/api/v1/crypto/trading/trading_pairs/"
	EndpointHoldings     = "/api/v1/crypto/trading/holdings/"
	EndpointAccounts     = "/api/v1/crypto/trading/accounts/"
	EndpointOrders       = "/api/v1/crypto/trading/orders/"
)

// orderPath /api/v1/crypto/trading/orders/{id}/, id path escaped.
func orderPath(orderID string) string {
	return EndpointOrders + url.PathEscape(orderID) + "/"
}

// cancelOrderPath /api/v1/crypto/trading/orders/{id}/cancel/
func cancelOrderPath(orderID string) string {
	return orderPath(orderID) + "cancel/"
}
