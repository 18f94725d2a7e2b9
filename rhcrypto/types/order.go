package types

import "github.com/shopspring/decimal"

// MarketOrderConfig market order parameters.
type MarketOrderConfig struct {
	AssetQuantity *decimal.Decimal `json:"asset_quantity,omitempty"`
}

// LimitOrderConfig limit order parameters. Exactly one of QuoteAmount and
// AssetQuantity is expected.
type LimitOrderConfig struct {
	QuoteAmount   *decimal.Decimal `json:"quote_amount,omitempty"`
	AssetQuantity *decimal.Decimal `json:"asset_quantity,omitempty"`
	LimitPrice    decimal.Decimal  `json:"limit_price"`
	TimeInForce   TimeInForce      `json:"time_in_force,omitempty"`
}

// StopLossOrderConfig stop loss order parameters.
type StopLossOrderConfig struct {
	QuoteAmount   *decimal.Decimal `json:"quote_amount,omitempty"`
	AssetQuantity *decimal.Decimal `json:"asset_quantity,omitempty"`
	StopPrice     decimal.Decimal  `json:"stop_price"`
	TimeInForce   TimeInForce      `json:"time_in_force,omitempty"`
}

// StopLimitOrderConfig stop limit order parameters.
type StopLimitOrderConfig struct {
	QuoteAmount   *decimal.Decimal `json:"quote_amount,omitempty"`
	AssetQuantity *decimal.Decimal `json:"asset_quantity,omitempty"`
	LimitPrice    decimal.Decimal  `json:"limit_price"`
	StopPrice     decimal.Decimal  `json:"stop_price"`
	TimeInForce   TimeInForce      `json:"time_in_force,omitempty"`
}

// OrderRequest payload of the order creation endpoint.
//
// ClientOrderID is always overwritten by the client with a fresh identifier.
type OrderRequest struct {
	ClientOrderID        string                `json:"client_order_id,omitempty"`
	Symbol               string                `json:"symbol"`
	Side                 Side                  `json:"side"`
	Type                 OrderType             `json:"type"`
	MarketOrderConfig    *MarketOrderConfig    `json:"market_order_config,omitempty"`
	LimitOrderConfig     *LimitOrderConfig     `json:"limit_order_config,omitempty"`
	StopLossOrderConfig  *StopLossOrderConfig  `json:"stop_loss_order_config,omitempty"`
	StopLimitOrderConfig *StopLimitOrderConfig `json:"stop_limit_order_config,omitempty"`
}

// Execution one fill of an order.
type Execution struct {
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Quantity       decimal.Decimal `json:"quantity"`
	Timestamp      string          `json:"timestamp"`
}

// Order order as returned by the remote API.
type Order struct {
	ID                   string                `json:"id"`
	AccountNumber        string                `json:"account_number"`
	Symbol               string                `json:"symbol"`
	ClientOrderID        string                `json:"client_order_id"`
	Side                 Side                  `json:"side"`
	Executions           []Execution           `json:"executions"`
	Type                 OrderType             `json:"type"`
	State                OrderState            `json:"state"`
	AveragePrice         decimal.NullDecimal   `json:"average_price"`
	FilledAssetQuantity  decimal.Decimal       `json:"filled_asset_quantity"`
	CreatedAt            string                `json:"created_at"`
	UpdatedAt            string                `json:"updated_at"`
	MarketOrderConfig    *MarketOrderConfig    `json:"market_order_config,omitempty"`
	LimitOrderConfig     *LimitOrderConfig     `json:"limit_order_config,omitempty"`
	StopLossOrderConfig  *StopLossOrderConfig  `json:"stop_loss_order_config,omitempty"`
	StopLimitOrderConfig *StopLimitOrderConfig `json:"stop_limit_order_config,omitempty"`
}

// OrdersPage one page of orders.
type OrdersPage struct {
	Page
	Results []Order `json:"results"`
}

// OrderFilter filters of the order list endpoint. Nil fields are not sent.
// Fields are encoded in declaration order.
type OrderFilter struct {
	ID             *string
	Symbol         *string
	Side           *Side
	State          *OrderState
	Type           *OrderType
	CreatedAtStart *string
	CreatedAtEnd   *string
	UpdatedAtStart *string
	UpdatedAtEnd   *string
	Cursor         *string
	Limit          *int
}
