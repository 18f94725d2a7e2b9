package types

// Side order side.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType order type.
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStopLoss  OrderType = "stop_loss"
	OrderTypeStopLimit OrderType = "stop_limit"
)

// OrderState lifecycle state reported by the remote API.
type OrderState string

const (
	OrderStateOpen            OrderState = "open"
	OrderStateCanceled        OrderState = "canceled"
	OrderStatePartiallyFilled OrderState = "partially_filled"
	OrderStateFilled          OrderState = "filled"
	OrderStateFailed          OrderState = "failed"
)

// TimeInForce applies to limit, stop loss and stop limit orders.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "gtc"
	TimeInForceGFD TimeInForce = "gfd"
	TimeInForceGFW TimeInForce = "gfw"
	TimeInForceGFM TimeInForce = "gfm"
)

// QuoteSide side of an estimated price request.
type QuoteSide string

const (
	QuoteSideBid  QuoteSide = "bid"
	QuoteSideAsk  QuoteSide = "ask"
	QuoteSideBoth QuoteSide = "both"
)

// Credentials API key and Ed25519 key material, both keys base64 encoded.
//
// PublicKey is carried for self checks only; the remote server resolves the
// public key from the API key.
type Credentials struct {
	APIKey     string
	PrivateKey string
	PublicKey  string
}

// Page is the pagination envelope shared by list endpoints.
type Page struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// HasNext reports whether the remote API returned a next page cursor.
func (p Page) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// Ptr returns a pointer to v, for building optional filter fields.
func Ptr[T any](v T) *T {
	return &v
}
