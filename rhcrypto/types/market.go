package types

import "github.com/shopspring/decimal"

// BestBidAsk best bid/ask quote for one symbol.
type BestBidAsk struct {
	Symbol                   string          `json:"symbol"`
	Price                    decimal.Decimal `json:"price"`
	BidInclusiveOfSellSpread decimal.Decimal `json:"bid_inclusive_of_sell_spread"`
	SellSpread               decimal.Decimal `json:"sell_spread"`
	AskInclusiveOfBuySpread  decimal.Decimal `json:"ask_inclusive_of_buy_spread"`
	BuySpread                decimal.Decimal `json:"buy_spread"`
	Timestamp                string          `json:"timestamp"`
}

// BestBidAskResponse response of the best bid/ask endpoint.
type BestBidAskResponse struct {
	Results []BestBidAsk `json:"results"`
}

// EstimatedPrice estimated execution price for one side and quantity.
type EstimatedPrice struct {
	Symbol                   string          `json:"symbol"`
	Side                     QuoteSide       `json:"side"`
	Price                    decimal.Decimal `json:"price"`
	Quantity                 decimal.Decimal `json:"quantity"`
	BidInclusiveOfSellSpread decimal.Decimal `json:"bid_inclusive_of_sell_spread"`
	SellSpread               decimal.Decimal `json:"sell_spread"`
	AskInclusiveOfBuySpread  decimal.Decimal `json:"ask_inclusive_of_buy_spread"`
	BuySpread                decimal.Decimal `json:"buy_spread"`
	Timestamp                string          `json:"timestamp"`
}

// EstimatedPriceResponse response of the estimated price endpoint.
type EstimatedPriceResponse struct {
	Results []EstimatedPrice `json:"results"`
}

// TradingPair trading rules of a symbol.
type TradingPair struct {
	AssetCode      string          `json:"asset_code"`
	QuoteCode      string          `json:"quote_code"`
	QuoteIncrement decimal.Decimal `json:"quote_increment"`
	AssetIncrement decimal.Decimal `json:"asset_increment"`
	MaxOrderSize   decimal.Decimal `json:"max_order_size"`
	MinOrderSize   decimal.Decimal `json:"min_order_size"`
	Status         string          `json:"status"`
	Symbol         string          `json:"symbol"`
}

// TradingPairsPage one page of trading pairs.
type TradingPairsPage struct {
	Page
	Results []TradingPair `json:"results"`
}
