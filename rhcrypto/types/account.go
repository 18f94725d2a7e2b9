package types

import "github.com/shopspring/decimal"

// Account trading account of the API key owner.
type Account struct {
	AccountNumber       string          `json:"account_number"`
	Status              string          `json:"status"`
	BuyingPower         decimal.Decimal `json:"buying_power"`
	BuyingPowerCurrency string          `json:"buying_power_currency"`
}

// Holding quantity held of one asset.
type Holding struct {
	AccountNumber               string          `json:"account_number"`
	AssetCode                   string          `json:"asset_code"`
	TotalQuantity               decimal.Decimal `json:"total_quantity"`
	QuantityAvailableForTrading decimal.Decimal `json:"quantity_available_for_trading"`
}

// HoldingsPage one page of holdings.
type HoldingsPage struct {
	Page
	Results []Holding `json:"results"`
}
