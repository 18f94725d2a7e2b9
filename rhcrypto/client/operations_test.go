package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/gorh/rhcrypto/types"
)

func TestGetBestBidAsk(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"results":[
		{"symbol":"BTC-USD","price":"65000.10","bid_inclusive_of_sell_spread":"64900","sell_spread":"0.0015","ask_inclusive_of_buy_spread":"65100","buy_spread":"0.0015","timestamp":"2024-05-01T12:00:00Z"},
		{"symbol":"ETH-USD","price":"3100.5","timestamp":"2024-05-01T12:00:00Z"}]}`)
	c := api.client()

	out, err := c.GetBestBidAsk(context.Background(), "BTC-USD", "ETH-USD")
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/crypto/marketdata/best_bid_ask/?symbol=BTC-USD&symbol=ETH-USD", req.RequestURI)
	assert.True(t, req.SigValid)
	assert.Empty(t, req.Body)

	require.Len(t, out.Results, 2)
	assert.Equal(t, "BTC-USD", out.Results[0].Symbol)
	assert.True(t, decimal.RequireFromString("65000.10").Equal(out.Results[0].Price))
	assert.True(t, decimal.RequireFromString("64900").Equal(out.Results[0].BidInclusiveOfSellSpread))
}

func TestGetBestBidAskWithoutSymbols(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"results":[]}`)
	c := api.client()

	_, err := c.GetBestBidAsk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EndpointBestBidAsk, api.last().RequestURI)
}

func TestGetEstimatedPrice(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"results":[{"symbol":"BTC-USD","side":"ask","price":"65010","quantity":"0.1"}]}`)
	c := api.client()

	out, err := c.GetEstimatedPrice(context.Background(), "BTC-USD", types.QuoteSideAsk,
		decimal.RequireFromString("0.1"), decimal.NewFromInt(1))
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, "/api/v1/crypto/marketdata/estimated_price/?symbol=BTC-USD&side=ask&quantity=0.1,1", req.RequestURI)
	assert.True(t, req.SigValid)
	require.Len(t, out.Results, 1)
	assert.Equal(t, types.QuoteSideAsk, out.Results[0].Side)
}

func TestGetEstimatedPriceValidation(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()

	_, err := c.GetEstimatedPrice(context.Background(), "", types.QuoteSideBid, decimal.NewFromInt(1))
	assert.Error(t, err)
	_, err = c.GetEstimatedPrice(context.Background(), "BTC-USD", types.QuoteSideBid)
	assert.Error(t, err)
	assert.Equal(t, 0, api.count())
}

func TestGetTradingPairs(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"next":null,"previous":null,"results":[{"asset_code":"BTC","quote_code":"USD","quote_increment":"0.01","asset_increment":"0.00000001","max_order_size":"20","min_order_size":"0.000001","status":"tradable","symbol":"BTC-USD"}]}`)
	c := api.client()

	out, err := c.GetTradingPairs(context.Background(), "BTC-USD")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/crypto/trading/trading_pairs/?symbol=BTC-USD", api.last().RequestURI)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "BTC", out.Results[0].AssetCode)
	assert.False(t, out.HasNext())
}

func TestGetAccount(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"account_number":"ACC-1","status":"active","buying_power":"1500.25","buying_power_currency":"USD"}`)
	c := api.client()

	acct, err := c.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EndpointAccounts, api.last().RequestURI)
	assert.Equal(t, "ACC-1", acct.AccountNumber)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(acct.BuyingPower))
}

func TestGetHoldings(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"results":[{"account_number":"ACC-1","asset_code":"BTC","total_quantity":"0.5","quantity_available_for_trading":"0.4"}]}`)
	c := api.client()

	out, err := c.GetHoldings(context.Background(), "BTC", "ETH")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/crypto/trading/holdings/?asset_code=BTC&asset_code=ETH", api.last().RequestURI)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "BTC", out.Results[0].AssetCode)
}

func TestPlaceOrderAttachesClientOrderID(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusCreated, `{"id":"`+testOrderID+`","client_order_id":"fixed-client-order-id","symbol":"BTC-USD","side":"buy","type":"market","state":"open","average_price":null,"filled_asset_quantity":"0"}`)
	c := api.client()

	qty := decimal.RequireFromString("0.001")
	req := &types.OrderRequest{
		Symbol:            "BTC-USD",
		Side:              types.SideBuy,
		Type:              types.OrderTypeMarket,
		MarketOrderConfig: &types.MarketOrderConfig{AssetQuantity: &qty},
	}

	order, err := c.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	sent := api.last()
	assert.Equal(t, http.MethodPost, sent.Method)
	assert.Equal(t, EndpointOrders, sent.RequestURI)
	assert.True(t, sent.SigValid)
	assert.JSONEq(t, `{
		"client_order_id":"fixed-client-order-id",
		"symbol":"BTC-USD",
		"side":"buy",
		"type":"market",
		"market_order_config":{"asset_quantity":"0.001"}
	}`, string(sent.Body))

	assert.Empty(t, req.ClientOrderID, "caller's request must not be modified")
	assert.Equal(t, testOrderID, order.ID)
	assert.Equal(t, types.OrderStateOpen, order.State)
	assert.False(t, order.AveragePrice.Valid)
}

func TestPlaceOrderFreshIDPerCall(t *testing.T) {
	api := newFakeAPI(t)
	ids := []string{"id-1", "id-2"}
	c, err := NewClient(api.creds, Config{
		BaseURL: api.server.URL,
		Logger:  quietLogger(),
		IDGenerator: func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		},
	})
	require.NoError(t, err)

	req := &types.OrderRequest{ClientOrderID: "stale", Symbol: "BTC-USD", Side: types.SideSell, Type: types.OrderTypeMarket}
	for _, want := range []string{"id-1", "id-2"} {
		_, err := c.PlaceOrder(context.Background(), req)
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(api.last().Body, &payload))
		assert.Equal(t, want, payload["client_order_id"])
	}
	assert.Equal(t, "stale", req.ClientOrderID)
}

func TestPlaceOrderNilRequest(t *testing.T) {
	api := newFakeAPI(t)
	_, err := api.client().PlaceOrder(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 0, api.count())
}

func TestGetOrder(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"id":"`+testOrderID+`","state":"filled","average_price":"65000.5","executions":[{"effective_price":"65000.5","quantity":"0.001","timestamp":"2024-05-01T12:00:00Z"}]}`)
	c := api.client()

	order, err := c.GetOrder(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/crypto/trading/orders/"+testOrderID+"/", api.last().RequestURI)
	assert.Equal(t, types.OrderStateFilled, order.State)
	require.True(t, order.AveragePrice.Valid)
	assert.True(t, decimal.RequireFromString("65000.5").Equal(order.AveragePrice.Decimal))
	require.Len(t, order.Executions, 1)
}

func TestGetOrderEscapesID(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()

	_, err := c.GetOrder(context.Background(), "a b%41")
	require.NoError(t, err)
	req := api.last()
	assert.Equal(t, "/api/v1/crypto/trading/orders/a%20b%2541/", req.RequestURI)
	assert.True(t, req.SigValid)
}

func TestCancelOrder(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `"Cancel request has been submitted for order `+testOrderID+`"`)
	c := api.client()

	out, err := c.CancelOrder(context.Background(), testOrderID)
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/crypto/trading/orders/"+testOrderID+"/cancel/", req.RequestURI)
	assert.Empty(t, req.Body)
	assert.True(t, req.SigValid)
	assert.Equal(t, "Cancel request has been submitted for order "+testOrderID, out)
}

func TestOrderIDValidation(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()

	for _, id := range []string{"", "  ", "a/b", "a?b=1"} {
		_, err := c.GetOrder(context.Background(), id)
		assert.Error(t, err, id)
		_, err = c.CancelOrder(context.Background(), id)
		assert.Error(t, err, id)
	}
	assert.Equal(t, 0, api.count())
}

func TestListOrdersFilterQuery(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, `{"next":null,"results":[]}`)
	c := api.client()

	_, err := c.ListOrders(context.Background(), &types.OrderFilter{
		Symbol: types.Ptr("BTC-USD"),
		Side:   types.Ptr(types.SideBuy),
	})
	require.NoError(t, err)
	req := api.last()
	assert.Equal(t, "/api/v1/crypto/trading/orders/?symbol=BTC-USD&side=buy", req.RequestURI)
	assert.True(t, req.SigValid)

	_, err = c.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, EndpointOrders, api.last().RequestURI)
}

func TestListOrdersFollowsNextPage(t *testing.T) {
	api := newFakeAPI(t)
	next := api.server.URL + "/api/v1/crypto/trading/orders/?cursor=abc&limit=1"
	api.respond(http.StatusOK, `{"next":"`+next+`","results":[{"id":"o-1"}]}`)
	c := api.client()

	first, err := c.ListOrders(context.Background(), &types.OrderFilter{Limit: types.Ptr(1)})
	require.NoError(t, err)
	require.True(t, first.HasNext())
	assert.Equal(t, "/api/v1/crypto/trading/orders/?limit=1", api.last().RequestURI)

	api.respond(http.StatusOK, `{"next":null,"results":[{"id":"o-2"}]}`)
	second, err := c.NextOrders(context.Background(), first)
	require.NoError(t, err)
	req := api.last()
	assert.Equal(t, "/api/v1/crypto/trading/orders/?cursor=abc&limit=1", req.RequestURI)
	assert.True(t, req.SigValid)
	require.Len(t, second.Results, 1)
	assert.Equal(t, "o-2", second.Results[0].ID)

	_, err = c.NextOrders(context.Background(), second)
	assert.ErrorIs(t, err, ErrNoNextPage)
}

func TestNextHoldingsAndPairsWithoutCursor(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()

	_, err := c.NextHoldings(context.Background(), &types.HoldingsPage{})
	assert.ErrorIs(t, err, ErrNoNextPage)
	_, err = c.NextTradingPairs(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoNextPage)
	assert.Equal(t, 0, api.count())
}
