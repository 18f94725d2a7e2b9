package quotewatch

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/gorh/rhcrypto/types"
)

type fakeSource struct {
	symbols []string
	resp    *types.BestBidAskResponse
	err     error
	calls   int
}

func (f *fakeSource) GetBestBidAsk(_ context.Context, symbols ...string) (*types.BestBidAskResponse, error) {
	f.calls++
	f.symbols = symbols
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func quote(symbol, bid, ask, price string) types.BestBidAsk {
	return types.BestBidAsk{
		Symbol:                   symbol,
		Price:                    decimal.RequireFromString(price),
		BidInclusiveOfSellSpread: decimal.RequireFromString(bid),
		AskInclusiveOfBuySpread:  decimal.RequireFromString(ask),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestInitFetchesConfiguredSymbols(t *testing.T) {
	src := &fakeSource{resp: &types.BestBidAskResponse{Results: []types.BestBidAsk{quote("BTC-USD", "64900", "65100", "65000")}}}
	m := NewModel(context.Background(), src, []string{"BTC-USD"}, time.Second)
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	msg := m.Init()()
	assert.Equal(t, []string{"BTC-USD"}, src.symbols)
	qm, ok := msg.(quotesMsg)
	require.True(t, ok)
	require.Len(t, qm.quotes, 1)

	m, cmd := update(t, m, qm)
	assert.NotNil(t, cmd, "next poll must be scheduled")
	assert.Equal(t, 1, m.polls)

	view := m.View()
	assert.Contains(t, view, "BTC-USD")
	assert.Contains(t, view, "64900.00")
	assert.Contains(t, view, "65100.00")
	assert.Contains(t, view, "200.00")
	assert.Contains(t, view, "12:30:00")
}

func TestFetchErrorIsShownAndPollingContinues(t *testing.T) {
	src := &fakeSource{err: errors.New("rhcrypto: GET /x: http 401")}
	m := NewModel(context.Background(), src, []string{"BTC-USD"}, time.Second)

	msg := m.fetchCmd()()
	em, ok := msg.(errMsg)
	require.True(t, ok)

	m, cmd := update(t, m, em)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "http 401")

	m, _ = update(t, m, quotesMsg{quotes: []types.BestBidAsk{quote("BTC-USD", "1", "2", "1.5")}, at: time.Now()})
	assert.NoError(t, m.err)
}

func TestPriceChangeTracked(t *testing.T) {
	m := NewModel(context.Background(), &fakeSource{}, []string{"ETH-USD"}, time.Second)
	m, _ = update(t, m, quotesMsg{quotes: []types.BestBidAsk{quote("ETH-USD", "3000", "3002", "3001")}})
	_, seen := m.previous["ETH-USD"]
	assert.False(t, seen)

	m, _ = update(t, m, quotesMsg{quotes: []types.BestBidAsk{quote("ETH-USD", "3010", "3012", "3011")}})
	assert.True(t, decimal.RequireFromString("3001").Equal(m.previous["ETH-USD"]))
	assert.Contains(t, m.View(), "3011.00")
}

func TestViewListsMissingAndExtraSymbols(t *testing.T) {
	m := NewModel(context.Background(), &fakeSource{}, []string{"BTC-USD", "DOGE-USD"}, time.Second)
	assert.Contains(t, m.View(), "Loading quotes")

	m, _ = update(t, m, quotesMsg{quotes: []types.BestBidAsk{
		quote("BTC-USD", "1", "2", "1.5"),
		quote("AVAX-USD", "10", "11", "10.5"),
	}})
	assert.Equal(t, []string{"BTC-USD", "DOGE-USD", "AVAX-USD"}, m.order())
	assert.Contains(t, m.View(), "DOGE-USD")
}

func TestKeys(t *testing.T) {
	src := &fakeSource{resp: &types.BestBidAskResponse{}}
	m := NewModel(context.Background(), src, []string{"BTC-USD"}, time.Second)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	_, ok := cmd().(quotesMsg)
	assert.True(t, ok)

	_, cmd = update(t, m, tickMsg{at: time.Now()})
	require.NotNil(t, cmd)
}

func TestRefreshDropsPreviousLoop(t *testing.T) {
	src := &fakeSource{resp: &types.BestBidAskResponse{Results: []types.BestBidAsk{quote("BTC-USD", "1", "2", "1.5")}}}
	m := NewModel(context.Background(), src, []string{"BTC-USD"}, time.Second)

	m, tick := update(t, m, quotesMsg{quotes: src.resp.Results, gen: 0})
	require.NotNil(t, tick)
	assert.Equal(t, 1, m.polls)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.gen)

	_, cmd = update(t, m, tickMsg{at: time.Now(), gen: 0})
	assert.Nil(t, cmd, "tick of the old loop must not poll")

	stale, cmd := update(t, m, quotesMsg{quotes: src.resp.Results, gen: 0})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, stale.polls)

	_, cmd = update(t, m, errMsg{err: errors.New("late"), gen: 0})
	assert.Nil(t, cmd)

	m, cmd = update(t, m, quotesMsg{quotes: src.resp.Results, gen: 1})
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, m.polls)
}

func TestRefreshKeepsSinglePollLoop(t *testing.T) {
	src := &fakeSource{resp: &types.BestBidAskResponse{Results: []types.BestBidAsk{quote("BTC-USD", "1", "2", "1.5")}}}
	m := NewModel(context.Background(), src, []string{"BTC-USD"}, time.Millisecond)

	refresh := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
	pending := []tea.Cmd{m.Init()}
	for step := 0; step < 40; step++ {
		if step > 0 && step%5 == 0 && step <= 20 {
			var cmd tea.Cmd
			m, cmd = update(t, m, refresh)
			pending = append(pending, cmd)
		}
		require.NotEmpty(t, pending)
		cmd := pending[0]
		pending = pending[1:]

		var next tea.Cmd
		m, next = update(t, m, cmd())
		if next != nil {
			pending = append(pending, next)
		}
		require.LessOrEqual(t, len(pending), 2)
	}

	assert.Len(t, pending, 1, "one poll loop after refreshes settle")
	// each refresh leaves at most one in-flight fetch of the old loop behind
	assert.GreaterOrEqual(t, src.calls, m.polls)
	assert.LessOrEqual(t, src.calls-m.polls, 4)
}
