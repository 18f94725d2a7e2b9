package quotewatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/betbot/gorh/rhcrypto/types"
)

// QuoteSource returns best bid/ask quotes. *client.Client implements it.
type QuoteSource interface {
	GetBestBidAsk(ctx context.Context, symbols ...string) (*types.BestBidAskResponse, error)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// Poll messages carry the generation of the loop that produced them. A manual
// refresh starts a new generation and messages of older ones are dropped, so
// exactly one poll loop is alive at any time.

// tickMsg poll timer fired.
type tickMsg struct {
	at  time.Time
	gen int
}

// quotesMsg result of one poll.
type quotesMsg struct {
	quotes []types.BestBidAsk
	at     time.Time
	gen    int
}

// errMsg failed poll.
type errMsg struct {
	err error
	gen int
}

// Model bubbletea model polling best bid/ask for a fixed symbol list.
type Model struct {
	ctx      context.Context
	src      QuoteSource
	symbols  []string
	interval time.Duration
	now      func() time.Time

	quotes   map[string]types.BestBidAsk
	previous map[string]decimal.Decimal
	updated  time.Time
	polls    int
	gen      int
	err      error
}

// NewModel model polling src every interval. Cancelling ctx aborts the
// in-flight request.
func NewModel(ctx context.Context, src QuoteSource, symbols []string, interval time.Duration) Model {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return Model{
		ctx:      ctx,
		src:      src,
		symbols:  symbols,
		interval: interval,
		now:      time.Now,
		quotes:   make(map[string]types.BestBidAsk),
		previous: make(map[string]decimal.Decimal),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.gen++
			return m, m.fetchCmd()
		}

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.fetchCmd()

	case quotesMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		for _, q := range msg.quotes {
			if old, ok := m.quotes[q.Symbol]; ok {
				m.previous[q.Symbol] = old.Price
			}
			m.quotes[q.Symbol] = q
		}
		m.updated = msg.at
		m.polls++
		m.err = nil
		return m, m.tickCmd()

	case errMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.err = msg.err
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Crypto best bid/ask"))
	b.WriteString("\n\n")

	if len(m.quotes) == 0 && m.err == nil {
		b.WriteString("Loading quotes...\n")
	} else {
		b.WriteString(borderStyle.Render(m.table()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	status := fmt.Sprintf("every %s", m.interval)
	if !m.updated.IsZero() {
		status = fmt.Sprintf("updated %s, %s", m.updated.Format("15:04:05"), status)
	}
	b.WriteString(dimStyle.Render(status + "  [r] refresh  [q] quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) table() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-10s %14s %14s %14s %10s", "SYMBOL", "BID", "ASK", "PRICE", "SPREAD")))
	for _, symbol := range m.order() {
		q, ok := m.quotes[symbol]
		if !ok {
			b.WriteString(fmt.Sprintf("\n%-10s %14s %14s %14s %10s", symbol, "-", "-", "-", "-"))
			continue
		}
		spread := q.AskInclusiveOfBuySpread.Sub(q.BidInclusiveOfSellSpread)
		price := fmt.Sprintf("%14s", q.Price.StringFixed(2))
		if prev, ok := m.previous[symbol]; ok {
			switch q.Price.Cmp(prev) {
			case 1:
				price = upStyle.Render(price)
			case -1:
				price = downStyle.Render(price)
			}
		}
		b.WriteString(fmt.Sprintf("\n%-10s %14s %14s %s %10s",
			symbol,
			q.BidInclusiveOfSellSpread.StringFixed(2),
			q.AskInclusiveOfBuySpread.StringFixed(2),
			price,
			spread.StringFixed(2),
		))
	}
	return b.String()
}

// order configured symbols first, then any extra symbols the API returned.
func (m Model) order() []string {
	seen := make(map[string]bool, len(m.symbols))
	out := make([]string, 0, len(m.quotes))
	for _, s := range m.symbols {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	var extra []string
	for s := range m.quotes {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, src, symbols, now, gen := m.ctx, m.src, m.symbols, m.now, m.gen
	return func() tea.Msg {
		resp, err := src.GetBestBidAsk(ctx, symbols...)
		if err != nil {
			return errMsg{err: err, gen: gen}
		}
		return quotesMsg{quotes: resp.Results, at: now(), gen: gen}
	}
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{at: t, gen: gen}
	})
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, src QuoteSource, symbols []string, interval time.Duration) error {
	p := tea.NewProgram(NewModel(ctx, src, symbols, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
