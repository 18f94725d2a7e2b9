package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/betbot/gorh/pkg/config"
	"github.com/betbot/gorh/pkg/logger"
	"github.com/betbot/gorh/rhcrypto/client"
	"github.com/betbot/gorh/rhcrypto/signing"
	"github.com/betbot/gorh/rhcrypto/types"
)

const usage = `usage: rhctl [-config file] <command> [flags] [args]

commands:
  pairs    [SYMBOL...]          trading pairs
  quote    SYMBOL...            best bid/ask
  estimate -symbol S -side bid|ask|both -quantity Q[,Q...]
  account                       trading account
  holdings [ASSET...]           holdings
  orders   [-symbol S] [-side buy|sell] [-state S] [-type T] [-limit N] [-all]
  order    ID                   one order
  place    -symbol S -side buy|sell -type market|limit|stop_loss|stop_limit ...
  cancel   ID                   cancel an open order
  sign     -path P [-method M] [-body B]   print a signed envelope, no request
`

type command func(ctx context.Context, c *client.Client, args []string) (any, error)

var commands = map[string]command{
	"pairs":    cmdPairs,
	"quote":    cmdQuote,
	"estimate": cmdEstimate,
	"account":  cmdAccount,
	"holdings": cmdHoldings,
	"orders":   cmdOrders,
	"order":    cmdOrder,
	"place":    cmdPlace,
	"cancel":   cmdCancel,
	"sign":     cmdSign,
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rhctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", os.Getenv("RH_CONFIG"), "YAML config file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	if fs.NArg() == 0 {
		return errors.New(usage)
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q\n%s", name, usage)
	}

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		return err
	}
	logCfg := cfg.LoggerConfig()
	logCfg.Console = os.Stderr
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	c, err := client.NewClient(cfg.Credentials(), cfg.ClientConfig())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := cmd(ctx, c, rest)
	if err != nil {
		if httpErr, ok := client.AsHTTPError(err); ok {
			_ = printJSON(stdout, map[string]any{"status": httpErr.StatusCode, "error": httpErr.Body})
		}
		return err
	}
	return printJSON(stdout, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdPairs(ctx context.Context, c *client.Client, args []string) (any, error) {
	return c.GetTradingPairs(ctx, args...)
}

func cmdQuote(ctx context.Context, c *client.Client, args []string) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("quote: at least one symbol is required")
	}
	return c.GetBestBidAsk(ctx, args...)
}

func cmdEstimate(ctx context.Context, c *client.Client, args []string) (any, error) {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	symbol := fs.String("symbol", "", "symbol, e.g. BTC-USD")
	side := fs.String("side", string(types.QuoteSideBoth), "bid, ask or both")
	quantity := fs.String("quantity", "", "comma separated quantities")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	quantities, err := parseDecimals(*quantity)
	if err != nil {
		return nil, err
	}
	return c.GetEstimatedPrice(ctx, *symbol, types.QuoteSide(*side), quantities...)
}

func cmdAccount(ctx context.Context, c *client.Client, _ []string) (any, error) {
	return c.GetAccount(ctx)
}

func cmdHoldings(ctx context.Context, c *client.Client, args []string) (any, error) {
	return c.GetHoldings(ctx, args...)
}

func cmdOrders(ctx context.Context, c *client.Client, args []string) (any, error) {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	symbol := fs.String("symbol", "", "symbol")
	side := fs.String("side", "", "buy or sell")
	state := fs.String("state", "", "open, canceled, partially_filled, filled, failed")
	orderType := fs.String("type", "", "market, limit, stop_loss, stop_limit")
	limit := fs.Int("limit", 0, "page size")
	all := fs.Bool("all", false, "follow next pages")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	filter := &types.OrderFilter{}
	if *symbol != "" {
		filter.Symbol = symbol
	}
	if *side != "" {
		filter.Side = types.Ptr(types.Side(*side))
	}
	if *state != "" {
		filter.State = types.Ptr(types.OrderState(*state))
	}
	if *orderType != "" {
		filter.Type = types.Ptr(types.OrderType(*orderType))
	}
	if *limit > 0 {
		filter.Limit = limit
	}

	page, err := c.ListOrders(ctx, filter)
	if err != nil || !*all {
		return page, err
	}
	orders := page.Results
	for page.HasNext() {
		if page, err = c.NextOrders(ctx, page); err != nil {
			return nil, err
		}
		orders = append(orders, page.Results...)
	}
	return orders, nil
}

func cmdOrder(ctx context.Context, c *client.Client, args []string) (any, error) {
	if len(args) != 1 {
		return nil, errors.New("order: exactly one order id is required")
	}
	return c.GetOrder(ctx, args[0])
}

func cmdPlace(ctx context.Context, c *client.Client, args []string) (any, error) {
	fs := flag.NewFlagSet("place", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var o orderFlags
	fs.StringVar(&o.symbol, "symbol", "", "symbol, e.g. BTC-USD")
	fs.StringVar(&o.side, "side", "", "buy or sell")
	fs.StringVar(&o.orderType, "type", string(types.OrderTypeMarket), "market, limit, stop_loss, stop_limit")
	fs.StringVar(&o.assetQuantity, "qty", "", "asset quantity")
	fs.StringVar(&o.quoteAmount, "quote-amount", "", "quote amount (non-market orders)")
	fs.StringVar(&o.limitPrice, "limit-price", "", "limit price")
	fs.StringVar(&o.stopPrice, "stop-price", "", "stop price")
	fs.StringVar(&o.timeInForce, "tif", string(types.TimeInForceGTC), "gtc, gfd, gfw, gfm")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	req, err := o.request()
	if err != nil {
		return nil, err
	}
	return c.PlaceOrder(ctx, req)
}

func cmdCancel(ctx context.Context, c *client.Client, args []string) (any, error) {
	if len(args) != 1 {
		return nil, errors.New("cancel: exactly one order id is required")
	}
	return c.CancelOrder(ctx, args[0])
}

// cmdSign prints the envelope and headers a request would carry. Nothing is
// sent.
func cmdSign(_ context.Context, c *client.Client, args []string) (any, error) {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("path", "", "request path including query string")
	method := fs.String("method", "GET", "HTTP method")
	body := fs.String("body", "", "exact request body")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, errors.New("sign: -path is required")
	}
	env, err := c.Signer().Sign(*path, strings.ToUpper(*method), *body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"envelope": env,
		"headers":  signing.HeadersFromEnvelope(c.GetAPIKey(), env).Map(),
	}, nil
}

func parseDecimals(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", part, err)
		}
		out = append(out, d)
	}
	return out, nil
}
