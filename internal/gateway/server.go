package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/betbot/gorh/pkg/cache"
	"github.com/betbot/gorh/rhcrypto/types"
)

const defaultPairsTTL = time.Minute

// TradingAPI operations the gateway forwards. *client.Client implements it.
type TradingAPI interface {
	GetBestBidAsk(ctx context.Context, symbols ...string) (*types.BestBidAskResponse, error)
	GetEstimatedPrice(ctx context.Context, symbol string, side types.QuoteSide, quantities ...decimal.Decimal) (*types.EstimatedPriceResponse, error)
	GetTradingPairs(ctx context.Context, symbols ...string) (*types.TradingPairsPage, error)
	GetAccount(ctx context.Context) (*types.Account, error)
	GetHoldings(ctx context.Context, assetCodes ...string) (*types.HoldingsPage, error)
	ListOrders(ctx context.Context, filter *types.OrderFilter) (*types.OrdersPage, error)
	GetOrder(ctx context.Context, orderID string) (*types.Order, error)
	PlaceOrder(ctx context.Context, req *types.OrderRequest) (*types.Order, error)
	CancelOrder(ctx context.Context, orderID string) (any, error)
}

// Server local HTTP gateway in front of the signed client. Callers talk plain
// JSON; signing happens inside.
type Server struct {
	api      TradingAPI
	log      *logrus.Entry
	pairsTTL time.Duration
	pairs    cache.Cache[string, *types.TradingPairsPage]
}

// Option configures a Server.
type Option func(*Server)

// WithPairsCacheTTL how long trading pair responses are reused. 0 disables
// the cache.
func WithPairsCacheTTL(ttl time.Duration) Option {
	return func(s *Server) { s.pairsTTL = ttl }
}

// WithPairsCache reuses trading pair responses through c instead of a
// private in-memory cache. Entries are set with the cache's default TTL.
func WithPairsCache(c cache.Cache[string, *types.TradingPairsPage]) Option {
	return func(s *Server) { s.pairs = c }
}

func New(api TradingAPI, log *logrus.Entry, opts ...Option) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{api: api, log: log.WithField("component", "gateway"), pairsTTL: defaultPairsTTL}
	for _, opt := range opts {
		opt(s)
	}
	if s.pairs == nil && s.pairsTTL > 0 {
		s.pairs = cache.NewInMemoryCache[string, *types.TradingPairsPage](s.pairsTTL)
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	api.GET("/quotes", s.handleQuotes)
	api.GET("/estimate", s.handleEstimate)
	api.GET("/pairs", s.handlePairs)
	api.GET("/account", s.handleAccount)
	api.GET("/holdings", s.handleHoldings)

	orders := api.Group("/orders")
	orders.GET("", s.handleOrdersList)
	orders.POST("", s.handleOrderPlace)
	orders.GET("/:id", s.handleOrderGet)
	orders.POST("/:id/cancel", s.handleOrderCancel)

	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("gateway request")
	}
}
