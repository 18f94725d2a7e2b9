package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/betbot/gorh/rhcrypto/client"
	"github.com/betbot/gorh/rhcrypto/types"
)

func (s *Server) handleQuotes(c *gin.Context) {
	out, err := s.api.GetBestBidAsk(c.Request.Context(), queryList(c, "symbol")...)
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleEstimate(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		badRequest(c, "symbol is required")
		return
	}
	side := types.QuoteSide(c.DefaultQuery("side", string(types.QuoteSideBoth)))
	switch side {
	case types.QuoteSideBid, types.QuoteSideAsk, types.QuoteSideBoth:
	default:
		badRequest(c, "side must be bid, ask or both")
		return
	}
	raw := queryList(c, "quantity")
	if len(raw) == 0 {
		badRequest(c, "quantity is required")
		return
	}
	quantities := make([]decimal.Decimal, 0, len(raw))
	for _, q := range raw {
		d, err := decimal.NewFromString(q)
		if err != nil || !d.IsPositive() {
			badRequest(c, "invalid quantity "+strconv.Quote(q))
			return
		}
		quantities = append(quantities, d)
	}
	out, err := s.api.GetEstimatedPrice(c.Request.Context(), symbol, side, quantities...)
	s.reply(c, http.StatusOK, out, err)
}

// handlePairs trading rules change rarely; successful responses are cached
// per symbol list.
func (s *Server) handlePairs(c *gin.Context) {
	symbols := queryList(c, "symbol")
	key := strings.Join(symbols, ",")
	if s.pairs != nil {
		if out, ok := s.pairs.Get(key); ok {
			c.JSON(http.StatusOK, out)
			return
		}
	}
	out, err := s.api.GetTradingPairs(c.Request.Context(), symbols...)
	if err == nil && s.pairs != nil {
		s.pairs.Set(key, out, 0)
	}
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleAccount(c *gin.Context) {
	out, err := s.api.GetAccount(c.Request.Context())
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleHoldings(c *gin.Context) {
	out, err := s.api.GetHoldings(c.Request.Context(), queryList(c, "asset_code")...)
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleOrdersList(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := s.api.ListOrders(c.Request.Context(), filter)
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleOrderGet(c *gin.Context) {
	out, err := s.api.GetOrder(c.Request.Context(), c.Param("id"))
	s.reply(c, http.StatusOK, out, err)
}

func (s *Server) handleOrderPlace(c *gin.Context) {
	var req types.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid order request: "+err.Error())
		return
	}
	if req.Symbol == "" || req.Side == "" || req.Type == "" {
		badRequest(c, "symbol, side and type are required")
		return
	}
	out, err := s.api.PlaceOrder(c.Request.Context(), &req)
	s.reply(c, http.StatusCreated, out, err)
}

func (s *Server) handleOrderCancel(c *gin.Context) {
	out, err := s.api.CancelOrder(c.Request.Context(), c.Param("id"))
	if err == nil {
		out = gin.H{"result": out}
	}
	s.reply(c, http.StatusAccepted, out, err)
}

// reply writes out with status, or maps err to a gateway error response.
func (s *Server) reply(c *gin.Context, status int, out any, err error) {
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(status, out)
}

// writeError maps client errors: upstream statuses pass through, transport
// and decode failures become 502, signing failures 500, everything else 400.
func (s *Server) writeError(c *gin.Context, err error) {
	kind := client.ErrorKind(err)
	body := gin.H{"error": err.Error(), "kind": kind.String()}
	status := http.StatusBadRequest

	switch kind {
	case client.KindHTTP:
		httpErr, _ := client.AsHTTPError(err)
		status = httpErr.StatusCode
		body["upstream"] = httpErr.Body
	case client.KindTransport, client.KindDecode:
		status = http.StatusBadGateway
	case client.KindSigning:
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.Request.URL.Path).Warn("upstream call failed")
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "kind": "request"})
}

// queryList values of key, repeated or comma separated.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func orderFilter(c *gin.Context) (*types.OrderFilter, error) {
	f := &types.OrderFilter{}
	str := func(key string) *string {
		if v, ok := c.GetQuery(key); ok && v != "" {
			return &v
		}
		return nil
	}
	f.ID = str("id")
	f.Symbol = str("symbol")
	if v := str("side"); v != nil {
		f.Side = types.Ptr(types.Side(*v))
	}
	if v := str("state"); v != nil {
		f.State = types.Ptr(types.OrderState(*v))
	}
	if v := str("type"); v != nil {
		f.Type = types.Ptr(types.OrderType(*v))
	}
	f.CreatedAtStart = str("created_at_start")
	f.CreatedAtEnd = str("created_at_end")
	f.UpdatedAtStart = str("updated_at_start")
	f.UpdatedAtEnd = str("updated_at_end")
	f.Cursor = str("cursor")
	if v := str("limit"); v != nil {
		n, err := strconv.Atoi(*v)
		if err != nil || n <= 0 {
			return nil, errInvalidLimit
		}
		f.Limit = &n
	}
	return f, nil
}
