package client

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/betbot/gorh/rhcrypto/types"
)

// query is an insertion-ordered query string. url.Values sorts keys on
// Encode, which would change the signed path.
type query struct {
	parts []string
}

func (q *query) add(key, value string) {
	q.parts = append(q.parts, escapeQuery(key)+"="+escapeQuery(value))
}

func (q *query) addAll(key string, values []string) {
	for _, v := range values {
		q.add(key, v)
	}
}

func (q *query) empty() bool {
	return q == nil || len(q.parts) == 0
}

func (q *query) encode() string {
	if q.empty() {
		return ""
	}
	return strings.Join(q.parts, "&")
}

// withQuery appends q to path. The result is both signed and sent.
func withQuery(path string, q *query) string {
	if q.empty() {
		return path
	}
	return path + "?" + q.encode()
}

// escapeQuery keeps commas literal: list values such as quantity=0.1,1 are
// comma separated on the wire.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}

// orderFilterQuery maps the set fields of f in declaration order.
func orderFilterQuery(f *types.OrderFilter) *query {
	q := &query{}
	if f == nil {
		return q
	}
	if f.ID != nil {
		q.add("id", *f.ID)
	}
	if f.Symbol != nil {
		q.add("symbol", *f.Symbol)
	}
	if f.Side != nil {
		q.add("side", string(*f.Side))
	}
	if f.State != nil {
		q.add("state", string(*f.State))
	}
	if f.Type != nil {
		q.add("type", string(*f.Type))
	}
	if f.CreatedAtStart != nil {
		q.add("created_at_start", *f.CreatedAtStart)
	}
	if f.CreatedAtEnd != nil {
		q.add("created_at_end", *f.CreatedAtEnd)
	}
	if f.UpdatedAtStart != nil {
		q.add("updated_at_start", *f.UpdatedAtStart)
	}
	if f.UpdatedAtEnd != nil {
		q.add("updated_at_end", *f.UpdatedAtEnd)
	}
	if f.Cursor != nil {
		q.add("cursor", *f.Cursor)
	}
	if f.Limit != nil {
		q.add("limit", strconv.Itoa(*f.Limit))
	}
	return q
}
