package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Defaults applied when page/limit are absent or malformed.
const (
	DefaultPage  = 1
	DefaultLimit = 25

	// DefaultSort is descending by creation time.
	DefaultSort = "firstCreated"
)

// Operator is a comparison operator in a filter expression.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

var operators = map[string]Operator{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Filter is a single validated predicate over one field.
type Filter struct {
	Field string
	Op    Operator
	Value interface{} // scalar, or []interface{} for OpIn
}

// SortKey is one component of a multi-key sort.
type SortKey struct {
	Field string
	Desc  bool
}

// Query is the parsed form of the list-endpoint query string.
type Query struct {
	Filters []Filter
	Select  []string
	Sort    []SortKey
	Page    int
	Limit   int
}

// Skip returns the number of documents to skip for the requested page.
func (q *Query) Skip() int {
	return (q.Page - 1) * q.Limit
}

// reserved query parameters never interpreted as filters
var reserved = map[string]bool{
	"select": true,
	"sortBy": true,
	"page":   true,
	"limit":  true,
}

// bracketed keys look like field[op]
var bracketRe = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)

// Parse translates raw query parameters into a Query. Operator tokens are
// only recognized as the entire bracket suffix of a key; anything else in a
// bracket is rejected rather than passed through to the store.
func Parse(values url.Values) (*Query, error) {
	q := &Query{Page: DefaultPage, Limit: DefaultLimit}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		raw := vals[0]

		if m := bracketRe.FindStringSubmatch(key); m != nil {
			field, tok := m[1], m[2]
			op, ok := operators[tok]
			if !ok {
				return nil, fmt.Errorf("unrecognized filter operator %q", tok)
			}
			if op == OpIn {
				parts := strings.Split(raw, ",")
				list := make([]interface{}, 0, len(parts))
				for _, p := range parts {
					list = append(list, coerce(strings.TrimSpace(p)))
				}
				q.Filters = append(q.Filters, Filter{Field: field, Op: OpIn, Value: list})
				continue
			}
			q.Filters = append(q.Filters, Filter{Field: field, Op: op, Value: coerce(raw)})
			continue
		}

		if strings.ContainsAny(key, "[]") {
			return nil, fmt.Errorf("malformed filter parameter %q", key)
		}
		q.Filters = append(q.Filters, Filter{Field: key, Op: OpEq, Value: coerce(raw)})
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Select = append(q.Select, f)
			}
		}
	}

	q.Sort = parseSort(values.Get("sortBy"))

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		q.Limit = limit
	}

	return q, nil
}

func parseSort(raw string) []SortKey {
	if raw == "" {
		return []SortKey{{Field: DefaultSort, Desc: true}}
	}
	var keys []SortKey
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.HasPrefix(f, "-") {
			keys = append(keys, SortKey{Field: f[1:], Desc: true})
		} else {
			keys = append(keys, SortKey{Field: f})
		}
	}
	if len(keys) == 0 {
		return []SortKey{{Field: DefaultSort, Desc: true}}
	}
	return keys
}

// coerce converts a raw query value to the most specific scalar type so
// that store-side comparisons behave numerically where they should.
func coerce(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
