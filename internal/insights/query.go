package insights

import (
	"net/url"
	"strconv"
	"strings"
)

// Pair is one query parameter.
type Pair struct {
	Key   string
	Value string
}

// Default is a parameter injected when the caller omits its key.
type Default struct {
	Key   string
	Value string
}

// Query is a list of parameters that preserves insertion order.
type Query []Pair

// BuildQuery assembles the query for one tool call. Arguments are emitted
// in declaration order, skipping absent keys, nil values, empty strings,
// and non-scalar values — an empty parameter is never sent. Registered
// defaults follow, only for keys the query does not already contain, and
// the API key is appended last when configured.
func BuildQuery(order []string, args map[string]any, defaults []Default, apiKey string) Query {
	q := make(Query, 0, len(order)+len(defaults)+1)

	for _, key := range order {
		v, ok := args[key]
		if !ok {
			continue
		}
		s, ok := stringifyScalar(v)
		if !ok || s == "" {
			continue
		}
		q = append(q, Pair{Key: key, Value: s})
	}

	for _, d := range defaults {
		if !q.has(d.Key) {
			q = append(q, Pair{Key: d.Key, Value: d.Value})
		}
	}

	if apiKey != "" {
		q = append(q, Pair{Key: "apikey", Value: apiKey})
	}
	return q
}

func (q Query) has(key string) bool {
	for _, p := range q {
		if p.Key == key {
			return true
		}
	}
	return false
}

// Encode renders the query in insertion order. url.Values.Encode would
// sort the keys, so pairs are escaped by hand.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// stringifyScalar renders scalar argument values; anything else reports
// false and is skipped.
func stringifyScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}
