package resource

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Query parameters reserved by the API.
const (
	paramSort  = "_sort"
	paramOrder = "_order"
	paramLimit = "_limit"
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidField reports whether s can be used as a filter or sort field.
func ValidField(s string) bool {
	return fieldPattern.MatchString(s)
}

// Query describes a list request: field-equality filters plus optional
// ordering and limit.
type Query struct {
	Sort  string
	Order Order
	Limit int
	Eq    map[string]string
}

// Where returns a copy of q with an added equality filter.
func (q Query) Where(field string, value any) Query {
	eq := make(map[string]string, len(q.Eq)+1)
	for k, v := range q.Eq {
		eq[k] = v
	}
	eq[field] = fmt.Sprint(value)
	q.Eq = eq
	return q
}

// SortBy returns a copy of q ordered by field.
func (q Query) SortBy(field string, order Order) Query {
	q.Sort = field
	q.Order = order
	return q
}

// Values encodes q as URL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(q.Eq))
	for k := range q.Eq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Eq[k])
	}
	if q.Sort != "" {
		v.Set(paramSort, q.Sort)
		if q.Order != "" {
			v.Set(paramOrder, string(q.Order))
		}
	}
	if q.Limit > 0 {
		v.Set(paramLimit, strconv.Itoa(q.Limit))
	}
	return v
}

// Encode returns the URL-encoded query string, empty when q has no
// parameters.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// ParseQuery decodes URL query parameters into a Query, rejecting
// malformed field names, orders and limits.
func ParseQuery(v url.Values) (Query, error) {
	var q Query
	for key, vals := range v {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]
		switch key {
		case paramSort:
			if !ValidField(val) {
				return Query{}, fmt.Errorf("invalid sort field %q", val)
			}
			q.Sort = val
		case paramOrder:
			o := Order(strings.ToLower(val))
			if o != Asc && o != Desc {
				return Query{}, fmt.Errorf("invalid order %q", val)
			}
			q.Order = o
		case paramLimit:
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return Query{}, fmt.Errorf("invalid limit %q", val)
			}
			q.Limit = n
		default:
			if strings.HasPrefix(key, "_") {
				continue
			}
			if !ValidField(key) {
				return Query{}, fmt.Errorf("invalid filter field %q", key)
			}
			if q.Eq == nil {
				q.Eq = map[string]string{}
			}
			q.Eq[key] = val
		}
	}
	return q, nil
}
