package hackcheck

import (
	"net/url"
	"strconv"
	"strings"
)

// Endpoint returns the path and query string for a search request.
//
// The query value is sent as typed; only escaping required for a valid path
// segment is applied. Query parameters always appear in the order filter,
// databases, offset, limit, and the '?' is only added when at least one is
// present.
func (o SearchOptions) Endpoint() string {
	var b strings.Builder
	b.WriteString("/search/")
	b.WriteString(url.PathEscape(string(o.Field)))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(o.Query))

	params := make([]string, 0, 4)
	if o.Filter != nil {
		databases := make([]string, len(o.Filter.Databases))
		for i, db := range o.Filter.Databases {
			databases[i] = url.QueryEscape(db)
		}
		params = append(params,
			"filter="+url.QueryEscape(string(o.Filter.Mode)),
			"databases="+strings.Join(databases, ","),
		)
	}
	if o.Pagination != nil {
		params = append(params,
			"offset="+strconv.Itoa(o.Pagination.Offset),
			"limit="+strconv.Itoa(o.Pagination.Limit),
		)
	}

	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}

	return b.String()
}
