package hackcheck

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOptionsEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		opts     SearchOptions
		expected string
	}{
		{
			name:     "no filter or pagination",
			opts:     SearchOptions{Field: SearchFieldEmail, Query: "a@b.com"},
			expected: "/search/email/a@b.com",
		},
		{
			name: "filter and pagination",
			opts: SearchOptions{
				Field:      SearchFieldEmail,
				Query:      "a@b.com",
				Filter:     &SearchFilterOptions{Mode: SearchFilterUse, Databases: []string{"x", "y"}},
				Pagination: &SearchPaginationOptions{Offset: 0, Limit: 10},
			},
			expected: "/search/email/a@b.com?filter=use&databases=x,y&offset=0&limit=10",
		},
		{
			name: "filter only",
			opts: SearchOptions{
				Field:  SearchFieldUsername,
				Query:  "neo",
				Filter: &SearchFilterOptions{Mode: SearchFilterIgnore, Databases: []string{"combo"}},
			},
			expected: "/search/username/neo?filter=ignore&databases=combo",
		},
		{
			name: "pagination only",
			opts: SearchOptions{
				Field:      SearchFieldDomain,
				Query:      "example.com",
				Pagination: &SearchPaginationOptions{Offset: 20, Limit: 5},
			},
			expected: "/search/domain/example.com?offset=20&limit=5",
		},
		{
			name: "empty database list",
			opts: SearchOptions{
				Field:  SearchFieldEmail,
				Query:  "a@b.com",
				Filter: &SearchFilterOptions{Mode: SearchFilterUse},
			},
			expected: "/search/email/a@b.com?filter=use&databases=",
		},
		{
			name:     "slash in query is escaped",
			opts:     SearchOptions{Field: SearchFieldPassword, Query: "pa/ss"},
			expected: "/search/password/pa%2Fss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.Endpoint())
		})
	}
}

func TestSearchURLHasNoQuerySuffixWithoutParams(t *testing.T) {
	client, err := NewClient("key", zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	for _, field := range SearchFields {
		got := client.SearchURL(SearchOptions{Field: field, Query: "value"})
		assert.Equal(t, DefaultBaseURL+"/search/"+string(field)+"/value", got)
		assert.NotContains(t, got, "?")
	}
}

func TestSearchURLFullExample(t *testing.T) {
	client, err := NewClient("key", zerolog.Nop(), WithBaseURL("https://api.hackcheck.io/"))
	require.NoError(t, err)

	got := client.SearchURL(SearchOptions{
		Field:      SearchFieldEmail,
		Query:      "a@b.com",
		Filter:     &SearchFilterOptions{Mode: SearchFilterUse, Databases: []string{"x", "y"}},
		Pagination: &SearchPaginationOptions{Offset: 0, Limit: 10},
	})
	assert.Equal(t, "https://api.hackcheck.io/search/email/a@b.com?filter=use&databases=x,y&offset=0&limit=10", got)
}

func TestParseSearchField(t *testing.T) {
	for _, field := range SearchFields {
		parsed, err := ParseSearchField(string(field))
		require.NoError(t, err)
		assert.Equal(t, field, parsed)
	}

	_, err := ParseSearchField("social_security")
	assert.Error(t, err)
}
