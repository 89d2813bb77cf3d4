package hackcheck

import (
	"fmt"
	"time"
)

// SearchField identifies the record attribute a query is matched against
type SearchField string

const (
	// SearchFieldEmail matches email addresses
	SearchFieldEmail SearchField = "email"
	// SearchFieldUsername matches usernames
	SearchFieldUsername SearchField = "username"
	// SearchFieldFullName matches full names
	SearchFieldFullName SearchField = "full_name"
	// SearchFieldPassword matches plaintext passwords
	SearchFieldPassword SearchField = "password"
	// SearchFieldIPAddress matches IP addresses
	SearchFieldIPAddress SearchField = "ip_address"
	// SearchFieldPhoneNumber matches phone numbers
	SearchFieldPhoneNumber SearchField = "phone_number"
	// SearchFieldDomain matches every record under a domain
	SearchFieldDomain SearchField = "domain"
	// SearchFieldHash matches password hashes
	SearchFieldHash SearchField = "hash"
)

// SearchFields lists every field the service recognizes
var SearchFields = []SearchField{
	SearchFieldEmail,
	SearchFieldUsername,
	SearchFieldFullName,
	SearchFieldPassword,
	SearchFieldIPAddress,
	SearchFieldPhoneNumber,
	SearchFieldDomain,
	SearchFieldHash,
}

// Valid reports whether f is one of the recognized fields
func (f SearchField) Valid() bool {
	for _, known := range SearchFields {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the wire name of the field
func (f SearchField) String() string {
	return string(f)
}

// ParseSearchField converts a wire name into a SearchField
func ParseSearchField(s string) (SearchField, error) {
	f := SearchField(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown search field %q", s)
	}
	return f, nil
}

// SearchFilter selects whether the listed databases are included or excluded
type SearchFilter string

const (
	// SearchFilterUse restricts the search to the listed databases
	SearchFilterUse SearchFilter = "use"
	// SearchFilterIgnore excludes the listed databases from the search
	SearchFilterIgnore SearchFilter = "ignore"
)

// Valid reports whether m is a recognized filter mode
func (m SearchFilter) Valid() bool {
	return m == SearchFilterUse || m == SearchFilterIgnore
}

// SearchFilterOptions restricts or excludes source databases.
// An empty Databases list is legal but selects nothing.
type SearchFilterOptions struct {
	Mode      SearchFilter `validate:"filtermode"`
	Databases []string
}

// SearchPaginationOptions is the page window requested from the service
type SearchPaginationOptions struct {
	Offset int `validate:"min=0"`
	Limit  int `validate:"gt=0"`
}

// SearchOptions describes a search request. Filter and Pagination are
// independently optional.
type SearchOptions struct {
	Field      SearchField `validate:"searchfield"`
	Query      string
	Filter     *SearchFilterOptions
	Pagination *SearchPaginationOptions
}

// CheckOptions describes an existence check
type CheckOptions struct {
	Field SearchField `json:"field" validate:"searchfield"`
	Query string      `json:"query"`
}

// CheckResponse is the payload returned by /check
type CheckResponse struct {
	Found bool `json:"found"`
}

// Source describes the breach dataset a result was found in
type Source struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// SearchResult is a single matched record. Empty strings mean the source did
// not contain that attribute.
type SearchResult struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	IPAddress   string `json:"ip_address"`
	PhoneNumber string `json:"phone_number"`
	Hash        string `json:"hash"`
	Source      Source `json:"source"`
}

// PaginationData is a page window returned by the service
type PaginationData struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SearchResponsePagination describes where the current page sits. A nil Next
// or Prev means there is no page in that direction.
type SearchResponsePagination struct {
	DocumentCount int             `json:"document_count"`
	Next          *PaginationData `json:"next"`
	Prev          *PaginationData `json:"prev"`
}

// HasNext reports whether a following page exists
func (p *SearchResponsePagination) HasNext() bool {
	return p != nil && p.Next != nil
}

// HasPrev reports whether a preceding page exists
func (p *SearchResponsePagination) HasPrev() bool {
	return p != nil && p.Prev != nil
}

// SearchResponse is the payload returned by /search
type SearchResponse struct {
	Databases  int                       `json:"databases"`
	Results    []SearchResult            `json:"results"`
	Pagination *SearchResponsePagination `json:"pagination"`
	FirstSeen  string                    `json:"first_seen"`
	LastSeen   string                    `json:"last_seen"`
}

// MonitorStatus is the lifecycle state of a monitor
type MonitorStatus int

const (
	// MonitorStatusRunning indicates the monitor is active
	MonitorStatusRunning MonitorStatus = 0
	// MonitorStatusPaused indicates the monitor was paused by its owner
	MonitorStatusPaused MonitorStatus = 1
	// MonitorStatusExpired indicates the monitor subscription ended
	MonitorStatusExpired MonitorStatus = 2
)

// String returns the string representation of a MonitorStatus
func (s MonitorStatus) String() string {
	switch s {
	case MonitorStatusRunning:
		return "RUNNING"
	case MonitorStatusPaused:
		return "PAUSED"
	case MonitorStatusExpired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// AssetMonitor watches a single value of a given field type
type AssetMonitor struct {
	ID                string        `json:"id"`
	Status            MonitorStatus `json:"status"`
	Type              SearchField   `json:"type"`
	Asset             string        `json:"asset"`
	NotificationEmail string        `json:"notification_email"`
	ExpiresSoon       bool          `json:"expires_soon"`
	CreatedAt         time.Time     `json:"created_at"`
	EndsAt            time.Time     `json:"ends_at"`
}

// Active reports whether the monitor is currently running
func (m AssetMonitor) Active() bool {
	return m.Status == MonitorStatusRunning
}

// DomainMonitor watches an entire domain
type DomainMonitor struct {
	ID                string        `json:"id"`
	Status            MonitorStatus `json:"status"`
	Domain            string        `json:"domain"`
	NotificationEmail string        `json:"notification_email"`
	ExpiresSoon       bool          `json:"expires_soon"`
	CreatedAt         time.Time     `json:"created_at"`
	EndsAt            time.Time     `json:"ends_at"`
}

// Active reports whether the monitor is currently running
func (m DomainMonitor) Active() bool {
	return m.Status == MonitorStatusRunning
}

// GetMonitorsResponse is the payload returned by /monitors
type GetMonitorsResponse struct {
	AssetMonitors  []AssetMonitor  `json:"asset_monitors"`
	DomainMonitors []DomainMonitor `json:"domain_monitors"`
}

// UpdateAssetMonitorParams is the body sent to update an asset monitor
type UpdateAssetMonitorParams struct {
	AssetType         SearchField `json:"asset_type" validate:"searchfield"`
	Asset             string      `json:"asset"`
	NotificationEmail string      `json:"notification_email"`
}

// UpdateDomainMonitorParams is the body sent to update a domain monitor
type UpdateDomainMonitorParams struct {
	Domain            string `json:"domain"`
	NotificationEmail string `json:"notification_email"`
}
