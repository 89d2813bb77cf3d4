package hackcheck

import (
	"context"
)

// API defines the interface for HackCheck operations
type API interface {
	// Search queries breach records by field
	Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error)

	// Check reports whether a value exists in breach data
	Check(ctx context.Context, opts CheckOptions) (bool, error)

	// CheckMany runs several checks concurrently
	CheckMany(ctx context.Context, checks []CheckOptions) ([]CheckResult, error)

	// GetMonitors lists asset and domain monitors
	GetMonitors(ctx context.Context) (*GetMonitorsResponse, error)

	// UpdateAssetMonitor updates an asset monitor
	UpdateAssetMonitor(ctx context.Context, id string, params UpdateAssetMonitorParams) (*AssetMonitor, error)

	// UpdateDomainMonitor updates a domain monitor
	UpdateDomainMonitor(ctx context.Context, id string, params UpdateDomainMonitorParams) (*DomainMonitor, error)

	// Close releases the underlying transport
	Close() error
}

var _ API = (*Client)(nil)
