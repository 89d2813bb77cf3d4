package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/hackcheck/hackcheck"
)

const (
	dateFormat = "2006-01-02"
	rule       = "--------------------------------------------------------------------------------"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSearchResponse(w io.Writer, resp *hackcheck.SearchResponse) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No breach records found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d results across %d databases", len(resp.Results), resp.Databases)
	if seen := joinNonEmpty(" to ", resp.FirstSeen, resp.LastSeen); seen != "" {
		fmt.Fprintf(w, " (%s)", seen)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)

	for _, r := range resp.Results {
		fmt.Fprintf(w, "• %s", joinNonEmpty(" / ", r.Email, r.Username, r.FullName))
		if source := joinNonEmpty(", ", r.Source.Name, r.Source.Date); source != "" {
			fmt.Fprintf(w, " [%s]", source)
		}
		fmt.Fprintln(w)

		printField(w, "Password", r.Password)
		printField(w, "Hash", r.Hash)
		printField(w, "IP", r.IPAddress)
		printField(w, "Phone", r.PhoneNumber)
	}

	if p := resp.Pagination; p != nil {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Total documents: %d\n", p.DocumentCount)
		if p.HasNext() {
			fmt.Fprintf(w, "Next page: --offset %d --limit %d\n", p.Next.Offset, p.Next.Limit)
		}
	}
}

func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "  %s: %s\n", label, value)
	}
}

func printCheckResult(w io.Writer, query string, found bool, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(w, "? %s: %v\n", query, err)
	case found:
		fmt.Fprintf(w, "✗ %s: found in breach data\n", query)
	default:
		fmt.Fprintf(w, "✓ %s: not found\n", query)
	}
}

func printMonitors(w io.Writer, resp *hackcheck.GetMonitorsResponse) {
	if len(resp.AssetMonitors) == 0 && len(resp.DomainMonitors) == 0 {
		fmt.Fprintln(w, "No monitors configured.")
		return
	}

	if len(resp.AssetMonitors) > 0 {
		fmt.Fprintf(w, "\nAsset monitors (%d):\n", len(resp.AssetMonitors))
		fmt.Fprintln(w, rule)
		for _, m := range resp.AssetMonitors {
			printAssetMonitor(w, m)
		}
	}

	if len(resp.DomainMonitors) > 0 {
		fmt.Fprintf(w, "\nDomain monitors (%d):\n", len(resp.DomainMonitors))
		fmt.Fprintln(w, rule)
		for _, m := range resp.DomainMonitors {
			printDomainMonitor(w, m)
		}
	}
}

func printAssetMonitor(w io.Writer, m hackcheck.AssetMonitor) {
	fmt.Fprintf(w, "• %s %s: %s [%s]%s\n", m.ID, m.Type, m.Asset, m.Status, expiryNote(m.ExpiresSoon))
	printMonitorDetails(w, m.NotificationEmail, m.CreatedAt.Format(dateFormat), m.EndsAt.Format(dateFormat))
}

func printDomainMonitor(w io.Writer, m hackcheck.DomainMonitor) {
	fmt.Fprintf(w, "• %s domain: %s [%s]%s\n", m.ID, m.Domain, m.Status, expiryNote(m.ExpiresSoon))
	printMonitorDetails(w, m.NotificationEmail, m.CreatedAt.Format(dateFormat), m.EndsAt.Format(dateFormat))
}

func printMonitorDetails(w io.Writer, email, created, ends string) {
	printField(w, "Notify", email)
	fmt.Fprintf(w, "  Period: %s\n", strings.Join([]string{created, ends}, " → "))
}

func expiryNote(soon bool) string {
	if soon {
		return " (expires soon)"
	}
	return ""
}
