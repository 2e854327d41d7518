package batch

import (
	"fmt"
	"strings"

	"github.com/fwojciec/scrape"
)

// summaryOrder fixes the order of statuses in FormatCounts.
var summaryOrder = []scrape.Status{
	scrape.StatusOK,
	scrape.StatusNonHTML,
	scrape.StatusFetchError,
	scrape.StatusParseError,
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatCounts renders per-status record counts, e.g. "ok=3 non_html=0
// fetch_error=1 parse_error=0".
func FormatCounts(counts map[scrape.Status]int) string {
	parts := make([]string, len(summaryOrder))
	for i, s := range summaryOrder {
		parts[i] = fmt.Sprintf("%s=%d", s, counts[s])
	}
	return strings.Join(parts, " ")
}
