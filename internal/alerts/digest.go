package alerts

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

type count struct {
	key string
	n   int
}

// sortedCounts orders by count, then key.
func sortedCounts(m map[string]int) []count {
	out := make([]count, 0, len(m))
	for k, n := range m {
		out = append(out, count{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].key < out[j].key
	})
	return out
}

// BuildDigest renders the events as an HTML summary.
func BuildDigest(events []Event) string {
	accountCounts := make(map[string]int)
	productCounts := make(map[string]int)
	for _, e := range events {
		accountCounts[fmt.Sprintf("account %d", e.UserID)]++
		productCounts[productLabel(e)]++
	}

	var sb strings.Builder
	sb.WriteString("<h2>📦 Daily Low Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(events)))

	sb.WriteString("<h3>👤 By Account</h3><ul>")
	for _, c := range sortedCounts(accountCounts) {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", html.EscapeString(c.key), c.n))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>🏷️ By Product</h3><ul>")
	for _, c := range sortedCounts(productCounts) {
		sb.WriteString(fmt.Sprintf("<li><code>%s</code>: %d</li>", html.EscapeString(c.key), c.n))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> at %d (threshold %d) on %s</li>",
			html.EscapeString(productLabel(e)), e.Quantity, e.Threshold, e.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	return sb.String()
}

func productLabel(e Event) string {
	if e.SKU == "" {
		return e.ProductName
	}
	return fmt.Sprintf("%s (%s)", e.ProductName, e.SKU)
}
