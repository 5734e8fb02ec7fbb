package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Registry Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Registry Summary
	sb.WriteString("## Registry Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Paused | %t |\n", r.Registry.Paused))
	sb.WriteString(fmt.Sprintf("| Version | %d |\n", r.Registry.Version))
	sb.WriteString(fmt.Sprintf("| Fee Pool | %d |\n", r.Registry.FeePool))
	sb.WriteString(fmt.Sprintf("| Ticks | %d |\n", r.Registry.TickCount))
	sb.WriteString(fmt.Sprintf("| Live Chunks | %d |\n", r.Registry.LiveChunks))
	sb.WriteString("\n")

	// Tick Metrics
	sb.WriteString("## Tick Metrics\n\n")
	if len(r.TickMetrics) > 0 {
		sb.WriteString("| Tick | Max | Minted | Minted% | Limit | Fee | Txs | Holders | ToCoin | Cooldown | MaxPerUser |\n")
		sb.WriteString("|------|-----|--------|---------|-------|-----|-----|---------|--------|----------|-----------|\n")
		for _, m := range r.TickMetrics {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %d | %d | %d | %d | %t | %d | %d |\n",
				m.Tick, m.MaxSupply, m.TotalMinted, m.MintedPct,
				m.MintLimit, m.Fee, m.Txs, m.Holders,
				m.EnableToCoin, m.MintCooldown, m.MaxMintPerUser))
		}
	} else {
		sb.WriteString("No ticks deployed.\n")
	}
	sb.WriteString("\n")

	// Leaderboards
	sb.WriteString("## Leaderboards\n\n")
	if len(r.Leaderboards) > 0 {
		for _, lb := range r.Leaderboards {
			sb.WriteString(fmt.Sprintf("### %s\n\n", lb.Tick))
			sb.WriteString("| Rank | Address | Minted |\n")
			sb.WriteString("|------|---------|--------|\n")
			for i, e := range lb.Entries {
				sb.WriteString(fmt.Sprintf("| %d | %s | %d |\n", i+1, e.Address, e.MintedAmount))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No leaderboard data available.\n\n")
	}

	// Recent Mints
	sb.WriteString("## Recent Mints\n\n")
	if len(r.RecentMints) > 0 {
		sb.WriteString("| Tick | Holder | Amount | Fee | Total | Txs | Minted At |\n")
		sb.WriteString("|------|--------|--------|-----|-------|-----|----------|\n")
		for _, e := range r.RecentMints {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %s |\n",
				e.Tick, e.Holder, e.Amount, e.Fee, e.TotalMinted, e.Txs,
				time.Unix(e.MintedAt, 0).UTC().Format(time.RFC3339)))
		}
	} else {
		sb.WriteString("No mint activity available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
