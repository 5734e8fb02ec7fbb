package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders tick metrics as CSV string.
func RenderCSV(metrics []TickMetricRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("tick,max_supply,total_minted,minted_pct,mint_limit,fee,txs,holders,")
	sb.WriteString("enable_to_coin,mint_cooldown,max_mint_per_user\n")

	// Rows
	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%.4f,%d,%d,%d,%d,%t,%d,%d\n",
			m.Tick,
			m.MaxSupply,
			m.TotalMinted,
			m.MintedPct,
			m.MintLimit,
			m.Fee,
			m.Txs,
			m.Holders,
			m.EnableToCoin,
			m.MintCooldown,
			m.MaxMintPerUser,
		))
	}

	return sb.String()
}
