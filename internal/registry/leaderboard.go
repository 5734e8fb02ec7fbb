package registry

import "tickmint/internal/domain"

// insertLeaderboard places addr on the tick's leaderboard using the
// insertion-time rule: scan from the front and take the position of the
// first member whose current minted amount is strictly smaller. If no member
// is smaller the address is appended only while the board has room. The board
// is truncated back to the cap after an insert.
//
// Members are never repositioned by later mints; a member's position reflects
// the minted amount at the moment they entered.
func insertLeaderboard(st *domain.TickState, addr string, minted uint64) {
	for i, member := range st.Leaderboard {
		if st.Holders[member].MintedAmount < minted {
			st.Leaderboard = append(st.Leaderboard, "")
			copy(st.Leaderboard[i+1:], st.Leaderboard[i:])
			st.Leaderboard[i] = addr
			if len(st.Leaderboard) > domain.LeaderboardCap {
				st.Leaderboard = st.Leaderboard[:domain.LeaderboardCap]
			}
			return
		}
	}
	if len(st.Leaderboard) < domain.LeaderboardCap {
		st.Leaderboard = append(st.Leaderboard, addr)
	}
}

// leaderboardIndex reports whether addr is on the board and where.
func leaderboardIndex(st *domain.TickState, addr string) (int, bool) {
	for i, member := range st.Leaderboard {
		if member == addr {
			return i, true
		}
	}
	return 0, false
}
