package services

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// LeaderboardSize caps the top-finders view.
const LeaderboardSize = 10

// feeDenominator converts basis points to a fraction.
var feeDenominator = big.NewInt(10000)

// BuildLeaderboard derives the top-finders ranking from an item snapshot.
// Only resolved items with a confirmed finder count. Each finder's total is
// the sum of net rewards, bounty minus the platform fee, computed with
// integer arithmetic throughout, wei amounts do not fit in a float64.
// Entries are sorted descending by total earned; the stable sort makes ties
// deterministic (first finder seen wins). At most LeaderboardSize entries
// are returned.
func BuildLeaderboard(items []models.Item, feeBps int64) []models.LeaderboardEntry {
	index := make(map[common.Address]int)
	entries := make([]models.LeaderboardEntry, 0)

	for i := range items {
		item := &items[i]
		if !item.IsResolved || item.Finder == (common.Address{}) {
			continue
		}

		net := netReward(&item.BountyAmount.Int, feeBps)
		if at, ok := index[item.Finder]; ok {
			entries[at].ItemsFound++
			entries[at].TotalEarned.Add(&entries[at].TotalEarned.Int, net)
		} else {
			index[item.Finder] = len(entries)
			entries = append(entries, models.LeaderboardEntry{
				Address:     item.Finder,
				ItemsFound:  1,
				TotalEarned: models.NewBigInt(net),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalEarned.Cmp(&entries[j].TotalEarned.Int) > 0
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}

// netReward is bounty − floor(bounty · feeBps / 10000). The fee applies to
// the whole bounty as held at resolution, not to its increment history.
func netReward(bounty *big.Int, feeBps int64) *big.Int {
	fee := new(big.Int).Mul(bounty, big.NewInt(feeBps))
	fee.Div(fee, feeDenominator)
	return new(big.Int).Sub(bounty, fee)
}
