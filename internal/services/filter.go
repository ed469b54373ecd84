package services

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// ParseViewMode validates a view name from a query parameter.
func ParseViewMode(s string) (models.ViewMode, error) {
	switch mode := models.ViewMode(s); mode {
	case models.ViewBrowse, models.ViewMineReported, models.ViewMineClaimed, models.ViewResolved:
		return mode, nil
	case "":
		return models.ViewBrowse, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

// FilterItems partitions an item snapshot into one named slice. Addresses
// were parsed into common.Address at ingestion, so equality here is already
// case-insensitive; caller is only consulted by the mine-* views.
func FilterItems(items []models.Item, mode models.ViewMode, caller common.Address) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		var keep bool
		switch mode {
		case models.ViewMineReported:
			keep = item.Owner == caller
		case models.ViewMineClaimed:
			keep = item.HasClaimant(caller)
		case models.ViewResolved:
			keep = item.IsResolved
		default: // browse
			keep = !item.IsResolved
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
