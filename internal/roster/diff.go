package roster

import "github.com/mmynk/tipsplit/internal/models"

// Diff lists the shares that differ between two results, keyed by participant.
// Changed and added shares come first in the order of next, followed by removed
// shares in the order of prev. Renderers update only these entries.
func Diff(prev, next models.DistributionResult) []models.ShareChange {
	before := make(map[string]int, len(prev.Shares))
	for i, s := range prev.Shares {
		before[s.ParticipantID] = i
	}

	var changes []models.ShareChange
	seen := make(map[string]bool, len(next.Shares))
	for i, s := range next.Shares {
		seen[s.ParticipantID] = true
		j, ok := before[s.ParticipantID]
		switch {
		case !ok:
			changes = append(changes, models.ShareChange{Kind: models.ShareAdded, Index: i, Share: s})
		case i != j || prev.Shares[j] != s:
			changes = append(changes, models.ShareChange{Kind: models.ShareUpdated, Index: i, Share: s})
		}
	}
	for j, s := range prev.Shares {
		if !seen[s.ParticipantID] {
			changes = append(changes, models.ShareChange{Kind: models.ShareRemoved, Index: j, Share: s})
		}
	}
	return changes
}
