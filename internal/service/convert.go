package service

import (
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/roster"
	"github.com/mmynk/tipsplit/pkg/splitapi"
)

func participantsFromAPI(in []*splitapi.Participant) []models.Participant {
	out := make([]models.Participant, 0, len(in))
	for _, p := range in {
		if p == nil {
			continue
		}
		out = append(out, models.Participant{
			ID:           p.ID,
			Name:         p.Name,
			IsLocked:     p.IsLocked,
			LockedAmount: p.LockedAmount,
		})
	}
	return out
}

func participantToAPI(p models.Participant) *splitapi.Participant {
	return &splitapi.Participant{
		ID:           p.ID,
		Name:         p.Name,
		IsLocked:     p.IsLocked,
		LockedAmount: p.LockedAmount,
	}
}

func shareToAPI(s models.ParticipantShare) *splitapi.Share {
	return &splitapi.Share{
		ParticipantID: s.ParticipantID,
		Name:          s.Name,
		Amount:        s.Amount,
		SharePercent:  s.SharePercent,
		Locked:        s.Locked,
	}
}

func resultToAPI(r models.DistributionResult) *splitapi.Result {
	shares := make([]*splitapi.Share, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = shareToAPI(s)
	}
	return &splitapi.Result{
		TipAmount:  r.TipAmount,
		GrandTotal: r.GrandTotal,
		Shares:     shares,
		IsOverflow: r.IsOverflow,
	}
}

func changesToAPI(changes []models.ShareChange) []*splitapi.ShareChange {
	if len(changes) == 0 {
		return nil
	}
	out := make([]*splitapi.ShareChange, len(changes))
	for i, c := range changes {
		out[i] = &splitapi.ShareChange{
			Kind:  string(c.Kind),
			Index: c.Index,
			Share: shareToAPI(c.Share),
		}
	}
	return out
}

func sessionToAPI(bill *models.Bill, sess *roster.Session) *splitapi.Session {
	participants := make([]*splitapi.Participant, len(bill.Participants))
	for i, p := range bill.Participants {
		participants[i] = participantToAPI(p)
	}
	return &splitapi.Session{
		ID:                bill.ID,
		Title:             bill.Title,
		BillTotal:         bill.BillTotal,
		TipPercentage:     bill.TipPercentage,
		MaxTipPercent:     sess.MaxTipPercent(),
		SliderFillPercent: sess.SliderFillPercent(),
		Participants:      participants,
		CanRemove:         sess.CanRemove(),
		CreatedAt:         bill.CreatedAt,
		UpdatedAt:         bill.UpdatedAt,
	}
}
