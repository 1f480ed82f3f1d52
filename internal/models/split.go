package models

// Participant is one person on the roster of a bill.
type Participant struct {
	// ID is assigned when the participant is created and never changes.
	// It is unique for the lifetime of the roster.
	ID string `json:"id"`

	// Name is the display name (e.g., "You", "Friend 2"). Editable.
	Name string `json:"name"`

	// IsLocked is true when the user has overridden this participant's amount.
	IsLocked bool `json:"is_locked"`

	// LockedAmount is the overridden amount.
	// Only meaningful while IsLocked is true; otherwise it may hold a stale value.
	LockedAmount float64 `json:"locked_amount"`
}

// BillState is the complete input to a split calculation.
type BillState struct {
	// BillTotal is the pre-tip bill amount. Never negative.
	BillTotal float64 `json:"bill_total"`

	// TipPercentage is a whole percentage in [0, max tip percent].
	TipPercentage int `json:"tip_percentage"`

	// Participants in display order (insertion order).
	// Always holds at least one participant.
	Participants []Participant `json:"participants"`
}

// Clone returns a deep copy of the state so the copy can be handed out
// without sharing the participants slice.
func (s BillState) Clone() BillState {
	out := s
	out.Participants = make([]Participant, len(s.Participants))
	copy(out.Participants, s.Participants)
	return out
}

// ParticipantShare is one participant's calculated share of the grand total.
type ParticipantShare struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`

	// SharePercent is Amount as a whole percentage of the grand total.
	// Zero when the grand total is zero.
	SharePercent int `json:"share_percent"`

	// Locked mirrors the participant's IsLocked flag so renderers can
	// mark overridden amounts.
	Locked bool `json:"locked"`
}

// DistributionResult is derived from a BillState and is never stored.
type DistributionResult struct {
	TipAmount  float64            `json:"tip_amount"`
	GrandTotal float64            `json:"grand_total"`
	Shares     []ParticipantShare `json:"shares"`

	// IsOverflow reports that locked amounts alone exceed the grand total.
	// Advisory only: nothing is clamped or rejected.
	IsOverflow bool `json:"is_overflow"`
}

// ShareChangeKind describes how a share differs between two results.
type ShareChangeKind string

const (
	ShareAdded   ShareChangeKind = "added"
	ShareRemoved ShareChangeKind = "removed"
	ShareUpdated ShareChangeKind = "updated"
)

// ShareChange is one entry of the difference between two distribution results.
type ShareChange struct {
	Kind  ShareChangeKind  `json:"kind"`
	Index int              `json:"index"`
	Share ParticipantShare `json:"share"`
}
