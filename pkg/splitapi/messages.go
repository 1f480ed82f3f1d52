// Package splitapi defines the wire messages of tipsplit.v1.SplitService.
//
// Messages are plain structs encoded as JSON. Amounts are exact, unrounded
// values; formatting to cents is left to the client.
package splitapi

type Participant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	IsLocked     bool    `json:"is_locked,omitempty"`
	LockedAmount float64 `json:"locked_amount,omitempty"`
}

type Share struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	SharePercent  int     `json:"share_percent"`
	Locked        bool    `json:"locked,omitempty"`
}

// Result is a DistributionResult on the wire.
type Result struct {
	TipAmount  float64  `json:"tip_amount"`
	GrandTotal float64  `json:"grand_total"`
	Shares     []*Share `json:"shares"`
	IsOverflow bool     `json:"is_overflow,omitempty"`
}

// ShareChange is one entry that differs from the previous result.
// Kind is "added", "removed" or "updated".
type ShareChange struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Share *Share `json:"share"`
}

// Session is the server-held state of one bill.
type Session struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	BillTotal         float64        `json:"bill_total"`
	TipPercentage     int            `json:"tip_percentage"`
	MaxTipPercent     int            `json:"max_tip_percent"`
	SliderFillPercent float64        `json:"slider_fill_percent"`
	Participants      []*Participant `json:"participants"`
	CanRemove         bool           `json:"can_remove"`
	CreatedAt         int64          `json:"created_at"`
	UpdatedAt         int64          `json:"updated_at"`
}

type CalculateSplitRequest struct {
	BillTotal     float64        `json:"bill_total"`
	TipPercentage int            `json:"tip_percentage"`
	Participants  []*Participant `json:"participants"`
}

type CalculateSplitResponse struct {
	Result *Result `json:"result"`
}

// CreateSessionRequest starts a new bill. Unset fields take the server
// defaults: a zero bill, the default tip, and participants "You" and "Friend".
type CreateSessionRequest struct {
	Title         string   `json:"title,omitempty"`
	BillTotal     *float64 `json:"bill_total,omitempty"`
	TipPercentage *int     `json:"tip_percentage,omitempty"`
	Names         []string `json:"names,omitempty"`
}

type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

type SetBillTotalRequest struct {
	SessionID string  `json:"session_id"`
	BillTotal float64 `json:"bill_total"`
}

type SetTipPercentageRequest struct {
	SessionID     string `json:"session_id"`
	TipPercentage int    `json:"tip_percentage"`
}

// AddParticipantRequest appends a participant; an empty name becomes "Friend N".
type AddParticipantRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name,omitempty"`
}

type RenameParticipantRequest struct {
	SessionID     string `json:"session_id"`
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
}

type LockAmountRequest struct {
	SessionID     string  `json:"session_id"`
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

type RemoveParticipantRequest struct {
	SessionID     string `json:"session_id"`
	ParticipantID string `json:"participant_id"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"session_id"`
}

type DeleteSessionResponse struct{}

// SessionResponse carries the state after an edit, the recomputed result and
// the shares that changed compared to the result before the edit.
type SessionResponse struct {
	Session *Session       `json:"session"`
	Result  *Result        `json:"result"`
	Changes []*ShareChange `json:"changes,omitempty"`
}

type AddParticipantResponse struct {
	SessionResponse
	Participant *Participant `json:"participant"`
}

// RemoveParticipantResponse reports Removed=false when the participant was the
// last one on the roster and was kept.
type RemoveParticipantResponse struct {
	SessionResponse
	Removed bool `json:"removed"`
}
