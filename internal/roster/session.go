// Package roster owns the mutable bill state that the calculator reads.
//
// A Session applies one user edit at a time and recomputes the distribution
// from a snapshot afterwards. The calculator never sees the Session itself.
package roster

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/idgen"
	"github.com/mmynk/tipsplit/internal/models"
)

const (
	DefaultTipPercentage    = 15
	DefaultMaxTipPercentage = 100

	// MaxAmount caps bill totals and locked amounts so that totals computed
	// from them stay finite for any tip range.
	MaxAmount = 1e12
)

var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrEmptyRoster        = errors.New("roster must have at least one participant")
)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	MaxTipPercent int
	IDs           idgen.Generator
}

func (o Options) withDefaults() Options {
	if o.MaxTipPercent <= 0 {
		o.MaxTipPercent = DefaultMaxTipPercentage
	}
	if o.IDs == nil {
		o.IDs = idgen.UUID{}
	}
	return o
}

// Session is the owned application state for one bill.
// It is not safe for concurrent use; callers serialise edits.
type Session struct {
	state  models.BillState
	maxTip int
	ids    idgen.Generator
}

// New creates a session with a zero bill, the default tip and the two
// default participants "You" and "Friend".
func New(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		state: models.BillState{
			TipPercentage: clampTip(DefaultTipPercentage, opts.MaxTipPercent),
		},
		maxTip: opts.MaxTipPercent,
		ids:    opts.IDs,
	}
	s.appendParticipant("You")
	s.appendParticipant("Friend")
	return s
}

// Restore rebuilds a session from a previously captured state.
// Inputs are coerced the same way edits are.
func Restore(state models.BillState, opts Options) (*Session, error) {
	if len(state.Participants) == 0 {
		return nil, ErrEmptyRoster
	}
	opts = opts.withDefaults()

	state = state.Clone()
	state.BillTotal = CoerceAmount(state.BillTotal)
	state.TipPercentage = clampTip(state.TipPercentage, opts.MaxTipPercent)
	seen := make(map[string]bool, len(state.Participants))
	for i := range state.Participants {
		p := &state.Participants[i]
		if p.ID == "" {
			p.ID = opts.IDs.NewID()
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate participant id %q", p.ID)
		}
		seen[p.ID] = true
		p.LockedAmount = CoerceAmount(p.LockedAmount)
	}

	return &Session{state: state, maxTip: opts.MaxTipPercent, ids: opts.IDs}, nil
}

// State returns a copy of the current bill state.
func (s *Session) State() models.BillState {
	return s.state.Clone()
}

// Result computes the distribution for the current state.
func (s *Session) Result() models.DistributionResult {
	return calculator.Compute(s.State())
}

// MaxTipPercent is the upper bound of the tip slider.
func (s *Session) MaxTipPercent() int {
	return s.maxTip
}

// SetBillTotal sets the bill total and unlocks every participant.
// Negative and non-finite values are treated as zero.
func (s *Session) SetBillTotal(total float64) {
	s.state.BillTotal = CoerceAmount(total)
	s.unlockAll()
}

// SetTipPercentage sets the tip, clamped to [0, MaxTipPercent], and unlocks
// every participant.
func (s *Session) SetTipPercentage(percent int) {
	s.state.TipPercentage = clampTip(percent, s.maxTip)
	s.unlockAll()
}

// AddParticipant appends an unlocked participant. An empty name becomes
// "Friend N" where N is the roster size before the add.
func (s *Session) AddParticipant(name string) models.Participant {
	if name == "" {
		name = fmt.Sprintf("Friend %d", len(s.state.Participants))
	}
	return s.appendParticipant(name)
}

// RenameParticipant changes a participant's name and nothing else.
func (s *Session) RenameParticipant(id, name string) error {
	p := s.find(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	p.Name = name
	return nil
}

// LockAmount overrides a participant's amount. The amount is not capped at the
// grand total; exceeding it is reported as overflow by the calculator.
func (s *Session) LockAmount(id string, amount float64) error {
	p := s.find(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	p.IsLocked = true
	p.LockedAmount = CoerceAmount(amount)
	return nil
}

// RemoveParticipant deletes a participant. Removing the last remaining
// participant is a no-op that reports false.
func (s *Session) RemoveParticipant(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	if !s.CanRemove() {
		return false, nil
	}
	s.state.Participants = append(s.state.Participants[:idx], s.state.Participants[idx+1:]...)
	return true, nil
}

// CanRemove reports whether a participant may be removed.
func (s *Session) CanRemove() bool {
	return len(s.state.Participants) > 1
}

// SliderFillPercent is the tip position as a percentage of the slider range.
func (s *Session) SliderFillPercent() float64 {
	return float64(s.state.TipPercentage) / float64(s.maxTip) * 100
}

func (s *Session) appendParticipant(name string) models.Participant {
	p := models.Participant{ID: s.ids.NewID(), Name: name}
	s.state.Participants = append(s.state.Participants, p)
	return p
}

func (s *Session) unlockAll() {
	for i := range s.state.Participants {
		s.state.Participants[i].IsLocked = false
	}
}

func (s *Session) indexOf(id string) int {
	for i := range s.state.Participants {
		if s.state.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) find(id string) *models.Participant {
	if i := s.indexOf(id); i >= 0 {
		return &s.state.Participants[i]
	}
	return nil
}

// CoerceAmount maps user-entered amounts onto valid ones. NaN, infinities and
// negatives become zero; anything above MaxAmount becomes MaxAmount.
func CoerceAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, MaxAmount)
}

func clampTip(percent, limit int) int {
	if percent < 0 {
		return 0
	}
	if percent > limit {
		return limit
	}
	return percent
}
