package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/idgen"
	"github.com/mmynk/tipsplit/internal/metrics"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/roster"
	"github.com/mmynk/tipsplit/internal/storage"
	"github.com/mmynk/tipsplit/pkg/splitapi"
	"github.com/mmynk/tipsplit/pkg/splitapi/splitapiconnect"
)

// SplitService implements the Connect SplitService
type SplitService struct {
	splitapiconnect.UnimplementedSplitServiceHandler
	store      storage.Store
	opts       roster.Options
	defaultTip int
	metrics    *metrics.Metrics

	// mu serialises session edits so each one is loaded, applied and saved
	// before the next starts.
	mu sync.Mutex
}

// Option configures a SplitService.
type Option func(*SplitService)

// WithMetrics records calculations and session counts on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SplitService) { s.metrics = m }
}

// WithTipRange sets the slider maximum and the tip new sessions start with.
func WithTipRange(maxPercent, defaultPercent int) Option {
	return func(s *SplitService) {
		s.opts.MaxTipPercent = maxPercent
		s.defaultTip = defaultPercent
	}
}

// WithIDGenerator sets the generator used for participant IDs.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *SplitService) { s.opts.IDs = g }
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store, opts ...Option) *SplitService {
	s := &SplitService{
		store:      store,
		defaultTip: roster.DefaultTipPercentage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncSessionCount sets the sessions gauge to the number of stored sessions.
func (s *SplitService) SyncSessionCount(ctx context.Context) error {
	if s.metrics == nil {
		return nil
	}
	n, err := s.store.CountBills(ctx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	s.metrics.Sessions.Set(float64(n))
	return nil
}

func (s *SplitService) syncSessionCount(ctx context.Context) {
	if err := s.SyncSessionCount(ctx); err != nil {
		slog.Warn("Failed to refresh session gauge", "error", err)
	}
}

// editOutcome is the state of a session after an edit.
type editOutcome struct {
	bill    *models.Bill
	session *roster.Session
	result  models.DistributionResult
	changes []models.ShareChange
}

func (o *editOutcome) response() *splitapi.SessionResponse {
	return &splitapi.SessionResponse{
		Session: sessionToAPI(o.bill, o.session),
		Result:  resultToAPI(o.result),
		Changes: changesToAPI(o.changes),
	}
}

// edit loads a session, applies one mutation, saves it and recomputes.
func (s *SplitService) edit(ctx context.Context, op, sessionID string, apply func(*roster.Session) error) (*editOutcome, error) {
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.store.GetBill(ctx, sessionID)
	if err != nil {
		return nil, s.fail(op, sessionID, err)
	}
	sess, err := roster.Restore(bill.BillState, s.opts)
	if err != nil {
		return nil, s.fail(op, sessionID, err)
	}

	prev := sess.Result()
	if err := apply(sess); err != nil {
		return nil, s.fail(op, sessionID, err)
	}

	bill.BillState = sess.State()
	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, s.fail(op, sessionID, err)
	}

	next := sess.Result()
	s.metrics.ObserveResult(next)
	if next.IsOverflow && !prev.IsOverflow {
		slog.Warn("Locked amounts exceed total",
			"session_id", sessionID,
			"grand_total", next.GrandTotal,
		)
	}

	return &editOutcome{
		bill:    bill,
		session: sess,
		result:  next,
		changes: roster.Diff(prev, next),
	}, nil
}

// fail logs err and converts it to a Connect error.
func (s *SplitService) fail(op, sessionID string, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, roster.ErrUnknownParticipant):
		code = connect.CodeNotFound
	case errors.Is(err, roster.ErrEmptyRoster):
		code = connect.CodeInvalidArgument
	}

	if code == connect.CodeInternal {
		slog.Error(op+" failed", "session_id", sessionID, "error", err)
	} else {
		slog.Debug(op+" rejected", "session_id", sessionID, "error", err)
	}
	return connect.NewError(code, err)
}

// CalculateSplit computes a distribution without creating a session.
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[splitapi.CalculateSplitRequest]) (*connect.Response[splitapi.CalculateSplitResponse], error) {
	state := models.BillState{
		BillTotal:     req.Msg.BillTotal,
		TipPercentage: req.Msg.TipPercentage,
		Participants:  participantsFromAPI(req.Msg.Participants),
	}

	sess, err := roster.Restore(state, s.opts)
	if err != nil {
		slog.Debug("CalculateSplit rejected", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	result := sess.Result()
	s.metrics.ObserveResult(result)
	slog.Debug("Split calculated",
		"participants", len(result.Shares),
		"grand_total", result.GrandTotal,
		"overflow", result.IsOverflow,
	)

	return connect.NewResponse(&splitapi.CalculateSplitResponse{
		Result: resultToAPI(result),
	}), nil
}

// CreateSession starts a new bill with the default roster or the given names.
func (s *SplitService) CreateSession(ctx context.Context, req *connect.Request[splitapi.CreateSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	var sess *roster.Session
	if len(req.Msg.Names) == 0 {
		sess = roster.New(s.opts)
	} else {
		participants := make([]models.Participant, len(req.Msg.Names))
		for i, name := range req.Msg.Names {
			participants[i] = models.Participant{Name: name}
		}
		var err error
		sess, err = roster.Restore(models.BillState{Participants: participants}, s.opts)
		if err != nil {
			return nil, s.fail("CreateSession", "", err)
		}
	}

	sess.SetTipPercentage(s.defaultTip)
	if req.Msg.TipPercentage != nil {
		sess.SetTipPercentage(*req.Msg.TipPercentage)
	}
	if req.Msg.BillTotal != nil {
		sess.SetBillTotal(*req.Msg.BillTotal)
	}

	bill := &models.Bill{
		Title:     req.Msg.Title,
		BillState: sess.State(),
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, s.fail("CreateSession", "", err)
	}
	s.syncSessionCount(ctx)
	slog.Info("Session created", "session_id", bill.ID, "participants", len(bill.Participants))

	result := sess.Result()
	s.metrics.ObserveResult(result)
	out := &editOutcome{
		bill:    bill,
		session: sess,
		result:  result,
		changes: roster.Diff(models.DistributionResult{}, result),
	}
	return connect.NewResponse(out.response()), nil
}

// GetSession returns the current state and distribution of a session.
func (s *SplitService) GetSession(ctx context.Context, req *connect.Request[splitapi.GetSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	if req.Msg.SessionID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id required"))
	}

	bill, err := s.store.GetBill(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, s.fail("GetSession", req.Msg.SessionID, err)
	}
	sess, err := roster.Restore(bill.BillState, s.opts)
	if err != nil {
		return nil, s.fail("GetSession", req.Msg.SessionID, err)
	}

	out := &editOutcome{bill: bill, session: sess, result: sess.Result()}
	return connect.NewResponse(out.response()), nil
}

// SetBillTotal sets the bill total and unlocks every participant.
func (s *SplitService) SetBillTotal(ctx context.Context, req *connect.Request[splitapi.SetBillTotalRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	out, err := s.edit(ctx, "SetBillTotal", req.Msg.SessionID, func(sess *roster.Session) error {
		sess.SetBillTotal(req.Msg.BillTotal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(out.response()), nil
}

// SetTipPercentage sets the tip and unlocks every participant.
func (s *SplitService) SetTipPercentage(ctx context.Context, req *connect.Request[splitapi.SetTipPercentageRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	out, err := s.edit(ctx, "SetTipPercentage", req.Msg.SessionID, func(sess *roster.Session) error {
		sess.SetTipPercentage(req.Msg.TipPercentage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(out.response()), nil
}

// AddParticipant appends a participant to the roster.
func (s *SplitService) AddParticipant(ctx context.Context, req *connect.Request[splitapi.AddParticipantRequest]) (*connect.Response[splitapi.AddParticipantResponse], error) {
	var added models.Participant
	out, err := s.edit(ctx, "AddParticipant", req.Msg.SessionID, func(sess *roster.Session) error {
		added = sess.AddParticipant(req.Msg.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&splitapi.AddParticipantResponse{
		SessionResponse: *out.response(),
		Participant:     participantToAPI(added),
	}), nil
}

// RenameParticipant changes a participant's name.
func (s *SplitService) RenameParticipant(ctx context.Context, req *connect.Request[splitapi.RenameParticipantRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	out, err := s.edit(ctx, "RenameParticipant", req.Msg.SessionID, func(sess *roster.Session) error {
		return sess.RenameParticipant(req.Msg.ParticipantID, req.Msg.Name)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(out.response()), nil
}

// LockAmount overrides one participant's amount.
func (s *SplitService) LockAmount(ctx context.Context, req *connect.Request[splitapi.LockAmountRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	out, err := s.edit(ctx, "LockAmount", req.Msg.SessionID, func(sess *roster.Session) error {
		return sess.LockAmount(req.Msg.ParticipantID, req.Msg.Amount)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(out.response()), nil
}

// RemoveParticipant removes a participant unless it is the last one.
func (s *SplitService) RemoveParticipant(ctx context.Context, req *connect.Request[splitapi.RemoveParticipantRequest]) (*connect.Response[splitapi.RemoveParticipantResponse], error) {
	var removed bool
	out, err := s.edit(ctx, "RemoveParticipant", req.Msg.SessionID, func(sess *roster.Session) error {
		var err error
		removed, err = sess.RemoveParticipant(req.Msg.ParticipantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !removed {
		slog.Debug("Kept last participant", "session_id", req.Msg.SessionID, "participant_id", req.Msg.ParticipantID)
	}
	return connect.NewResponse(&splitapi.RemoveParticipantResponse{
		SessionResponse: *out.response(),
		Removed:         removed,
	}), nil
}

// DeleteSession drops a session.
func (s *SplitService) DeleteSession(ctx context.Context, req *connect.Request[splitapi.DeleteSessionRequest]) (*connect.Response[splitapi.DeleteSessionResponse], error) {
	if req.Msg.SessionID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteBill(ctx, req.Msg.SessionID); err != nil {
		return nil, s.fail("DeleteSession", req.Msg.SessionID, err)
	}
	s.syncSessionCount(ctx)
	slog.Info("Session deleted", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&splitapi.DeleteSessionResponse{}), nil
}
