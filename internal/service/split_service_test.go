package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tipsplit/internal/idgen"
	"github.com/mmynk/tipsplit/internal/metrics"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/roster"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/splitapi"
	"github.com/mmynk/tipsplit/pkg/splitapi/splitapiconnect"
)

// setupTestServer creates a test server backed by a fresh in-memory store.
func setupTestServer(t *testing.T, opts ...Option) (splitapiconnect.SplitServiceClient, *metrics.Metrics) {
	t.Helper()

	store, err := sqlite.New()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	opts = append([]Option{WithMetrics(m), WithIDGenerator(idgen.NewCounter("p"))}, opts...)
	svc := NewSplitService(store, opts...)

	path, handler := splitapiconnect.NewSplitServiceHandler(svc,
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return splitapiconnect.NewSplitServiceClient(http.DefaultClient, server.URL), m
}

func createSession(t *testing.T, client splitapiconnect.SplitServiceClient, req *splitapi.CreateSessionRequest) *splitapi.SessionResponse {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg
}

func ptr[T any](v T) *T { return &v }

func assertAmounts(t *testing.T, result *splitapi.Result, want ...float64) {
	t.Helper()
	if len(result.Shares) != len(want) {
		t.Fatalf("expected %d shares, got %d", len(want), len(result.Shares))
	}
	for i, share := range result.Shares {
		if math.Abs(share.Amount-want[i]) > 0.001 {
			t.Errorf("share %d (%s): expected %v, got %v", i, share.Name, want[i], share.Amount)
		}
	}
}

func TestCalculateSplit_EqualSplit(t *testing.T) {
	client, m := setupTestServer(t)

	resp, err := client.CalculateSplit(context.Background(), connect.NewRequest(&splitapi.CalculateSplitRequest{
		BillTotal:     100,
		TipPercentage: 15,
		Participants:  []*splitapi.Participant{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	result := resp.Msg.Result
	if math.Abs(result.TipAmount-15) > 0.001 || math.Abs(result.GrandTotal-115) > 0.001 {
		t.Errorf("expected tip 15 / total 115, got %v / %v", result.TipAmount, result.GrandTotal)
	}
	assertAmounts(t, result, 57.5, 57.5)
	if result.Shares[0].SharePercent != 50 {
		t.Errorf("expected 50%% share, got %d", result.Shares[0].SharePercent)
	}
	if got := testutil.ToFloat64(m.Distributions); got != 1 {
		t.Errorf("expected 1 distribution recorded, got %v", got)
	}
}

func TestCalculateSplit_Overflow(t *testing.T) {
	client, m := setupTestServer(t)

	resp, err := client.CalculateSplit(context.Background(), connect.NewRequest(&splitapi.CalculateSplitRequest{
		BillTotal:     100,
		TipPercentage: 0,
		Participants: []*splitapi.Participant{
			{ID: "a", Name: "A", IsLocked: true, LockedAmount: 200},
			{ID: "b", Name: "B"},
			{ID: "c", Name: "C"},
		},
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	if !resp.Msg.Result.IsOverflow {
		t.Error("expected overflow")
	}
	assertAmounts(t, resp.Msg.Result, 200, 0, 0)
	if got := testutil.ToFloat64(m.Overflows); got != 1 {
		t.Errorf("expected 1 overflow recorded, got %v", got)
	}
}

func TestHugeAmountsAreCapped(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.CalculateSplit(ctx, connect.NewRequest(&splitapi.CalculateSplitRequest{
		BillTotal:     1e308,
		TipPercentage: 100,
		Participants:  []*splitapi.Participant{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}
	if got := resp.Msg.Result.GrandTotal; got != 2*roster.MaxAmount {
		t.Errorf("expected grand total %v, got %v", 2*roster.MaxAmount, got)
	}
	assertAmounts(t, resp.Msg.Result, roster.MaxAmount, roster.MaxAmount)

	id := createSession(t, client, &splitapi.CreateSessionRequest{}).Session.ID
	edited, err := client.SetBillTotal(ctx, connect.NewRequest(&splitapi.SetBillTotalRequest{SessionID: id, BillTotal: math.MaxFloat64}))
	if err != nil {
		t.Fatalf("SetBillTotal failed: %v", err)
	}
	if edited.Msg.Session.BillTotal != roster.MaxAmount {
		t.Errorf("expected bill total capped at %v, got %v", roster.MaxAmount, edited.Msg.Session.BillTotal)
	}
	if math.IsInf(edited.Msg.Result.GrandTotal, 0) {
		t.Error("grand total overflowed")
	}
}

func TestCalculateSplit_InvalidRoster(t *testing.T) {
	client, _ := setupTestServer(t)

	tests := []struct {
		name         string
		participants []*splitapi.Participant
	}{
		{"no participants", nil},
		{"duplicate ids", []*splitapi.Participant{{ID: "a"}, {ID: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CalculateSplit(context.Background(), connect.NewRequest(&splitapi.CalculateSplitRequest{
				BillTotal:    10,
				Participants: tt.participants,
			}))
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestCreateSession_Defaults(t *testing.T) {
	client, m := setupTestServer(t)

	resp := createSession(t, client, &splitapi.CreateSessionRequest{})

	sess := resp.Session
	if sess.ID == "" {
		t.Fatal("expected session ID")
	}
	if sess.BillTotal != 0 || sess.TipPercentage != 15 || sess.MaxTipPercent != 100 {
		t.Errorf("unexpected defaults: bill %v tip %d max %d", sess.BillTotal, sess.TipPercentage, sess.MaxTipPercent)
	}
	if len(sess.Participants) != 2 || sess.Participants[0].Name != "You" || sess.Participants[1].Name != "Friend" {
		t.Errorf("unexpected roster: %+v", sess.Participants)
	}
	if sess.Title != "Split with You, Friend" {
		t.Errorf("unexpected title: %s", sess.Title)
	}
	if !sess.CanRemove {
		t.Error("expected CanRemove with two participants")
	}
	if math.Abs(sess.SliderFillPercent-15) > 0.001 {
		t.Errorf("expected slider at 15%%, got %v", sess.SliderFillPercent)
	}
	if resp.Result.IsOverflow {
		t.Error("zero bill must not overflow")
	}
	assertAmounts(t, resp.Result, 0, 0)
	if len(resp.Changes) != 2 || resp.Changes[0].Kind != "added" {
		t.Errorf("expected two added changes, got %+v", resp.Changes)
	}
	if got := testutil.ToFloat64(m.Sessions); got != 1 {
		t.Errorf("expected 1 active session, got %v", got)
	}
}

func TestCreateSession_ConfiguredTipRange(t *testing.T) {
	client, _ := setupTestServer(t, WithTipRange(25, 18))

	resp := createSession(t, client, &splitapi.CreateSessionRequest{Names: []string{"Ann", "Ben", "Cy"}})
	if resp.Session.TipPercentage != 18 || resp.Session.MaxTipPercent != 25 {
		t.Errorf("expected tip 18 / max 25, got %d / %d", resp.Session.TipPercentage, resp.Session.MaxTipPercent)
	}
	if len(resp.Session.Participants) != 3 {
		t.Errorf("expected 3 participants, got %d", len(resp.Session.Participants))
	}

	resp = createSession(t, client, &splitapi.CreateSessionRequest{TipPercentage: ptr(90)})
	if resp.Session.TipPercentage != 25 {
		t.Errorf("expected tip clamped to 25, got %d", resp.Session.TipPercentage)
	}
}

func TestSession_LockAndRedistribute(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	created := createSession(t, client, &splitapi.CreateSessionRequest{BillTotal: ptr(100.0), TipPercentage: ptr(15)})
	id := created.Session.ID
	assertAmounts(t, created.Result, 57.5, 57.5)

	you := created.Session.Participants[0].ID
	resp, err := client.LockAmount(ctx, connect.NewRequest(&splitapi.LockAmountRequest{
		SessionID:     id,
		ParticipantID: you,
		Amount:        40,
	}))
	if err != nil {
		t.Fatalf("LockAmount failed: %v", err)
	}
	assertAmounts(t, resp.Msg.Result, 40, 75)
	if !resp.Msg.Result.Shares[0].Locked || !resp.Msg.Session.Participants[0].IsLocked {
		t.Error("expected first participant to be locked")
	}
	if len(resp.Msg.Changes) != 2 {
		t.Errorf("expected both shares to change, got %d changes", len(resp.Msg.Changes))
	}

	// The lock survives a reload.
	got, err := client.GetSession(ctx, connect.NewRequest(&splitapi.GetSessionRequest{SessionID: id}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	assertAmounts(t, got.Msg.Result, 40, 75)
}

func TestSession_BaseChangesUnlock(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	created := createSession(t, client, &splitapi.CreateSessionRequest{BillTotal: ptr(100.0)})
	id := created.Session.ID
	for _, p := range created.Session.Participants {
		if _, err := client.LockAmount(ctx, connect.NewRequest(&splitapi.LockAmountRequest{SessionID: id, ParticipantID: p.ID, Amount: 10})); err != nil {
			t.Fatalf("LockAmount failed: %v", err)
		}
	}

	resp, err := client.SetTipPercentage(ctx, connect.NewRequest(&splitapi.SetTipPercentageRequest{SessionID: id, TipPercentage: 20}))
	if err != nil {
		t.Fatalf("SetTipPercentage failed: %v", err)
	}
	for _, p := range resp.Msg.Session.Participants {
		if p.IsLocked {
			t.Errorf("participant %s still locked after tip change", p.ID)
		}
	}
	assertAmounts(t, resp.Msg.Result, 60, 60)

	if _, err := client.LockAmount(ctx, connect.NewRequest(&splitapi.LockAmountRequest{SessionID: id, ParticipantID: created.Session.Participants[1].ID, Amount: 1})); err != nil {
		t.Fatalf("LockAmount failed: %v", err)
	}
	resp, err = client.SetBillTotal(ctx, connect.NewRequest(&splitapi.SetBillTotalRequest{SessionID: id, BillTotal: 50}))
	if err != nil {
		t.Fatalf("SetBillTotal failed: %v", err)
	}
	for _, p := range resp.Msg.Session.Participants {
		if p.IsLocked {
			t.Errorf("participant %s still locked after bill change", p.ID)
		}
	}
	assertAmounts(t, resp.Msg.Result, 30, 30)
}

func TestSession_AddRenameRemove(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	created := createSession(t, client, &splitapi.CreateSessionRequest{BillTotal: ptr(90.0), TipPercentage: ptr(0)})
	id := created.Session.ID

	added, err := client.AddParticipant(ctx, connect.NewRequest(&splitapi.AddParticipantRequest{SessionID: id}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if added.Msg.Participant.Name != "Friend 2" {
		t.Errorf("expected 'Friend 2', got %q", added.Msg.Participant.Name)
	}
	assertAmounts(t, added.Msg.Result, 30, 30, 30)

	renamed, err := client.RenameParticipant(ctx, connect.NewRequest(&splitapi.RenameParticipantRequest{
		SessionID:     id,
		ParticipantID: added.Msg.Participant.ID,
		Name:          "Sam",
	}))
	if err != nil {
		t.Fatalf("RenameParticipant failed: %v", err)
	}
	if len(renamed.Msg.Changes) != 1 || renamed.Msg.Changes[0].Share.Name != "Sam" {
		t.Errorf("expected a single change for the rename, got %+v", renamed.Msg.Changes)
	}
	if renamed.Msg.Session.Title != "Split with You, Friend, Sam" {
		t.Errorf("expected title to follow the roster, got %q", renamed.Msg.Session.Title)
	}

	// Remove down to one participant, then the last removal is refused.
	ids := []string{created.Session.Participants[0].ID, created.Session.Participants[1].ID, added.Msg.Participant.ID}
	for i, pid := range ids {
		resp, err := client.RemoveParticipant(ctx, connect.NewRequest(&splitapi.RemoveParticipantRequest{SessionID: id, ParticipantID: pid}))
		if err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		wantRemoved := i < len(ids)-1
		if resp.Msg.Removed != wantRemoved {
			t.Errorf("remove %d: expected removed=%v", i, wantRemoved)
		}
		if !wantRemoved {
			if len(resp.Msg.Session.Participants) != 1 || resp.Msg.Session.CanRemove {
				t.Errorf("expected one non-removable participant, got %+v", resp.Msg.Session)
			}
			assertAmounts(t, resp.Msg.Result, 90)
		}
	}
}

func TestSession_Errors(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()
	id := createSession(t, client, &splitapi.CreateSessionRequest{}).Session.ID

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"get unknown session", func() error {
			_, err := client.GetSession(ctx, connect.NewRequest(&splitapi.GetSessionRequest{SessionID: "missing"}))
			return err
		}, connect.CodeNotFound},
		{"get without id", func() error {
			_, err := client.GetSession(ctx, connect.NewRequest(&splitapi.GetSessionRequest{}))
			return err
		}, connect.CodeInvalidArgument},
		{"lock unknown participant", func() error {
			_, err := client.LockAmount(ctx, connect.NewRequest(&splitapi.LockAmountRequest{SessionID: id, ParticipantID: "nobody", Amount: 1}))
			return err
		}, connect.CodeNotFound},
		{"edit unknown session", func() error {
			_, err := client.SetBillTotal(ctx, connect.NewRequest(&splitapi.SetBillTotalRequest{SessionID: "missing", BillTotal: 1}))
			return err
		}, connect.CodeNotFound},
		{"delete without id", func() error {
			_, err := client.DeleteSession(ctx, connect.NewRequest(&splitapi.DeleteSessionRequest{}))
			return err
		}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				t.Fatalf("expected connect error, got %v", err)
			}
			if connectErr.Code() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, connectErr.Code())
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	client, m := setupTestServer(t)
	ctx := context.Background()
	id := createSession(t, client, &splitapi.CreateSessionRequest{}).Session.ID

	if _, err := client.DeleteSession(ctx, connect.NewRequest(&splitapi.DeleteSessionRequest{SessionID: id})); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if got := testutil.ToFloat64(m.Sessions); got != 0 {
		t.Errorf("expected 0 active sessions, got %v", got)
	}

	_, err := client.GetSession(ctx, connect.NewRequest(&splitapi.GetSessionRequest{SessionID: id}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
}

func TestSyncSessionCount(t *testing.T) {
	store, err := sqlite.New()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, name := range []string{"A", "B"} {
		bill := &models.Bill{BillState: models.BillState{Participants: []models.Participant{{ID: "id-" + name, Name: name}}}}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	m := metrics.New(prometheus.NewRegistry())
	svc := NewSplitService(store, WithMetrics(m))
	if err := svc.SyncSessionCount(ctx); err != nil {
		t.Fatalf("SyncSessionCount failed: %v", err)
	}
	if got := testutil.ToFloat64(m.Sessions); got != 2 {
		t.Errorf("expected 2 sessions, got %v", got)
	}

	if _, err := svc.CreateSession(ctx, connect.NewRequest(&splitapi.CreateSessionRequest{})); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if got := testutil.ToFloat64(m.Sessions); got != 3 {
		t.Errorf("expected 3 sessions after create, got %v", got)
	}

	if err := NewSplitService(store).SyncSessionCount(ctx); err != nil {
		t.Errorf("expected no-op without metrics, got %v", err)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	client, m := setupTestServer(t)
	ctx := context.Background()

	createSession(t, client, &splitapi.CreateSessionRequest{})
	client.GetSession(ctx, connect.NewRequest(&splitapi.GetSessionRequest{SessionID: "missing"}))

	ok := testutil.ToFloat64(m.RPCRequests.WithLabelValues(splitapiconnect.SplitServiceCreateSessionProcedure, "ok"))
	notFound := testutil.ToFloat64(m.RPCRequests.WithLabelValues(splitapiconnect.SplitServiceGetSessionProcedure, connect.CodeNotFound.String()))
	if ok != 1 || notFound != 1 {
		t.Errorf("expected one ok and one not_found call, got %v and %v", ok, notFound)
	}
}
