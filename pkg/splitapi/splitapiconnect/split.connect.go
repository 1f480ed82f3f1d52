// Package splitapiconnect wires tipsplit.v1.SplitService onto Connect.
//
// The messages in package splitapi are plain structs, so both handlers and
// clients are configured with a JSON codec instead of the protobuf defaults.
package splitapiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/pkg/splitapi"
)

// SplitServiceName is the fully-qualified name of the SplitService service.
const SplitServiceName = "tipsplit.v1.SplitService"

// Procedure paths, in the form "/service/method".
const (
	SplitServiceCalculateSplitProcedure    = "/tipsplit.v1.SplitService/CalculateSplit"
	SplitServiceCreateSessionProcedure     = "/tipsplit.v1.SplitService/CreateSession"
	SplitServiceGetSessionProcedure        = "/tipsplit.v1.SplitService/GetSession"
	SplitServiceSetBillTotalProcedure      = "/tipsplit.v1.SplitService/SetBillTotal"
	SplitServiceSetTipPercentageProcedure  = "/tipsplit.v1.SplitService/SetTipPercentage"
	SplitServiceAddParticipantProcedure    = "/tipsplit.v1.SplitService/AddParticipant"
	SplitServiceRenameParticipantProcedure = "/tipsplit.v1.SplitService/RenameParticipant"
	SplitServiceLockAmountProcedure        = "/tipsplit.v1.SplitService/LockAmount"
	SplitServiceRemoveParticipantProcedure = "/tipsplit.v1.SplitService/RemoveParticipant"
	SplitServiceDeleteSessionProcedure     = "/tipsplit.v1.SplitService/DeleteSession"
)

// SplitServiceHandler is implemented by the server.
type SplitServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[splitapi.CalculateSplitRequest]) (*connect.Response[splitapi.CalculateSplitResponse], error)
	CreateSession(context.Context, *connect.Request[splitapi.CreateSessionRequest]) (*connect.Response[splitapi.SessionResponse], error)
	GetSession(context.Context, *connect.Request[splitapi.GetSessionRequest]) (*connect.Response[splitapi.SessionResponse], error)
	SetBillTotal(context.Context, *connect.Request[splitapi.SetBillTotalRequest]) (*connect.Response[splitapi.SessionResponse], error)
	SetTipPercentage(context.Context, *connect.Request[splitapi.SetTipPercentageRequest]) (*connect.Response[splitapi.SessionResponse], error)
	AddParticipant(context.Context, *connect.Request[splitapi.AddParticipantRequest]) (*connect.Response[splitapi.AddParticipantResponse], error)
	RenameParticipant(context.Context, *connect.Request[splitapi.RenameParticipantRequest]) (*connect.Response[splitapi.SessionResponse], error)
	LockAmount(context.Context, *connect.Request[splitapi.LockAmountRequest]) (*connect.Response[splitapi.SessionResponse], error)
	RemoveParticipant(context.Context, *connect.Request[splitapi.RemoveParticipantRequest]) (*connect.Response[splitapi.RemoveParticipantResponse], error)
	DeleteSession(context.Context, *connect.Request[splitapi.DeleteSessionRequest]) (*connect.Response[splitapi.DeleteSessionResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		SplitServiceCalculateSplitProcedure:    connect.NewUnaryHandler(SplitServiceCalculateSplitProcedure, svc.CalculateSplit, opts...),
		SplitServiceCreateSessionProcedure:     connect.NewUnaryHandler(SplitServiceCreateSessionProcedure, svc.CreateSession, opts...),
		SplitServiceGetSessionProcedure:        connect.NewUnaryHandler(SplitServiceGetSessionProcedure, svc.GetSession, opts...),
		SplitServiceSetBillTotalProcedure:      connect.NewUnaryHandler(SplitServiceSetBillTotalProcedure, svc.SetBillTotal, opts...),
		SplitServiceSetTipPercentageProcedure:  connect.NewUnaryHandler(SplitServiceSetTipPercentageProcedure, svc.SetTipPercentage, opts...),
		SplitServiceAddParticipantProcedure:    connect.NewUnaryHandler(SplitServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		SplitServiceRenameParticipantProcedure: connect.NewUnaryHandler(SplitServiceRenameParticipantProcedure, svc.RenameParticipant, opts...),
		SplitServiceLockAmountProcedure:        connect.NewUnaryHandler(SplitServiceLockAmountProcedure, svc.LockAmount, opts...),
		SplitServiceRemoveParticipantProcedure: connect.NewUnaryHandler(SplitServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		SplitServiceDeleteSessionProcedure:     connect.NewUnaryHandler(SplitServiceDeleteSessionProcedure, svc.DeleteSession, opts...),
	}

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// SplitServiceClient is a client for tipsplit.v1.SplitService.
type SplitServiceClient interface {
	CalculateSplit(context.Context, *connect.Request[splitapi.CalculateSplitRequest]) (*connect.Response[splitapi.CalculateSplitResponse], error)
	CreateSession(context.Context, *connect.Request[splitapi.CreateSessionRequest]) (*connect.Response[splitapi.SessionResponse], error)
	GetSession(context.Context, *connect.Request[splitapi.GetSessionRequest]) (*connect.Response[splitapi.SessionResponse], error)
	SetBillTotal(context.Context, *connect.Request[splitapi.SetBillTotalRequest]) (*connect.Response[splitapi.SessionResponse], error)
	SetTipPercentage(context.Context, *connect.Request[splitapi.SetTipPercentageRequest]) (*connect.Response[splitapi.SessionResponse], error)
	AddParticipant(context.Context, *connect.Request[splitapi.AddParticipantRequest]) (*connect.Response[splitapi.AddParticipantResponse], error)
	RenameParticipant(context.Context, *connect.Request[splitapi.RenameParticipantRequest]) (*connect.Response[splitapi.SessionResponse], error)
	LockAmount(context.Context, *connect.Request[splitapi.LockAmountRequest]) (*connect.Response[splitapi.SessionResponse], error)
	RemoveParticipant(context.Context, *connect.Request[splitapi.RemoveParticipantRequest]) (*connect.Response[splitapi.RemoveParticipantResponse], error)
	DeleteSession(context.Context, *connect.Request[splitapi.DeleteSessionRequest]) (*connect.Response[splitapi.DeleteSessionResponse], error)
}

// NewSplitServiceClient constructs a client. baseURL is the server root, for
// example http://localhost:8080.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &splitServiceClient{
		calculateSplit:    connect.NewClient[splitapi.CalculateSplitRequest, splitapi.CalculateSplitResponse](httpClient, baseURL+SplitServiceCalculateSplitProcedure, opts...),
		createSession:     connect.NewClient[splitapi.CreateSessionRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceCreateSessionProcedure, opts...),
		getSession:        connect.NewClient[splitapi.GetSessionRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceGetSessionProcedure, opts...),
		setBillTotal:      connect.NewClient[splitapi.SetBillTotalRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceSetBillTotalProcedure, opts...),
		setTipPercentage:  connect.NewClient[splitapi.SetTipPercentageRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceSetTipPercentageProcedure, opts...),
		addParticipant:    connect.NewClient[splitapi.AddParticipantRequest, splitapi.AddParticipantResponse](httpClient, baseURL+SplitServiceAddParticipantProcedure, opts...),
		renameParticipant: connect.NewClient[splitapi.RenameParticipantRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceRenameParticipantProcedure, opts...),
		lockAmount:        connect.NewClient[splitapi.LockAmountRequest, splitapi.SessionResponse](httpClient, baseURL+SplitServiceLockAmountProcedure, opts...),
		removeParticipant: connect.NewClient[splitapi.RemoveParticipantRequest, splitapi.RemoveParticipantResponse](httpClient, baseURL+SplitServiceRemoveParticipantProcedure, opts...),
		deleteSession:     connect.NewClient[splitapi.DeleteSessionRequest, splitapi.DeleteSessionResponse](httpClient, baseURL+SplitServiceDeleteSessionProcedure, opts...),
	}
}

type splitServiceClient struct {
	calculateSplit    *connect.Client[splitapi.CalculateSplitRequest, splitapi.CalculateSplitResponse]
	createSession     *connect.Client[splitapi.CreateSessionRequest, splitapi.SessionResponse]
	getSession        *connect.Client[splitapi.GetSessionRequest, splitapi.SessionResponse]
	setBillTotal      *connect.Client[splitapi.SetBillTotalRequest, splitapi.SessionResponse]
	setTipPercentage  *connect.Client[splitapi.SetTipPercentageRequest, splitapi.SessionResponse]
	addParticipant    *connect.Client[splitapi.AddParticipantRequest, splitapi.AddParticipantResponse]
	renameParticipant *connect.Client[splitapi.RenameParticipantRequest, splitapi.SessionResponse]
	lockAmount        *connect.Client[splitapi.LockAmountRequest, splitapi.SessionResponse]
	removeParticipant *connect.Client[splitapi.RemoveParticipantRequest, splitapi.RemoveParticipantResponse]
	deleteSession     *connect.Client[splitapi.DeleteSessionRequest, splitapi.DeleteSessionResponse]
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[splitapi.CalculateSplitRequest]) (*connect.Response[splitapi.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) CreateSession(ctx context.Context, req *connect.Request[splitapi.CreateSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetSession(ctx context.Context, req *connect.Request[splitapi.GetSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *splitServiceClient) SetBillTotal(ctx context.Context, req *connect.Request[splitapi.SetBillTotalRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.setBillTotal.CallUnary(ctx, req)
}

func (c *splitServiceClient) SetTipPercentage(ctx context.Context, req *connect.Request[splitapi.SetTipPercentageRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.setTipPercentage.CallUnary(ctx, req)
}

func (c *splitServiceClient) AddParticipant(ctx context.Context, req *connect.Request[splitapi.AddParticipantRequest]) (*connect.Response[splitapi.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *splitServiceClient) RenameParticipant(ctx context.Context, req *connect.Request[splitapi.RenameParticipantRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.renameParticipant.CallUnary(ctx, req)
}

func (c *splitServiceClient) LockAmount(ctx context.Context, req *connect.Request[splitapi.LockAmountRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return c.lockAmount.CallUnary(ctx, req)
}

func (c *splitServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[splitapi.RemoveParticipantRequest]) (*connect.Response[splitapi.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteSession(ctx context.Context, req *connect.Request[splitapi.DeleteSessionRequest]) (*connect.Response[splitapi.DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
// Embed it to stay forward compatible when procedures are added.
type UnimplementedSplitServiceHandler struct{}

var errUnimplemented = errors.New("procedure not implemented")

func (UnimplementedSplitServiceHandler) CalculateSplit(context.Context, *connect.Request[splitapi.CalculateSplitRequest]) (*connect.Response[splitapi.CalculateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) CreateSession(context.Context, *connect.Request[splitapi.CreateSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) GetSession(context.Context, *connect.Request[splitapi.GetSessionRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) SetBillTotal(context.Context, *connect.Request[splitapi.SetBillTotalRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) SetTipPercentage(context.Context, *connect.Request[splitapi.SetTipPercentageRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) AddParticipant(context.Context, *connect.Request[splitapi.AddParticipantRequest]) (*connect.Response[splitapi.AddParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) RenameParticipant(context.Context, *connect.Request[splitapi.RenameParticipantRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) LockAmount(context.Context, *connect.Request[splitapi.LockAmountRequest]) (*connect.Response[splitapi.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) RemoveParticipant(context.Context, *connect.Request[splitapi.RemoveParticipantRequest]) (*connect.Response[splitapi.RemoveParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedSplitServiceHandler) DeleteSession(context.Context, *connect.Request[splitapi.DeleteSessionRequest]) (*connect.Response[splitapi.DeleteSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
