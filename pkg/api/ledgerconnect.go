package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "splitmate.v1.LedgerService"
)

const (
	LedgerServiceAddFriendProcedure        = "/splitmate.v1.LedgerService/AddFriend"
	LedgerServiceListFriendsProcedure      = "/splitmate.v1.LedgerService/ListFriends"
	LedgerServiceDeleteFriendProcedure     = "/splitmate.v1.LedgerService/DeleteFriend"
	LedgerServiceAddExpenseProcedure       = "/splitmate.v1.LedgerService/AddExpense"
	LedgerServiceDeleteExpenseProcedure    = "/splitmate.v1.LedgerService/DeleteExpense"
	LedgerServiceRecordSettlementProcedure = "/splitmate.v1.LedgerService/RecordSettlement"
	LedgerServiceDeleteSettlementProcedure = "/splitmate.v1.LedgerService/DeleteSettlement"
	LedgerServiceGetHistoryProcedure       = "/splitmate.v1.LedgerService/GetHistory"
)

// LedgerServiceClient is a client for the splitmate.v1.LedgerService service.
type LedgerServiceClient interface {
	AddFriend(context.Context, *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error)
	ListFriends(context.Context, *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[DeleteFriendRequest]) (*connect.Response[DeleteFriendResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error)
	GetHistory(context.Context, *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitmate.v1.LedgerService
// service. Requests are sent with the JSON codec.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{clientCodec()}, opts...)
	return &ledgerServiceClient{
		addFriend:        connect.NewClient[AddFriendRequest, AddFriendResponse](httpClient, baseURL+LedgerServiceAddFriendProcedure, opts...),
		listFriends:      connect.NewClient[ListFriendsRequest, ListFriendsResponse](httpClient, baseURL+LedgerServiceListFriendsProcedure, opts...),
		deleteFriend:     connect.NewClient[DeleteFriendRequest, DeleteFriendResponse](httpClient, baseURL+LedgerServiceDeleteFriendProcedure, opts...),
		addExpense:       connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		deleteExpense:    connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		recordSettlement: connect.NewClient[RecordSettlementRequest, RecordSettlementResponse](httpClient, baseURL+LedgerServiceRecordSettlementProcedure, opts...),
		deleteSettlement: connect.NewClient[DeleteSettlementRequest, DeleteSettlementResponse](httpClient, baseURL+LedgerServiceDeleteSettlementProcedure, opts...),
		getHistory:       connect.NewClient[GetHistoryRequest, GetHistoryResponse](httpClient, baseURL+LedgerServiceGetHistoryProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addFriend        *connect.Client[AddFriendRequest, AddFriendResponse]
	listFriends      *connect.Client[ListFriendsRequest, ListFriendsResponse]
	deleteFriend     *connect.Client[DeleteFriendRequest, DeleteFriendResponse]
	addExpense       *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense    *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	recordSettlement *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	deleteSettlement *connect.Client[DeleteSettlementRequest, DeleteSettlementResponse]
	getHistory       *connect.Client[GetHistoryRequest, GetHistoryResponse]
}

func (c *ledgerServiceClient) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListFriends(ctx context.Context, req *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteFriend(ctx context.Context, req *connect.Request[DeleteFriendRequest]) (*connect.Response[DeleteFriendResponse], error) {
	return c.deleteFriend.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetHistory(ctx context.Context, req *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error) {
	return c.getHistory.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by servers of splitmate.v1.LedgerService.
type LedgerServiceHandler interface {
	AddFriend(context.Context, *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error)
	ListFriends(context.Context, *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[DeleteFriendRequest]) (*connect.Response[DeleteFriendResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error)
	GetHistory(context.Context, *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	routes := map[string]http.Handler{
		LedgerServiceAddFriendProcedure:        connect.NewUnaryHandler(LedgerServiceAddFriendProcedure, svc.AddFriend, opts...),
		LedgerServiceListFriendsProcedure:      connect.NewUnaryHandler(LedgerServiceListFriendsProcedure, svc.ListFriends, opts...),
		LedgerServiceDeleteFriendProcedure:     connect.NewUnaryHandler(LedgerServiceDeleteFriendProcedure, svc.DeleteFriend, opts...),
		LedgerServiceAddExpenseProcedure:       connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceDeleteExpenseProcedure:    connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		LedgerServiceRecordSettlementProcedure: connect.NewUnaryHandler(LedgerServiceRecordSettlementProcedure, svc.RecordSettlement, opts...),
		LedgerServiceDeleteSettlementProcedure: connect.NewUnaryHandler(LedgerServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...),
		LedgerServiceGetHistoryProcedure:       connect.NewUnaryHandler(LedgerServiceGetHistoryProcedure, svc.GetHistory, opts...),
	}
	return "/" + LedgerServiceName + "/", route(routes)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) AddFriend(context.Context, *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.AddFriend is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListFriends(context.Context, *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.ListFriends is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteFriend(context.Context, *connect.Request[DeleteFriendRequest]) (*connect.Response[DeleteFriendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.DeleteFriend is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.AddExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.DeleteExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.RecordSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.DeleteSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetHistory(context.Context, *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.LedgerService.GetHistory is not implemented"))
}

// route dispatches on the full procedure path.
func route(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
