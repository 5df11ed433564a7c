package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// BalanceServiceName is the fully-qualified name of the BalanceService service.
	BalanceServiceName = "splitmate.v1.BalanceService"
)

const (
	BalanceServiceGetDashboardProcedure      = "/splitmate.v1.BalanceService/GetDashboard"
	BalanceServiceGetMonthlySummaryProcedure = "/splitmate.v1.BalanceService/GetMonthlySummary"
)

// BalanceServiceClient is a client for the splitmate.v1.BalanceService service.
type BalanceServiceClient interface {
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
	GetMonthlySummary(context.Context, *connect.Request[GetMonthlySummaryRequest]) (*connect.Response[GetMonthlySummaryResponse], error)
}

// NewBalanceServiceClient constructs a client for the splitmate.v1.BalanceService service.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{clientCodec()}, opts...)
	return &balanceServiceClient{
		getDashboard:      connect.NewClient[GetDashboardRequest, GetDashboardResponse](httpClient, baseURL+BalanceServiceGetDashboardProcedure, opts...),
		getMonthlySummary: connect.NewClient[GetMonthlySummaryRequest, GetMonthlySummaryResponse](httpClient, baseURL+BalanceServiceGetMonthlySummaryProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getDashboard      *connect.Client[GetDashboardRequest, GetDashboardResponse]
	getMonthlySummary *connect.Client[GetMonthlySummaryRequest, GetMonthlySummaryResponse]
}

func (c *balanceServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetMonthlySummary(ctx context.Context, req *connect.Request[GetMonthlySummaryRequest]) (*connect.Response[GetMonthlySummaryResponse], error) {
	return c.getMonthlySummary.CallUnary(ctx, req)
}

// BalanceServiceHandler is implemented by servers of splitmate.v1.BalanceService.
type BalanceServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
	GetMonthlySummary(context.Context, *connect.Request[GetMonthlySummaryRequest]) (*connect.Response[GetMonthlySummaryResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	routes := map[string]http.Handler{
		BalanceServiceGetDashboardProcedure:      connect.NewUnaryHandler(BalanceServiceGetDashboardProcedure, svc.GetDashboard, opts...),
		BalanceServiceGetMonthlySummaryProcedure: connect.NewUnaryHandler(BalanceServiceGetMonthlySummaryProcedure, svc.GetMonthlySummary, opts...),
	}
	return "/" + BalanceServiceName + "/", route(routes)
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.BalanceService.GetDashboard is not implemented"))
}

func (UnimplementedBalanceServiceHandler) GetMonthlySummary(context.Context, *connect.Request[GetMonthlySummaryRequest]) (*connect.Response[GetMonthlySummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitmate.v1.BalanceService.GetMonthlySummary is not implemented"))
}
