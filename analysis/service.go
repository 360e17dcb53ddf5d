// Package analysis serves the rules engine and the stay-alive search
// over gRPC. Messages are JSON; the service is registered by hand, so
// no generated code is involved.
package analysis

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "santorini.Analysis"

type AnalysisServer interface {
	CheckTurn(context.Context, *CheckTurnRequest) (*CheckTurnResponse, error)
	LegalTurns(context.Context, *LegalTurnsRequest) (*LegalTurnsResponse, error)
	Score(context.Context, *ScoreRequest) (*ScoreResponse, error)
}

func Register(s grpc.ServiceRegistrar, srv AnalysisServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AnalysisServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckTurn", Handler: unary("CheckTurn", AnalysisServer.CheckTurn)},
		{MethodName: "LegalTurns", Handler: unary("LegalTurns", AnalysisServer.LegalTurns)},
		{MethodName: "Score", Handler: unary("Score", AnalysisServer.Score)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "santorini/analysis",
}

func methodName(m string) string {
	return "/" + serviceName + "/" + m
}

// unary adapts a method expression to a grpc method handler.
func unary[Req, Resp any](name string, m func(AnalysisServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(AnalysisServer)
		if interceptor == nil {
			return m(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: methodName(name),
		}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return m(s, ctx, req.(*Req))
		})
	}
}

// Client calls a remote Analysis service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	return c.cc.Invoke(ctx, methodName(method), in, out, opts...)
}

func (c *Client) CheckTurn(ctx context.Context, in *CheckTurnRequest, opts ...grpc.CallOption) (*CheckTurnResponse, error) {
	out := new(CheckTurnResponse)
	if err := c.invoke(ctx, "CheckTurn", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LegalTurns(ctx context.Context, in *LegalTurnsRequest, opts ...grpc.CallOption) (*LegalTurnsResponse, error) {
	out := new(LegalTurnsResponse)
	if err := c.invoke(ctx, "LegalTurns", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Score(ctx context.Context, in *ScoreRequest, opts ...grpc.CallOption) (*ScoreResponse, error) {
	out := new(ScoreResponse)
	if err := c.invoke(ctx, "Score", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
