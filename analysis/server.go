package analysis

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

const defaultMaxDepth = 3

type Server struct {
	// MaxDepth caps Score requests; the search is exponential in depth.
	MaxDepth int
}

func (s *Server) maxDepth() int {
	if s.MaxDepth == 0 {
		return defaultMaxDepth
	}
	return s.MaxDepth
}

func decode(wb wire.Board, rules Rules) (*santorini.Board, error) {
	b, err := wb.Decode(rules.config())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "board: %v", err)
	}
	return b, nil
}

func decodeTurn(parts []string) (santorini.Turn, error) {
	t, err := wire.DecodeTurn(parts)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "turn: %v", err)
	}
	return t, nil
}

func (s *Server) CheckTurn(ctx context.Context, req *CheckTurnRequest) (*CheckTurnResponse, error) {
	b, err := decode(req.Board, req.Rules)
	if err != nil {
		return nil, err
	}
	t, err := decodeTurn(req.Turn)
	if err != nil {
		return nil, err
	}
	if err := b.CheckTurn(t, req.Player); err != nil {
		return &CheckTurnResponse{Reason: err.Error()}, nil
	}
	return &CheckTurnResponse{
		Legal: true,
		Won:   b.Apply(t[0]).HasWon(req.Player),
	}, nil
}

func (s *Server) LegalTurns(ctx context.Context, req *LegalTurnsRequest) (*LegalTurnsResponse, error) {
	b, err := decode(req.Board, req.Rules)
	if err != nil {
		return nil, err
	}
	resp := &LegalTurnsResponse{
		Turns: [][]string{},
		Lost:  b.HasLost(req.Player),
	}
	for _, t := range ai.LegalTurns(req.Player, b) {
		parts, err := wire.EncodeTurn(t)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "encode %s: %v", t, err)
		}
		resp.Turns = append(resp.Turns, parts)
	}
	return resp, nil
}

func (s *Server) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	if req.Depth < 0 || req.Depth > s.maxDepth() {
		return nil, status.Errorf(codes.InvalidArgument, "depth %d out of range [0, %d]", req.Depth, s.maxDepth())
	}
	b, err := decode(req.Board, req.Rules)
	if err != nil {
		return nil, err
	}
	t, err := decodeTurn(req.Turn)
	if err != nil {
		return nil, err
	}
	cfg := ai.SearchConfig{Depth: req.Depth}
	if req.Minimax {
		cfg.Mode = ai.Minimax
	}
	sr := ai.NewSearcher(cfg)
	score := sr.Score(t, b)
	return &ScoreResponse{Score: score, Visited: sr.Stats().Visited}, nil
}

// LogUnary logs every call with its duration and status code.
func LogUnary(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", info.FullMethod).
			Stringer("code", status.Code(err)).
			Dur("elapsed", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}
