package relay

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

// Dial joins the hub at base (e.g. "ws://localhost:8080") as name.
func Dial(ctx context.Context, base, name string) (*websocket.Conn, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath("join", name)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (%s)", u, err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	return conn, nil
}

type ClientConfig struct {
	// Board configures decoding of the boards the hub sends; its shape
	// always comes from the message.
	Board santorini.Config
	Log   zerolog.Logger
}

// Serve answers the hub's requests on conn with p's decisions until
// the hub closes the connection or ctx is done. p's errors are
// reported to the hub, which treats them as forfeits.
func Serve(ctx context.Context, conn *websocket.Conn, p ai.Player, cfg ClientConfig) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		cfg.Log.Debug().Str("op", string(req.Op)).Msg("request")
		resp, err := answer(ctx, p, cfg, req)
		if err != nil {
			cfg.Log.Warn().Err(err).Str("op", string(req.Op)).Msg("player failed")
			resp = Response{Error: err.Error()}
		}
		if err := conn.WriteJSON(resp); err != nil {
			return err
		}
	}
}

func answer(ctx context.Context, p ai.Player, cfg ClientConfig, req Request) (Response, error) {
	switch req.Op {
	case OpPriority:
		return Response{Priority: p.Priority()}, nil
	case OpPlace:
		b, err := req.Board.Decode(cfg.Board)
		if err != nil {
			return Response{}, err
		}
		r, c, err := p.PlaceWorker(ctx, b)
		if err != nil {
			return Response{}, err
		}
		return Response{Place: []int{r, c}}, nil
	case OpTurn:
		b, err := req.Board.Decode(cfg.Board)
		if err != nil {
			return Response{}, err
		}
		t, err := p.GetTurn(ctx, b)
		if err != nil {
			return Response{}, err
		}
		parts, err := wire.EncodeTurn(t)
		if err != nil {
			return Response{}, err
		}
		return Response{Turn: parts}, nil
	case OpResult:
		r, err := wire.DecodeResult(req.Result)
		if err != nil {
			return Response{}, err
		}
		cfg.Log.Info().
			Str("winner", r.Winner).
			Str("loser", r.Loser).
			Bool("cheated", r.LoserCheated).
			Msg("game over")
		if o, ok := p.(ai.Observer); ok {
			return Response{}, o.GameOver(ctx, r)
		}
		return Response{}, nil
	}
	return Response{}, fmt.Errorf("%w: %q", ErrBadOp, req.Op)
}

// IsClosed reports whether err means the other side hung up.
func IsClosed(err error) bool {
	return errors.Is(err, websocket.ErrCloseSent) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
