package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

// Proxy is an ai.Player and ai.Observer whose decisions are made by
// whoever is on the other end of conn. Calls are serialized.
type Proxy struct {
	name     string
	priority int
	log      zerolog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	release func()
	closed  bool
}

// NewProxy wraps conn and asks the remote side for its priority.
func NewProxy(ctx context.Context, conn *websocket.Conn, name string, log zerolog.Logger) (*Proxy, error) {
	p := &Proxy{
		name: name,
		log:  log.With().Str("player", name).Logger(),
		conn: conn,
	}
	resp, err := p.call(ctx, Request{Op: OpPriority})
	if err != nil {
		return nil, err
	}
	p.priority = resp.Priority
	return p, nil
}

func (p *Proxy) Name() string  { return p.name }
func (p *Proxy) Priority() int { return p.priority }

func (p *Proxy) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	resp, err := p.call(ctx, Request{Op: OpPlace, Board: wire.EncodeBoard(b)})
	if err != nil {
		return 0, 0, err
	}
	if len(resp.Place) != 2 {
		return 0, 0, fmt.Errorf("%w: place %v", ErrBadReply, resp.Place)
	}
	return resp.Place[0], resp.Place[1], nil
}

func (p *Proxy) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	resp, err := p.call(ctx, Request{Op: OpTurn, Board: wire.EncodeBoard(b)})
	if err != nil {
		return nil, err
	}
	t, err := wire.DecodeTurn(resp.Turn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	return t, nil
}

func (p *Proxy) GameOver(ctx context.Context, r santorini.Result) error {
	_, err := p.call(ctx, Request{Op: OpResult, Result: wire.EncodeResult(r)})
	return err
}

// call sends req and waits for the reply. The context's deadline
// bounds both directions, and cancelling it unblocks a pending read.
func (p *Proxy) call(ctx context.Context, req Request) (Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return Response{}, websocket.ErrCloseSent
	}

	dl, _ := ctx.Deadline()
	p.conn.SetWriteDeadline(dl)
	p.conn.SetReadDeadline(dl)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	p.log.Debug().Str("op", string(req.Op)).Msg("send")
	if err := p.conn.WriteJSON(req); err != nil {
		return Response{}, p.fail(ctx, err)
	}
	var resp Response
	if err := p.conn.ReadJSON(&resp); err != nil {
		return Response{}, p.fail(ctx, err)
	}
	if resp.Error != "" {
		return resp, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
	}
	return resp, nil
}

// fail reports a transport error. A websocket that has hit a read or
// write error is unusable, so the proxy is closed.
func (p *Proxy) fail(ctx context.Context, err error) error {
	p.closeLocked()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (p *Proxy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *Proxy) closeLocked() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.release != nil {
		p.release()
	}
	p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return p.conn.Close()
}
