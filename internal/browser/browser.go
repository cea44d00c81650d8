// Package browser is a minimal Chrome DevTools Protocol client used by the
// browser task executors. It connects to a remote browser WebSocket endpoint
// (a local headless Chrome or a hosted scraping browser), opens pages as
// flattened CDP sessions and drives them with Runtime.evaluate.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned for calls made after the browser connection closed.
var ErrClosed = errors.New("browser connection closed")

const defaultCallTimeout = 30 * time.Second

// Browser is one live CDP connection. A Browser is owned by a single run and
// must not be shared across runs.
type Browser struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	nextID  int64

	pendingMu sync.Mutex
	pending   map[int64]chan *cdpMessage

	closeOnce sync.Once
	closed    chan struct{}
}

type cdpMessage struct {
	ID        int64           `json:"id,omitempty"`
	Method    string          `json:"method,omitempty"`
	Params    any             `json:"params,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *cdpError       `json:"error,omitempty"`
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *cdpError) Error() string {
	return fmt.Sprintf("cdp error %d: %s", e.Code, e.Message)
}

// Connect dials the browser WebSocket endpoint and starts the read loop.
func Connect(ctx context.Context, wsEndpoint string) (*Browser, error) {
	dialer := websocket.Dialer{
		// CDP messages (full page HTML) can be large.
		ReadBufferSize:  1 << 20,
		WriteBufferSize: 1 << 20,
	}
	conn, _, err := dialer.DialContext(ctx, wsEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	b := &Browser{
		conn:    conn,
		pending: make(map[int64]chan *cdpMessage),
		closed:  make(chan struct{}),
	}
	go b.readLoop()
	return b, nil
}

func (b *Browser) readLoop() {
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			b.failPending(err)
			b.Close()
			return
		}
		var msg cdpMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.ID == 0 {
			// Unsolicited event, nothing subscribes to those.
			continue
		}
		b.pendingMu.Lock()
		ch, ok := b.pending[msg.ID]
		if ok {
			delete(b.pending, msg.ID)
		}
		b.pendingMu.Unlock()
		if ok {
			ch <- &msg
		}
	}
}

func (b *Browser) failPending(err error) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	for id, ch := range b.pending {
		delete(b.pending, id)
		ch <- &cdpMessage{Error: &cdpError{Code: -1, Message: err.Error()}}
	}
}

// call sends one CDP command and waits for its response.
func (b *Browser) call(ctx context.Context, sessionID, method string, params any, result any) error {
	select {
	case <-b.closed:
		return ErrClosed
	default:
	}

	b.writeMu.Lock()
	b.nextID++
	id := b.nextID
	ch := make(chan *cdpMessage, 1)
	b.pendingMu.Lock()
	b.pending[id] = ch
	b.pendingMu.Unlock()

	err := b.conn.WriteJSON(&cdpMessage{
		ID:        id,
		Method:    method,
		Params:    params,
		SessionID: sessionID,
	})
	b.writeMu.Unlock()
	if err != nil {
		b.pendingMu.Lock()
		delete(b.pending, id)
		b.pendingMu.Unlock()
		return fmt.Errorf("send %s: %w", method, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultCallTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		b.pendingMu.Lock()
		delete(b.pending, id)
		b.pendingMu.Unlock()
		return ctx.Err()
	case <-b.closed:
		return ErrClosed
	case msg := <-ch:
		if msg.Error != nil {
			return msg.Error
		}
		if result != nil && len(msg.Result) > 0 {
			return json.Unmarshal(msg.Result, result)
		}
		return nil
	}
}

// NewPage creates a new browser target and attaches a flattened session to it.
func (b *Browser) NewPage(ctx context.Context) (*Page, error) {
	var created struct {
		TargetID string `json:"targetId"`
	}
	err := b.call(ctx, "", "Target.createTarget", map[string]any{
		"url": "about:blank",
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("create target: %w", err)
	}

	var attached struct {
		SessionID string `json:"sessionId"`
	}
	err = b.call(ctx, "", "Target.attachToTarget", map[string]any{
		"targetId": created.TargetID,
		"flatten":  true,
	}, &attached)
	if err != nil {
		return nil, fmt.Errorf("attach target: %w", err)
	}

	return &Page{
		browser:   b,
		targetID:  created.TargetID,
		sessionID: attached.SessionID,
	}, nil
}

// Close tears the connection down. Safe to call more than once; later calls
// are no-ops.
func (b *Browser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.closed)
		b.writeMu.Lock()
		defer b.writeMu.Unlock()
		// Best effort: ask the remote end to shut down the browser session.
		b.nextID++
		_ = b.conn.WriteJSON(&cdpMessage{ID: b.nextID, Method: "Browser.close"})
		err = b.conn.Close()
	})
	return err
}
