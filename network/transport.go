package network

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/status"
)

// Transport is the websocket client: a reconnect loop owning one connection at a time,
// a reader goroutine feeding the inbox and a writer draining the send queue
// It never touches session state; the main loop consumes the inbox
type Transport struct {
	config *Config
	dialer *websocket.Dialer
	inbox  *Inbox
	log    logrus.FieldLogger

	sendCh    chan []byte
	connected atomic.Bool
	running   atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// Cached metric pointers
	messagesIn     *atomic.Int64
	decodeErrors   *atomic.Int64
	intentsSent    *atomic.Int64
	intentsDropped *atomic.Int64
	reconnects     *atomic.Int64
	connectedFlag  *atomic.Bool
}

// NewTransport creates a transport delivering into inbox
// Metrics may be nil
func NewTransport(cfg *Config, inbox *Inbox, metrics *status.Registry, log logrus.FieldLogger) *Transport {
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	metrics.Strings.Get(status.KeyServer).Store(cfg.URL)

	return &Transport{
		config: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.ConnectTimeout,
		},
		inbox:          inbox,
		log:            log.WithField("server", cfg.URL),
		sendCh:         make(chan []byte, cfg.SendQueueSize),
		messagesIn:     metrics.Ints.Get(status.KeyMessagesIn),
		decodeErrors:   metrics.Ints.Get(status.KeyDecodeErrors),
		intentsSent:    metrics.Ints.Get(status.KeyIntentsSent),
		intentsDropped: metrics.Ints.Get(status.KeyIntentsDropped),
		reconnects:     metrics.Ints.Get(status.KeyReconnects),
		connectedFlag:  metrics.Bools.Get(status.KeyConnected),
	}
}

// Start launches the connection loop; returns immediately
func (t *Transport) Start(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}
	ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.run(ctx)
	return nil
}

// Stop closes the connection and waits for the loops to exit
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}
	t.cancel()
	t.wg.Wait()
	return nil
}

// Connected reports whether a connection is currently established
func (t *Transport) Connected() bool {
	return t.connected.Load()
}

// Send encodes and enqueues a message without blocking
func (t *Transport) Send(event string, payload any) error {
	if !t.connected.Load() {
		t.intentsDropped.Add(1)
		return ErrNotConnected
	}
	frame, err := Encode(event, payload)
	if err != nil {
		return err
	}
	select {
	case t.sendCh <- frame:
		return nil
	default:
		t.intentsDropped.Add(1)
		return ErrQueueFull
	}
}

// run dials, serves the connection until it fails, then waits ReconnectDelay and retries
func (t *Transport) run(ctx context.Context) {
	defer t.wg.Done()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := t.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.log.WithError(err).Warn("dial failed")
			if !t.wait(ctx) {
				return
			}
			continue
		}

		if attempt > 0 {
			t.reconnects.Add(1)
		}
		attempt++

		t.setConnected(true)
		t.inbox.Push(Inbound{Event: EventConnect})
		t.log.Info("connected")

		err = t.serve(ctx, conn)

		t.setConnected(false)
		t.discardQueued()
		t.inbox.Push(Inbound{Event: EventDisconnect})
		if err != nil && ctx.Err() == nil {
			t.log.WithError(err).Warn("connection lost")
		} else {
			t.log.Info("disconnected")
		}

		if !t.wait(ctx) {
			return
		}
	}
}

func (t *Transport) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx := ctx
	if t.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, t.config.ConnectTimeout)
		defer cancel()
	}
	conn, _, err := t.dialer.DialContext(dialCtx, t.config.URL, nil)
	return conn, err
}

// serve runs the reader goroutine and the writer loop for one connection
// Returns when either side fails or ctx is cancelled
func (t *Transport) serve(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()
	if t.config.ReadLimit > 0 {
		conn.SetReadLimit(t.config.ReadLimit)
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- t.readLoop(conn)
	}()

	for {
		select {
		case <-ctx.Done():
			t.writeClose(conn)
			<-readErr
			return nil

		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err

		case frame := <-t.sendCh:
			if err := t.write(conn, frame); err != nil {
				conn.Close()
				<-readErr
				return err
			}
			t.intentsSent.Add(1)
		}
	}
}

// readLoop decodes frames into the inbox until the connection fails
func (t *Transport) readLoop(conn *websocket.Conn) error {
	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}

		env, err := DecodeEnvelope(frame)
		if err != nil {
			t.decodeErrors.Add(1)
			t.log.WithError(err).Debug("dropping inbound frame")
			continue
		}
		t.messagesIn.Add(1)
		t.inbox.Push(Inbound{Event: env.Event, Data: env.Data})
	}
}

func (t *Transport) write(conn *websocket.Conn, frame []byte) error {
	if t.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(t.config.WriteTimeout))
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}

// writeClose sends a normal-closure frame so the server sees a clean disconnect
func (t *Transport) writeClose(conn *websocket.Conn) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client shutting down")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		t.log.WithError(err).Debug("close frame not sent")
	}
	conn.Close()
}

// wait sleeps ReconnectDelay; false when ctx ended first
func (t *Transport) wait(ctx context.Context) bool {
	timer := time.NewTimer(t.config.ReconnectDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (t *Transport) setConnected(v bool) {
	t.connected.Store(v)
	t.connectedFlag.Store(v)
}

// discardQueued drops frames queued for a connection that no longer exists
func (t *Transport) discardQueued() {
	for {
		select {
		case <-t.sendCh:
			t.intentsDropped.Add(1)
		default:
			return
		}
	}
}
