// Package guests follows the live guest counter pushed over a websocket.
package guests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/net/websocket"

	"photogrip/internal/logging"
)

// Subscriber is anything that can stream the guest count
type Subscriber interface {
	Subscribe(ctx context.Context, onUpdate func(int)) (unsubscribe func())
}

type frame struct {
	GuestCount *int `json:"guestCount"`
}

// Options configures a Counter
type Options struct {
	Logger logging.Logger
	// BackOff builds the reconnect policy; defaults to exponential 500ms..30s.
	BackOff func() backoff.BackOff
}

// Counter streams {"guestCount": N} frames from {ws_url}/ws
type Counter struct {
	url     string
	origin  string
	log     logging.Logger
	backOff func() backoff.BackOff
}

// NewCounter creates a counter for the websocket root wsURL
func NewCounter(wsURL string, opts Options) *Counter {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	bo := opts.BackOff
	if bo == nil {
		bo = defaultBackOff
	}
	base := strings.TrimRight(wsURL, "/")
	return &Counter{
		url:     base + "/ws",
		origin:  originFor(base),
		log:     log.With("component", "guests"),
		backOff: bo,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	return b
}

func originFor(wsURL string) string {
	switch {
	case strings.HasPrefix(wsURL, "wss://"):
		return "https://" + strings.TrimPrefix(wsURL, "wss://")
	case strings.HasPrefix(wsURL, "ws://"):
		return "http://" + strings.TrimPrefix(wsURL, "ws://")
	default:
		return wsURL
	}
}

func (c *Counter) dial(ctx context.Context) (*websocket.Conn, error) {
	cfg, err := websocket.NewConfig(c.url, c.origin)
	if err != nil {
		return nil, fmt.Errorf("websocket config: %w", err)
	}
	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.url, err)
	}
	return conn, nil
}

// Subscribe calls onUpdate for every count received until unsubscribe is
// called or ctx ends. Dropped connections are retried with backoff.
// onUpdate runs on the subscription goroutine.
func (c *Counter) Subscribe(ctx context.Context, onUpdate func(int)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx, onUpdate)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (c *Counter) run(ctx context.Context, onUpdate func(int)) {
	bo := c.backOff()
	for {
		err := c.stream(ctx, onUpdate, bo.Reset)
		if ctx.Err() != nil {
			return
		}
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			c.log.Warn("guest counter giving up", "error", err)
			return
		}
		c.log.Debug("guest counter reconnecting", "error", err, "wait", wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

// stream reads frames from one connection until it fails
func (c *Counter) stream(ctx context.Context, onUpdate func(int), connected func()) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	connected()
	c.log.Debug("guest counter connected", "url", c.url)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
	}()

	for {
		var f frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if f.GuestCount != nil {
			onUpdate(*f.GuestCount)
		}
	}
}

// ErrNoCount is returned by Current when the connection closes before a count arrives
var ErrNoCount = errors.New("connection closed before a guest count arrived")

// Current connects once and returns the first count received
func (c *Counter) Current(ctx context.Context) (int, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return 0, err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
	}()

	for {
		var f frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, fmt.Errorf("%w: %v", ErrNoCount, err)
		}
		if f.GuestCount != nil {
			return *f.GuestCount, nil
		}
	}
}
