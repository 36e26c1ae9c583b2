// Package wsclient is the websocket transport of a game client: one
// connection, one reader goroutine and one writer goroutine fed by a bounded
// send queue.
package wsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultQueueSize = 100
	writeWait        = time.Second
	maxMessageSize   = 64 * 1024
)

var (
	ErrQueueFull = errors.New("send queue full")
	ErrClosed    = errors.New("connection closed")
)

type Options struct {
	QueueSize        int
	HandshakeTimeout time.Duration
	Header           http.Header
}

// Client is a connected websocket. Send may be called from any goroutine.
type Client struct {
	ID        string
	URL       string
	conn      *websocket.Conn
	SendQueue chan []byte

	done      chan struct{}
	closeOnce sync.Once
	running   bool
	closing   bool
	mu        sync.Mutex
}

func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: opts.HandshakeTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, url, opts.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %s)", url, err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)

	c := &Client{
		ID:        uuid.NewString(),
		URL:       url,
		conn:      conn,
		SendQueue: make(chan []byte, opts.QueueSize),
		done:      make(chan struct{}),
	}
	log.Infof("Connected to %s as %s", url, c.ID)
	return c, nil
}

// Send queues a text frame. It never blocks: a full queue drops the frame.
func (c *Client) Send(msg []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.SendQueue <- msg:
		return nil
	default:
		log.Warnf("Dropping message, send queue full for client %s", c.ID)
		return ErrQueueFull
	}
}

// Run pumps the connection until it fails, the peer closes it or ctx is
// done. Every inbound text frame is passed to onMessage from the reader
// goroutine. A clean close returns nil.
func (c *Client) Run(ctx context.Context, onMessage func([]byte)) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("client already running")
	}
	c.running = true
	c.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-ctx.Done():
			c.shutdown()
		case <-c.done:
		}
		return nil
	})

	// Message queue goroutine
	g.Go(func() error {
		for {
			select {
			case <-c.done:
				return nil
			case msg := <-c.SendQueue:
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Errorf("Message write error: %v", err)
					return fmt.Errorf("write: %w", err)
				}
			}
		}
	})

	g.Go(func() error {
		for {
			mt, p, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return nil
				default:
				}
				if c.isClosing() {
					c.shutdown()
					return nil
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Infof("Server closed the connection: %v", err)
					return ErrClosed
				}
				log.Errorf("Error reading message: %v", err)
				return fmt.Errorf("read: %w", err)
			}
			if mt != websocket.TextMessage {
				log.Debugf("Ignoring non-text frame of type %d", mt)
				continue
			}
			onMessage(p)
		}
	})

	err := g.Wait()
	c.shutdown()
	return err
}

// Close sends a close frame and releases the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	running := c.running
	c.closing = true
	c.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	werr := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	if !running || werr != nil {
		c.shutdown()
		return werr
	}
	// give the server a chance to answer the close frame
	time.AfterFunc(writeWait, c.shutdown)
	return nil
}

func (c *Client) isClosing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closing
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		log.Debugf("Client %s shut down", c.ID)
	})
}

func (c *Client) Done() <-chan struct{} { return c.done }
