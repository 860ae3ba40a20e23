package net

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultPort is the port peers listen on when none is given.
const DefaultPort = "4000"

// HandshakeTimeout bounds how long a peer waits for the opponent's name
// before falling back to a placeholder.
const HandshakeTimeout = 5 * time.Second

// FallbackPeerName is used when the opponent never sends a NAME line.
const FallbackPeerName = "Opponent"

// inboxSize bounds the receive queue. A peer that outruns this stalls its
// own writes rather than growing our memory.
const inboxSize = 64

// Session is one peer link: a TCP connection with a background receive pump
// and a mutex-serialized sender. Both sides of a battle run the same
// session type; only the way the connection was obtained differs.
type Session struct {
	conn net.Conn

	// Inbox delivers decoded messages from the peer. The pump closes it
	// when the connection drops.
	Inbox chan Message

	PeerName string

	mu      sync.Mutex
	closed  bool
	pending []Message // messages read past during the handshake

	done chan struct{} // closed when the pump exits
	quit chan struct{} // closed by Close to unblock a stalled pump
}

// Host listens on the port, accepts exactly one peer, and closes the
// listener. Blocks until a peer arrives or the listener fails.
func Host(port string) (*Session, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("accept: %w", err)
	}
	return newSession(conn), nil
}

// Dial connects to a hosting peer.
func Dial(addr string) (*Session, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return newSession(conn), nil
}

// NewSession wraps an already-established connection. Used by the in-process
// bridge and by tests over net.Pipe.
func NewSession(conn net.Conn) *Session {
	return newSession(conn)
}

func newSession(conn net.Conn) *Session {
	s := &Session{
		conn:  conn,
		Inbox: make(chan Message, inboxSize),
		done:  make(chan struct{}),
		quit:  make(chan struct{}),
	}
	go s.pump()
	return s
}

// pump reads lines off the wire into the inbox until the connection drops
// or Close is called, then closes the inbox. The quit select matters when
// the inbox is full and nothing is consuming it anymore: closing the
// connection alone would not unblock the channel send.
func (s *Session) pump() {
	defer func() {
		close(s.Inbox)
		close(s.done)
	}()
	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		msg, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		select {
		case s.Inbox <- msg:
		case <-s.quit:
			return
		}
	}
}

// Disconnected reports whether the peer link has gone down.
func (s *Session) Disconnected() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Send writes one message line to the peer. Safe for concurrent use.
func (s *Session) Send(t MsgType, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return net.ErrClosed
	}
	_, err := fmt.Fprintln(s.conn, Encode(t, args...))
	if err != nil {
		return fmt.Errorf("send %s: %w", t, err)
	}
	return nil
}

// Handshake exchanges player names: sends ours, then waits up to the
// handshake timeout for the peer's NAME line. A silent peer gets the
// fallback name; the battle proceeds either way. Non-NAME messages that
// arrive first are held and redelivered by Next.
func (s *Session) Handshake(name string) string {
	_ = s.Send(MsgName, name)

	deadline := time.NewTimer(HandshakeTimeout)
	defer deadline.Stop()

	peer := FallbackPeerName
loop:
	for {
		select {
		case msg, ok := <-s.Inbox:
			if !ok {
				break loop
			}
			if msg.Type == MsgName && len(msg.Args) > 0 && msg.Args[0] != "" {
				peer = msg.Args[0]
				break loop
			}
			s.mu.Lock()
			s.pending = append(s.pending, msg)
			s.mu.Unlock()
		case <-deadline.C:
			break loop
		}
	}

	s.PeerName = peer
	return peer
}

// Next returns the next queued message without blocking. Messages held
// during the handshake come out first, in arrival order. The second return
// value is false when nothing is ready.
func (s *Session) Next() (Message, bool) {
	s.mu.Lock()
	if len(s.pending) > 0 {
		msg := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		return msg, true
	}
	s.mu.Unlock()

	select {
	case msg, ok := <-s.Inbox:
		if !ok {
			return Message{}, false
		}
		return msg, true
	default:
		return Message{}, false
	}
}

// Recv blocks until a message arrives or the link drops. Held handshake
// messages come out first.
func (s *Session) Recv() (Message, bool) {
	s.mu.Lock()
	if len(s.pending) > 0 {
		msg := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		return msg, true
	}
	s.mu.Unlock()

	msg, ok := <-s.Inbox
	return msg, ok
}

// WaitFor blocks until a message of the wanted type arrives, the timeout
// elapses, or the link drops. Other messages that arrive while waiting are
// held for Next in arrival order.
func (s *Session) WaitFor(want MsgType, timeout time.Duration) (Message, error) {
	s.mu.Lock()
	for i, msg := range s.pending {
		if msg.Type == want {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.mu.Unlock()
			return msg, nil
		}
	}
	s.mu.Unlock()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case msg, ok := <-s.Inbox:
			if !ok {
				return Message{}, fmt.Errorf("wait for %s: peer disconnected", want)
			}
			if msg.Type == want {
				return msg, nil
			}
			s.mu.Lock()
			s.pending = append(s.pending, msg)
			s.mu.Unlock()
		case <-deadline.C:
			return Message{}, fmt.Errorf("wait for %s: timed out after %s", want, timeout)
		}
	}
}

// Close tears down the connection. The pump exits and closes the inbox,
// even if it was blocked on a full inbox.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.quit)
	return s.conn.Close()
}
