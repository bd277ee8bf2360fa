package crocket

import (
	"errors"
	"net"
	"os"
	"strings"
	"time"
)

const (
	defaultServerAddr = "127.0.0.1:1338"
	connectTimeout    = 20 * time.Millisecond
	settleTimeout     = 100 * time.Millisecond
)

// handshakeClientGreet and handshakeServerGreet are the literal handshake
// strings exchanged right after connect (§4.4). Neither carries a
// terminator.
var (
	handshakeClientGreet = []byte("hello, synctracker!")
	handshakeServerGreet = []byte("hello, demo!")
)

// resolveServerAddr parses CROCKET_SERVER ("host[:port]") the same way the
// original's getenv+strchr(':') logic does: a bare host gets the default
// port appended; an unset/empty variable falls back to the default address
// entirely (§6.4).
func resolveServerAddr() string {
	v := os.Getenv("CROCKET_SERVER")
	if v == "" {
		return defaultServerAddr
	}
	if strings.Contains(v, ":") {
		return v
	}
	return v + ":1338"
}

// transport owns the single live TCP connection; the Connected state bit
// itself lives in Session.state. Its zero value is "not connected."
type transport struct {
	conn net.Conn
}

// dial opens a fresh TCP connection with the bounded connect/handshake
// timeout (§4.3); the caller is responsible for clearing it after the
// handshake succeeds.
func (tr *transport) dial(addr string) error {
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(connectTimeout)); err != nil {
		conn.Close()
		return err
	}
	tr.conn = conn
	return nil
}

// clearDeadline removes the bounded handshake timeout once the connection
// is considered live, giving the per-frame drain unbounded blocking I/O for
// the payload reads described in §5.
func (tr *transport) clearDeadline() error {
	return tr.conn.SetDeadline(time.Time{})
}

// close tears down the socket. Safe to call when already closed.
func (tr *transport) close() {
	if tr.conn != nil {
		tr.conn.Close()
		tr.conn = nil
	}
}

// sendAll writes buf in full, looping until every byte is sent or an error
// occurs (§4.3). Any error disconnects the transport.
func (tr *transport) sendAll(buf []byte) error {
	if tr.conn == nil {
		return errNotConnected
	}
	for len(buf) > 0 {
		n, err := tr.conn.Write(buf)
		if err != nil {
			tr.close()
			return err
		}
		if n <= 0 {
			tr.close()
			return errShortWrite
		}
		buf = buf[n:]
	}
	return nil
}

// recvAll reads exactly len(buf) bytes, looping until satisfied or an
// error occurs (§4.3). Any error disconnects the transport.
func (tr *transport) recvAll(buf []byte) error {
	if tr.conn == nil {
		return errNotConnected
	}
	for len(buf) > 0 {
		n, err := tr.conn.Read(buf)
		if err != nil {
			tr.close()
			return err
		}
		if n <= 0 {
			tr.close()
			return errShortRead
		}
		buf = buf[n:]
	}
	return nil
}

// tryReadByte implements the non-blocking readiness check from §4.4/§5: a
// short read deadline stands in for select()'s fd_set poll. timeout=0
// stands in for the per-frame drain's zero-timeout select and polls with a
// 1 ms window, so a frame with nothing pending waits at most that long; a
// longer timeout
// matches the bounded settle drain after the handshake (§4.4: "drains with
// a 100 ms deadline to let the server settle"). A timeout means "no
// message pending" (ok=false, err=nil); any other read error disconnects
// and is returned; on success the deadline is restored to unbounded
// blocking before returning, so a subsequent recvAll for the message
// payload just works.
func (tr *transport) tryReadByte(timeout time.Duration) (b byte, ok bool, err error) {
	if tr.conn == nil {
		return 0, false, errNotConnected
	}
	if timeout <= 0 {
		// A deadline that has already passed makes Read fail without
		// looking at bytes that are already buffered.
		timeout = time.Millisecond
	}
	if err := tr.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, false, err
	}
	var buf [1]byte
	n, rerr := tr.conn.Read(buf[:])
	if derr := tr.conn.SetReadDeadline(time.Time{}); derr != nil && rerr == nil {
		rerr = derr
	}
	if rerr != nil {
		var netErr net.Error
		if errors.As(rerr, &netErr) && netErr.Timeout() {
			return 0, false, nil
		}
		tr.close()
		return 0, false, rerr
	}
	if n <= 0 {
		tr.close()
		return 0, false, errShortRead
	}
	return buf[0], true, nil
}

var (
	errNotConnected = errors.New("crocket: transport not connected")
	errShortWrite   = errors.New("crocket: short write")
	errShortRead    = errors.New("crocket: short read")
)
