package crocket

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Wire opcodes (§4.4, §6.2). Opcodes 0,1,3,4,5,6 are server-to-client;
// opcode 2 (GET_TRACK) and the SET_ROW send in row feedback are the only
// client-to-server messages.
const (
	opSetKey     byte = 0
	opDeleteKey  byte = 1
	opGetTrack   byte = 2
	opSetRow     byte = 3
	opPause      byte = 4
	opSaveTracks byte = 5
	opAction     byte = 6
)

// maybeReconnect attempts a reconnect only when the session is in Client
// mode, not already connected, and a reconnect has actually been
// requested (by Init or by an explicit SetMode(Client) call). This is
// stricter than the original C `reconnect()`, which re-attempts on every
// single Update call while disconnected in Client mode; §9 explicitly
// calls that an accident to not reproduce ("a reimplementation must not
// add opportunistic retry loops"), so the request flag is consumed here
// and not re-armed automatically.
func (s *Session) maybeReconnect() {
	if s.mode != Client || s.state.Has(Connected) || !s.reconnectRequested {
		return
	}
	s.reconnectRequested = false
	s.doReconnect()
}

// doReconnect performs the handshake in §4.4: connect with a bounded
// timeout, exchange greetings under that same timeout, then clear it and
// request every track (clearing each one first, since reconnect always
// starts from an empty table per §3's "every track's keyframe array is
// cleared to empty and fully repopulated from the server"), draining each
// track's initial dump before moving to the next, and finally waiting up
// to 100ms for the server to settle.
func (s *Session) doReconnect() {
	s.tr.close()

	if err := s.tr.dial(s.serverAddr); err != nil {
		logger.Debug("connect failed", "addr", s.serverAddr, "err", err)
		return
	}

	if err := s.tr.sendAll(handshakeClientGreet); err != nil {
		logger.Debug("handshake send failed", "err", err)
		return
	}
	greet := make([]byte, len(handshakeServerGreet))
	if err := s.tr.recvAll(greet); err != nil {
		logger.Debug("handshake recv failed", "err", err)
		return
	}
	if !bytes.Equal(greet, handshakeServerGreet) {
		logger.Debug("handshake greeting mismatch")
		s.tr.close()
		return
	}
	if err := s.tr.clearDeadline(); err != nil {
		logger.Debug("clearing handshake deadline failed", "err", err)
		s.tr.close()
		return
	}

	for i := 0; i < s.table.Len(); i++ {
		tr := s.table.Track(i)
		tr.clear()
		if err := s.sendGetTrack(tr.Name); err != nil {
			logger.Debug("GET_TRACK send failed", "track", tr.Name, "err", err)
			return
		}
		if err := s.drainMessages(0); err != nil {
			return
		}
	}
	if err := s.drainMessages(settleTimeout); err != nil {
		return
	}

	s.state |= Connected | Connect
	logger.Info("connected", "addr", s.serverAddr)
}

// sendGetTrack asks the server for a track's keyframes by name (§6.2).
func (s *Session) sendGetTrack(name string) error {
	buf := make([]byte, 5, 5+len(name))
	buf[0] = opGetTrack
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(name)))
	buf = append(buf, name...)
	if err := s.tr.sendAll(buf); err != nil {
		s.disconnect()
		return err
	}
	return nil
}

// sendSetRow reports the host's current row to the server (§4.5 "row
// feedback", §6.2).
func (s *Session) sendSetRow(row uint32) error {
	var buf [5]byte
	buf[0] = opSetRow
	binary.BigEndian.PutUint32(buf[1:], row)
	if err := s.tr.sendAll(buf[:]); err != nil {
		s.disconnect()
		return err
	}
	return nil
}

// drainMessages reads and applies server messages until none are ready
// within timeout (§4.4 "per-frame drain", §5). timeout=0 matches the
// zero-timeout select used every frame; a longer timeout matches the
// bounded settle drain right after the handshake.
func (s *Session) drainMessages(timeout time.Duration) error {
	for {
		op, ready, err := s.tr.tryReadByte(timeout)
		if err != nil {
			s.disconnect()
			return err
		}
		if !ready {
			return nil
		}
		if err := s.processMessage(op); err != nil {
			s.disconnect()
			return err
		}
	}
}

// processMessage applies one server-to-client message (§4.4's opcode
// table). Unknown opcodes are ignored without consuming any payload bytes
// — a deliberate reproduction of the original's legacy desync behavior,
// see §9 and DESIGN.md.
func (s *Session) processMessage(op byte) error {
	switch op {
	case opSetKey:
		var buf [12]byte
		if err := s.tr.recvAll(buf[:]); err != nil {
			return err
		}
		track := binary.BigEndian.Uint32(buf[0:4])
		row := binary.BigEndian.Uint32(buf[4:8])
		value := math.Float32frombits(binary.BigEndian.Uint32(buf[8:12]))
		var ibuf [1]byte
		if err := s.tr.recvAll(ibuf[:]); err != nil {
			return err
		}
		s.table.SetKey(int(track), row, value, Interp(ibuf[0]))

	case opDeleteKey:
		var buf [8]byte
		if err := s.tr.recvAll(buf[:]); err != nil {
			return err
		}
		track := binary.BigEndian.Uint32(buf[0:4])
		row := binary.BigEndian.Uint32(buf[4:8])
		s.table.DeleteKey(int(track), row)

	case opSetRow:
		var buf [4]byte
		if err := s.tr.recvAll(buf[:]); err != nil {
			return err
		}
		s.currentRow = int64(binary.BigEndian.Uint32(buf[:]))
		s.state |= Seek

	case opPause:
		var buf [1]byte
		if err := s.tr.recvAll(buf[:]); err != nil {
			return err
		}
		if buf[0] != 0 {
			s.state = (s.state | Stop) &^ (Play | Playing)
		} else {
			s.state = (s.state | Play | Playing) &^ Stop
		}

	case opSaveTracks:
		s.state |= Save

	case opAction:
		var buf [4]byte
		if err := s.tr.recvAll(buf[:]); err != nil {
			return err
		}
		n := binary.BigEndian.Uint32(buf[:])
		s.state |= Action(n)

	default:
		// unknown opcode: no payload is known, so none is skipped.
	}
	return nil
}
