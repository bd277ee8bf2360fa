package crocket

import (
	"os"
	"time"
)

// Mode selects whether a Session drives tracks from a live editor
// connection or from a previously loaded/baked timeline.
type Mode int

const (
	Player Mode = iota
	Client
)

func (m Mode) String() string {
	if m == Client {
		return "client"
	}
	return "player"
}

// TimeInRows is the sentinel rpm value meaning "the host already supplies
// time in rows, don't convert" (§4.1: "a sentinel rpm = 60 means time is
// already in rows").
const TimeInRows float32 = 60

// Session is the controller described in §4.5: it owns the track table,
// the connection (in Client mode), and the state/event bitmask, and is
// driven by one Update call per host frame.
type Session struct {
	table *Table

	mode       Mode
	state      StateEvents
	currentRow int64 // -1 = never set (§3)
	timescale  float32

	saveFile  string
	backupDir string

	serverAddr         string
	tr                 transport
	reconnectRequested bool
}

// defaultSession backs the package-level convenience functions (§9: "the
// singleton can be offered as a thin convenience layer").
var defaultSession *Session

// Init tears down any prior session state, builds a track table from
// descriptors, and attempts one connect+handshake (§4.5). If that
// succeeds, the session starts in Client mode; otherwise it falls back to
// Player mode and loads the timeline from data, then save_file, then
// starts empty (§4.5, §7). Init also installs the session as the target
// of the package-level convenience functions (Update, Done, SetMode, …).
func Init(descriptors []TrackDescriptor, saveFile string, data []byte, rpm float32) *Session {
	s := &Session{
		table:      NewTable(descriptors),
		mode:       Client,
		currentRow: -1,
		timescale:  rpm / 60,
		saveFile:   saveFile,
		serverAddr: resolveServerAddr(),
	}

	s.reconnectRequested = true
	s.maybeReconnect()

	if !s.state.Has(Connected) {
		s.mode = Player
		s.state = Playing | Play
		s.loadInitial(data)
	}

	defaultSession = s
	return s
}

// Mode reports the session's current mode.
func (s *Session) Mode() Mode { return s.mode }

// loadInitial populates the track table at startup: from data if given,
// else from saveFile if openable, else the table stays empty (§4.5, §7).
func (s *Session) loadInitial(data []byte) {
	if data != nil {
		if !s.table.Decode(data) {
			logger.Warn("initial track data signature mismatch")
		}
		return
	}
	if s.saveFile == "" {
		return
	}
	fileData, err := os.ReadFile(s.saveFile)
	if err != nil {
		logger.Debug("save file not opened, starting empty", "path", s.saveFile, "err", err)
		return
	}
	if !s.table.Decode(fileData) {
		logger.Warn("save file signature mismatch, starting empty", "path", s.saveFile)
	}
}

// Done closes the socket, frees keyframe storage, and forgets the save
// file path (§4.5).
func (s *Session) Done() {
	s.tr.close()
	s.table.reset()
	s.saveFile = ""
}

// SetMode switches between Player and Client (§4.5, §9). Switching to
// Player disconnects immediately and resumes playback (Playing|Play).
// Switching to Client is advisory: it only requests that the next Update
// attempt a reconnect, it does not reconnect synchronously and does not
// retry beyond that one attempt (§9's "must not add opportunistic retry
// loops").
func (s *Session) SetMode(mode Mode) {
	if mode == s.mode {
		return
	}
	s.mode = mode
	if mode == Player {
		s.disconnect()
		s.state |= Playing | Play
		return
	}
	s.reconnectRequested = true
}

// disconnect closes the transport and raises Disconnect exactly once, on
// the transition from connected to unconnected (§3 invariant).
func (s *Session) disconnect() {
	s.tr.close()
	if s.state.Has(Connected) {
		s.state |= Disconnect
	}
	s.state &^= Connected
}

// Update is the per-frame entry point (§4.5). *t is the host's current
// wall-clock time in seconds (or rows, if timescale came from
// TimeInRows); Update may overwrite it on a server-driven seek. The
// returned bitmask is the full state+events snapshot as seen before event
// bits are cleared for the next call.
func (s *Session) Update(t *float32) StateEvents {
	if t == nil {
		return s.state
	}

	row := *t * s.timescale
	if row < 0 {
		row = 0
	}

	if s.mode == Client {
		s.maybeReconnect()
		if s.state.Has(Connected) {
			_ = s.drainMessages(0)
		}
	}

	if s.state.Has(Seek) {
		var seekRow float32
		if s.currentRow > 0 {
			seekRow = float32(s.currentRow) + 1.0/65536
		}
		*t = seekRow / s.timescale
		row = seekRow
	} else if s.mode == Client && s.state.Has(Connected) {
		newRow := int64(row)
		if newRow != s.currentRow {
			if err := s.sendSetRow(uint32(newRow)); err == nil {
				s.currentRow = newRow
			}
		}
	}

	if s.state.Has(Save) && s.saveFile != "" {
		s.performSave()
	}

	for i := 0; i < s.table.Len(); i++ {
		tr := s.table.Track(i)
		if tr.Value != nil {
			*tr.Value = sample(tr.keys, row)
		}
	}

	result := s.state
	s.state &= stateBits
	return result
}

// performSave writes the current table to the session's save file and, if
// configured, a timestamped backup. I/O errors are silently dropped (§7).
func (s *Session) performSave() {
	data := s.table.Encode()
	if err := os.WriteFile(s.saveFile, data, 0o644); err != nil {
		logger.Debug("save failed", "path", s.saveFile, "err", err)
		return
	}
	if s.backupDir != "" {
		writeBackup(s.backupDir, s.saveFile, time.Now(), data)
	}
}

// SetBackupDir configures the optional timestamped-backup directory used
// by performSave (SPEC_FULL.md §4.5a). Empty disables backups.
func (s *Session) SetBackupDir(dir string) { s.backupDir = dir }

// GetValue samples the track bound to slot at the given host time,
// independent of Update's per-frame sampling (§6.5).
func (s *Session) GetValue(slot *float32, t float32) float32 {
	for i := 0; i < s.table.Len(); i++ {
		tr := s.table.Track(i)
		if tr.Value == slot {
			return sample(tr.keys, t*s.timescale)
		}
	}
	return 0
}

// GetData returns a CTF encode of the entire current track table (§6.5).
func (s *Session) GetData() []byte {
	return s.table.Encode()
}

// Table exposes the session's track table for editor-style direct access
// (e.g. tooling that wants SetKey/DeleteKey without going through the
// wire protocol).
func (s *Session) Table() *Table { return s.table }

// --- package-level convenience layer (§9) ---

// Update drives the default session created by the last Init call.
func Update(t *float32) StateEvents {
	if defaultSession == nil {
		return 0
	}
	return defaultSession.Update(t)
}

// Done tears down the default session.
func Done() {
	if defaultSession != nil {
		defaultSession.Done()
	}
}

// SetMode switches the default session's mode.
func SetMode(mode Mode) {
	if defaultSession != nil {
		defaultSession.SetMode(mode)
	}
}

// GetValue samples a track on the default session.
func GetValue(slot *float32, t float32) float32 {
	if defaultSession == nil {
		return 0
	}
	return defaultSession.GetValue(slot, t)
}

// GetData encodes the default session's track table.
func GetData() []byte {
	if defaultSession == nil {
		return nil
	}
	return defaultSession.GetData()
}
