package crocket

import (
	"encoding/binary"
	"math"
)

// CTF (Compact Track Format) is the binary file format tracks are baked
// into for stand-alone playback (§4.6). The signature's middle field is a
// float32 in *native* byte order, not normalized to little-endian: a
// reader on a different-endian host sees a mismatched signature and
// rejects the file, which is the deliberate endianness self-test (§9).
var (
	ctfHeaderPart1 = []byte("crocket\n")
	ctfHeaderPart3 = []byte("\r\n\x00\x1a")
)

const ctfVersion float32 = 1.0
const ctfHeaderLength = 16

// Encode produces a CTF dump of every non-empty track in the table, in
// declaration order. Empty tracks are omitted, matching the original
// encoder.
func (t *Table) Encode() []byte {
	count := uint32(0)
	for i := range t.tracks {
		if len(t.tracks[i].keys) > 0 {
			count++
		}
	}

	out := make([]byte, 0, ctfHeaderLength+maxLEB128Size)
	out = append(out, ctfHeaderPart1...)
	out = appendNativeFloat32(out, ctfVersion)
	out = append(out, ctfHeaderPart3...)
	out = appendLEB128(out, count)

	for i := range t.tracks {
		tr := &t.tracks[i]
		if len(tr.keys) == 0 {
			continue
		}
		out = appendLEB128(out, uint32(len(tr.Name)))
		out = append(out, tr.Name...)
		out = appendLEB128(out, uint32(len(tr.keys)))
		var ref uint32
		for _, k := range tr.keys {
			out = appendLEB128(out, k.Row-ref)
			out = appendNativeFloat32(out, k.Value)
			out = append(out, byte(k.Interp))
			ref = k.Row + 1
		}
	}
	return out
}

// Decode loads a CTF dump into the table. Tracks not present in the table
// are skipped (read but discarded) rather than rejected, matching the
// original's "search the static track table for a name match; unknown
// tracks are read but discarded" behavior (§4.6). A malformed signature
// leaves the table untouched and returns false (§7: "load is a no-op").
//
// Decode is not safe to call on untrusted data — per spec §1 Non-goals,
// the format assumes a trusted source, and a truncated or adversarial
// buffer can cause an out-of-bounds slice panic instead of returning false.
func (t *Table) Decode(data []byte) bool {
	if len(data) < ctfHeaderLength || !validSignature(data) {
		return false
	}
	pos := data[ctfHeaderLength:]

	var dummy Track
	trackCount, pos := readLEB128(pos)
	for ; trackCount > 0; trackCount-- {
		var nameLen uint32
		nameLen, pos = readLEB128(pos)
		name := string(pos[:nameLen])
		pos = pos[nameLen:]

		var nkeys uint32
		nkeys, pos = readLEB128(pos)

		tr := t.trackByName(name)
		if tr == nil {
			tr = &dummy
		}
		tr.keys = make([]Keyframe, 0, nkeys)

		var row uint32
		for n := uint32(0); n < nkeys; n++ {
			var delta uint32
			delta, pos = readLEB128(pos)
			row += delta
			value := nativeFloat32(pos)
			pos = pos[4:]
			interp := Interp(pos[0])
			pos = pos[1:]
			if tr != &dummy {
				tr.keys = append(tr.keys, Keyframe{Row: row, Value: value, Interp: interp})
			}
			row++
		}
	}
	return true
}

func (t *Table) trackByName(name string) *Track {
	for i := range t.tracks {
		if t.tracks[i].Name == name {
			return &t.tracks[i]
		}
	}
	return nil
}

func validSignature(data []byte) bool {
	if string(data[0:8]) != string(ctfHeaderPart1) {
		return false
	}
	if binary.NativeEndian.Uint32(data[8:12]) != math.Float32bits(ctfVersion) {
		return false
	}
	return string(data[12:16]) == string(ctfHeaderPart3)
}

func appendNativeFloat32(dst []byte, f float32) []byte {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], math.Float32bits(f))
	return append(dst, buf[:]...)
}

func nativeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b))
}
