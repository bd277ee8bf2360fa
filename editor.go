package crocket

const initialKeyAlloc = 16

// SetKey inserts or overwrites the key at row on track i. Out-of-range
// indices are silent no-ops (§4.2). Capacity starts at initialKeyAlloc (16)
// and then grows through append's amortized growth, so there is no
// separate alloc-failure path to reset the track —
// append only fails this process by panicking on OOM, which the original
// C guarded against but a Go process cannot meaningfully recover from
// either.
func (t *Table) SetKey(i int, row uint32, value float32, interp Interp) {
	tr := t.Track(i)
	if tr == nil {
		return
	}
	pos := findSegment(tr.keys, row)
	if pos > 0 && tr.keys[pos-1].Row == row {
		tr.keys[pos-1].Value = value
		tr.keys[pos-1].Interp = interp
		return
	}
	if cap(tr.keys) == 0 {
		tr.keys = make([]Keyframe, 0, initialKeyAlloc)
	}
	tr.keys = append(tr.keys, Keyframe{})
	copy(tr.keys[pos+1:], tr.keys[pos:len(tr.keys)-1])
	tr.keys[pos] = Keyframe{Row: row, Value: value, Interp: interp}
}

// DeleteKey removes the key at row on track i, if one exists. Out-of-range
// indices and misses are silent no-ops (§4.2).
func (t *Table) DeleteKey(i int, row uint32) {
	tr := t.Track(i)
	if tr == nil {
		return
	}
	pos := findSegment(tr.keys, row)
	if pos == 0 || tr.keys[pos-1].Row != row {
		return
	}
	tr.keys = append(tr.keys[:pos-1], tr.keys[pos:]...)
}

// clear empties a track's keyframes without discarding the slice capacity,
// used on reconnect (§3: "every track's keyframe array is cleared to empty
// and fully repopulated from the server").
func (tr *Track) clear() {
	tr.keys = tr.keys[:0]
}

// reset empties every track in the table and releases its keyframe
// storage.
func (t *Table) reset() {
	for i := range t.tracks {
		t.tracks[i].keys = nil
	}
}
