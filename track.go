package crocket

// Keyframe anchors a track's value at a discrete timeline row.
type Keyframe struct {
	Row    uint32
	Value  float32
	Interp Interp
}

// Track is a named float variable plus its keyframe sequence. Keys are
// always kept strictly sorted by Row with no duplicates; Set/Delete are the
// only mutators that preserve that invariant.
type Track struct {
	Name  string
	Value *float32 // externally owned slot, written only by sample()
	keys  []Keyframe
}

// Table is the fixed, insertion-ordered list of tracks known at build time.
// Its length and each track's Name/Value binding never change for the life
// of the session; only the keyframe contents of each Track do.
type Table struct {
	tracks []Track
}

// TrackDescriptor is what an embedding host supplies at Init time: a track
// name and the slot the sampler should write into every frame.
type TrackDescriptor struct {
	Name  string
	Value *float32
}

// NewTable builds a Table from the host's descriptor list, in declaration
// order. That order is the contract for file and wire encoding (§9).
func NewTable(descriptors []TrackDescriptor) *Table {
	t := &Table{tracks: make([]Track, len(descriptors))}
	for i, d := range descriptors {
		t.tracks[i] = Track{Name: d.Name, Value: d.Value}
	}
	return t
}

// Len returns the number of tracks in declaration order.
func (t *Table) Len() int { return len(t.tracks) }

// Track returns the track at index i, or nil if i is out of range.
func (t *Table) Track(i int) *Track {
	if i < 0 || i >= len(t.tracks) {
		return nil
	}
	return &t.tracks[i]
}

// IndexOf returns the declaration-order index of the track named name, or
// -1 if no such track exists.
func (t *Table) IndexOf(name string) int {
	for i := range t.tracks {
		if t.tracks[i].Name == name {
			return i
		}
	}
	return -1
}

// Keys returns the track's keyframes in row order. The returned slice must
// not be mutated by the caller; use SetKey/DeleteKey instead.
func (t *Track) Keys() []Keyframe { return t.keys }

// findSegment returns k such that keys[k-1].Row <= row < keys[k].Row, with
// k=0 meaning row is before the first key and k=len(keys) meaning row is at
// or after the last key. An exact hit at index c returns c+1 directly.
func findSegment(keys []Keyframe, row uint32) int {
	n := len(keys)
	if n == 0 || row < keys[0].Row {
		return 0
	}
	a, b := 0, n
	for a+1 < b {
		c := (a + b) >> 1
		pivot := keys[c].Row
		if row == pivot {
			return c + 1
		}
		if row > pivot {
			a = c
		} else {
			b = c
		}
	}
	return a + 1
}

// sample evaluates the track at a (possibly fractional) row. Empty tracks
// sample to 0; negative rows clamp to 0; rows before the first key hold the
// first key's value; rows at or past the last key, or inside a Step
// segment, hold the segment's start value.
func sample(keys []Keyframe, row float32) float32 {
	if len(keys) == 0 {
		return 0
	}
	if row < 0 {
		row = 0
	}
	pos := findSegment(keys, uint32(row))
	if pos == 0 {
		return keys[0].Value
	}
	k0 := keys[pos-1]
	if pos >= len(keys) || k0.Interp == Step {
		return k0.Value
	}
	k1 := keys[pos]
	x := (row - float32(k0.Row)) / float32(k1.Row-k0.Row)
	x = k0.Interp.blend(x)
	return k0.Value + x*(k1.Value-k0.Value)
}

// Sample evaluates track i at the given row, or 0 if i is out of range.
func (t *Table) Sample(i int, row float32) float32 {
	tr := t.Track(i)
	if tr == nil {
		return 0
	}
	return sample(tr.keys, row)
}
