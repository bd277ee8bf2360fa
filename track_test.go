package crocket

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func newSingleTrackTable() *Table {
	return NewTable([]TrackDescriptor{{Name: "x", Value: new(float32)}})
}

func TestSampleEmptyTrackIsZero(t *testing.T) {
	table := newSingleTrackTable()
	assert.Equal(t, float32(0), table.Sample(0, 0))
	assert.Equal(t, float32(0), table.Sample(0, 100))
}

func TestSampleSingleLinearSegment(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 0, Linear)
	table.SetKey(0, 10, 10, Linear)

	assert.Equal(t, float32(0), table.Sample(0, 0))
	assert.Equal(t, float32(5), table.Sample(0, 5))
	assert.Equal(t, float32(10), table.Sample(0, 10))
}

func TestSampleSmoothstepMidpoint(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 0, Smoothstep)
	table.SetKey(0, 10, 10, Smoothstep)

	assert.InDelta(t, 5, table.Sample(0, 5), 1e-4)
}

func TestSampleStepHoldsSegmentStart(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 1, Step)
	table.SetKey(0, 10, 2, Step)

	assert.Equal(t, float32(1), table.Sample(0, 5))
	assert.Equal(t, float32(1), table.Sample(0, 9))
}

func TestSampleBeforeFirstKeyHoldsFirstValue(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 10, 42, Linear)
	assert.Equal(t, float32(42), table.Sample(0, 0))
}

func TestSampleAfterLastKeyHoldsLastValue(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 1, Linear)
	table.SetKey(0, 10, 2, Linear)
	assert.Equal(t, float32(2), table.Sample(0, 999))
}

func TestSampleNegativeRowClampsToZero(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 5, Linear)
	table.SetKey(0, 10, 15, Linear)
	assert.Equal(t, table.Sample(0, 0), table.Sample(0, -100))
}

func TestFindSegmentExactHit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.SliceOfNDistinct(rapid.Uint32Range(0, 1000), 1, 30, func(r uint32) uint32 { return r }).Draw(t, "rows")
		sort.Slice(rows, func(a, b int) bool { return rows[a] < rows[b] })

		keys := make([]Keyframe, len(rows))
		for i, r := range rows {
			keys[i] = Keyframe{Row: r, Value: float32(r), Interp: Linear}
		}

		for i, k := range keys {
			assert.Equal(t, i+1, findSegment(keys, k.Row))
		}
	})
}

func TestFindSegmentBeforeFirstIsZero(t *testing.T) {
	keys := []Keyframe{{Row: 10}, {Row: 20}}
	assert.Equal(t, 0, findSegment(keys, 0))
	assert.Equal(t, 0, findSegment(keys, 9))
}

func TestFindSegmentAfterLastIsLen(t *testing.T) {
	keys := []Keyframe{{Row: 10}, {Row: 20}}
	assert.Equal(t, 2, findSegment(keys, 21))
}

func TestIndexOf(t *testing.T) {
	table := NewTable([]TrackDescriptor{
		{Name: "a", Value: new(float32)},
		{Name: "b", Value: new(float32)},
	})
	assert.Equal(t, 0, table.IndexOf("a"))
	assert.Equal(t, 1, table.IndexOf("b"))
	assert.Equal(t, -1, table.IndexOf("c"))
}
