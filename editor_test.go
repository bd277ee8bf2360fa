package crocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSetKeyInsertKeepsOrder(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 20, 2, Linear)
	table.SetKey(0, 0, 0, Linear)
	table.SetKey(0, 10, 1, Linear)

	keys := table.Track(0).Keys()
	assert.Len(t, keys, 3)
	for i := 0; i+1 < len(keys); i++ {
		assert.Less(t, keys[i].Row, keys[i+1].Row)
	}
}

func TestSetKeyOverwriteExactRow(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 10, 1, Linear)
	table.SetKey(0, 10, 2, Step)

	keys := table.Track(0).Keys()
	assert.Len(t, keys, 1)
	assert.Equal(t, float32(2), keys[0].Value)
	assert.Equal(t, Step, keys[0].Interp)
}

func TestDeleteKeyRemovesExactRow(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 0, Linear)
	table.SetKey(0, 10, 1, Linear)
	table.DeleteKey(0, 0)

	keys := table.Track(0).Keys()
	assert.Len(t, keys, 1)
	assert.Equal(t, uint32(10), keys[0].Row)
}

func TestDeleteKeyMissIsNoop(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(0, 0, 0, Linear)
	table.DeleteKey(0, 5)
	assert.Len(t, table.Track(0).Keys(), 1)
}

func TestSetDeleteOutOfRangeIndexIsNoop(t *testing.T) {
	table := newSingleTrackTable()
	table.SetKey(5, 0, 0, Linear)
	table.DeleteKey(5, 0)
	assert.Equal(t, 1, table.Len())
}

func TestSetKeyStaysStrictlyIncreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		table := newSingleTrackTable()
		rows := rapid.SliceOfN(rapid.Uint32Range(0, 500), 0, 40).Draw(t, "rows")
		for _, r := range rows {
			table.SetKey(0, r, float32(r), Linear)
		}

		keys := table.Track(0).Keys()
		for i := 0; i+1 < len(keys); i++ {
			assert.Less(t, keys[i].Row, keys[i+1].Row)
		}
	})
}

func TestResetClearsAllTracks(t *testing.T) {
	table := NewTable([]TrackDescriptor{
		{Name: "a", Value: new(float32)},
		{Name: "b", Value: new(float32)},
	})
	table.SetKey(0, 0, 1, Linear)
	table.SetKey(1, 0, 2, Linear)
	table.reset()
	assert.Empty(t, table.Track(0).Keys())
	assert.Empty(t, table.Track(1).Keys())
}
