package state

import (
	"testing"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/stretchr/testify/assert"
)

func TestPositionsMergeSingleRecord(t *testing.T) {
	p := NewPositions()
	record := types.Position{DeviceID: 1, Latitude: 45.0, Longitude: 9.0, Speed: 10}

	applied, skipped := p.MergeBatch([]types.Position{record})
	assert.Equal(t, 1, applied)
	assert.Equal(t, 0, skipped)

	got, ok := p.Get(1)
	assert.True(t, ok)
	assert.Equal(t, record, got)

	_, ok = p.Get(2)
	assert.False(t, ok)
}

func TestPositionsMergeIsIdempotent(t *testing.T) {
	batch := []types.Position{
		{DeviceID: 1, Latitude: 45.4642, Longitude: 9.19},
		{DeviceID: 2, Latitude: 41.9028, Longitude: 12.4964},
	}

	once := NewPositions()
	once.MergeBatch(batch)

	twice := NewPositions()
	twice.MergeBatch(batch)
	twice.MergeBatch(batch)

	assert.Equal(t, once.Items(), twice.Items())
}

func TestPositionsLastDuplicateWins(t *testing.T) {
	p := NewPositions()
	p.MergeBatch([]types.Position{
		{ID: 10, DeviceID: 1, Latitude: 45.0, Speed: 5},
		{ID: 11, DeviceID: 2, Latitude: 44.0},
		{ID: 12, DeviceID: 1, Latitude: 46.0, Speed: 7},
	})

	got, _ := p.Get(1)
	assert.Equal(t, types.Position{ID: 12, DeviceID: 1, Latitude: 46.0, Speed: 7}, got)
}

func TestPositionsMergeKeepsOtherDevices(t *testing.T) {
	p := NewPositions()
	p.MergeBatch([]types.Position{{DeviceID: 1, Latitude: 1}, {DeviceID: 2, Latitude: 2}})
	p.MergeBatch([]types.Position{{DeviceID: 2, Latitude: 3}})

	first, _ := p.Get(1)
	second, _ := p.Get(2)
	assert.Equal(t, 1.0, first.Latitude)
	assert.Equal(t, 3.0, second.Latitude)
}

func TestPositionsMergeSkipsRecordsWithoutDevice(t *testing.T) {
	p := NewPositions()
	applied, skipped := p.MergeBatch([]types.Position{
		{DeviceID: 0, Latitude: 1},
		{DeviceID: 3, Latitude: 2},
	})

	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, p.Len())
}

func TestPositionsStaleBatchOverwritesFresh(t *testing.T) {
	// no timestamp-based conflict resolution: the last call wins
	p := NewPositions()
	p.MergeBatch([]types.Position{{ID: 2, DeviceID: 1, Latitude: 46.0}})
	p.MergeBatch([]types.Position{{ID: 1, DeviceID: 1, Latitude: 45.0}})

	got, _ := p.Get(1)
	assert.Equal(t, int64(1), got.ID)
}

func TestPositionsClear(t *testing.T) {
	p := NewPositions()
	p.MergeBatch([]types.Position{{DeviceID: 1}})
	snapshot := p.Items()

	p.Clear()
	assert.Equal(t, 0, p.Len())
	assert.Len(t, snapshot, 1)
}

func TestSelectionTransitions(t *testing.T) {
	var s Selection

	_, ok := s.Selected()
	assert.False(t, ok)

	assert.True(t, s.Select(7))
	assert.False(t, s.Select(7))
	id, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	assert.True(t, s.Select(8))
	assert.True(t, s.Clear())
	assert.False(t, s.Clear())
	_, ok = s.Selected()
	assert.False(t, ok)
}
