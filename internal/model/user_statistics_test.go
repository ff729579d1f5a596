package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyCountsColumn(t *testing.T) {
	counts := NewDifficultyCounts()
	counts["easy"] = 3
	counts["legendary"] = 1

	raw, err := counts.Value()
	require.NoError(t, err)

	var scanned DifficultyCounts
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, counts, scanned)

	// NULL column reads back as the seeded default.
	var fromNull DifficultyCounts
	require.NoError(t, fromNull.Scan(nil))
	assert.Equal(t, NewDifficultyCounts(), fromNull)
}

func TestKeyedCountsColumn(t *testing.T) {
	counts := KeyedCounts{
		"math": {Correct: 2, Total: 5},
		"go":   {Correct: 1, Total: 1},
	}

	raw, err := counts.Value()
	require.NoError(t, err)

	var scanned KeyedCounts
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, counts, scanned)

	var fromNull KeyedCounts
	require.NoError(t, fromNull.Scan(nil))
	assert.Empty(t, fromNull)
	assert.NotNil(t, fromNull)
}

func TestCloneIndependence(t *testing.T) {
	orig := KeyedCounts{"math": {Correct: 1, Total: 2}}
	clone := orig.Clone()
	clone["math"] = CorrectTotal{Correct: 2, Total: 3}

	assert.Equal(t, CorrectTotal{Correct: 1, Total: 2}, orig["math"])

	diff := NewDifficultyCounts()
	diffClone := diff.Clone()
	diffClone["easy"] = 9
	assert.Equal(t, int64(0), diff["easy"])
}

func TestDefaultStatistics(t *testing.T) {
	stats := DefaultStatistics(11)

	assert.Equal(t, uint(11), stats.UserID)
	assert.Zero(t, stats.SolvedTasks)
	assert.Zero(t, stats.SuccessRate)
	assert.Zero(t, stats.AverageScore)
	assert.Nil(t, stats.LastActivityAt)
	assert.Equal(t, DifficultyCounts{"easy": 0, "medium": 0, "hard": 0}, stats.TasksByDifficulty)
	assert.Empty(t, stats.TasksByTopic)
	assert.Empty(t, stats.TasksByType)
}
