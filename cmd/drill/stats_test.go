package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/store"
)

func activeStat(num, correct, incorrect int) *cardStat {
	return &cardStat{
		Card:      &store.Card{Num: num, Question: "q", IsActive: true},
		Correct:   correct,
		Incorrect: incorrect,
	}
}

func TestAnswerHistogramGroupsEqualRuns(t *testing.T) {
	stats := []*cardStat{
		activeStat(1, 5, 0),
		activeStat(2, 5, 0),
		activeStat(3, 2, 1),
		activeStat(4, 1, 3),
		{Card: &store.Card{Num: 5}, Correct: 9, Incorrect: 9}, // inactive, ignored
	}

	buckets, maxValue := answerHistogram(stats)
	require.Len(t, buckets, 3)
	// Best performers first: fewest misses, then most hits.
	assert.Equal(t, &answerBucket{Correct: 5, Incorrect: 0, Weight: 2}, buckets[0])
	assert.Equal(t, &answerBucket{Correct: 2, Incorrect: 1, Weight: 1}, buckets[1])
	assert.Equal(t, &answerBucket{Correct: 1, Incorrect: 3, Weight: 1}, buckets[2])
	assert.Equal(t, 5, maxValue)
}

func TestActivityHistogram(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -300)
	recent := now.AddDate(0, 0, -3)

	stats := []*cardStat{
		{Card: &store.Card{Num: 1, IsActive: true}, FirstAnswer: &old},
		{Card: &store.Card{Num: 2, IsActive: true}, FirstAnswer: &recent},
		{Card: &store.Card{Num: 3}},
	}

	histogram, maxValue := activityHistogram(stats, now)
	require.Len(t, histogram, 52)
	// A year ago nothing had been answered; by last week both cards had.
	assert.Equal(t, 0, histogram[0])
	assert.Equal(t, 2, histogram[len(histogram)-1])
	assert.Equal(t, 2, maxValue)

	for i := 1; i < len(histogram); i++ {
		assert.GreaterOrEqual(t, histogram[i], histogram[i-1])
	}
}

func TestBadCards(t *testing.T) {
	stats := []*cardStat{
		activeStat(1, 9, 1),  // 90%, fine
		activeStat(2, 1, 3),  // 25%
		activeStat(3, 2, 2),  // 50%
		activeStat(4, 0, 0),  // never answered, skipped
	}

	bad := badCards(stats)
	require.Len(t, bad, 2)
	// Worst ratio first.
	assert.Equal(t, 2, bad[0].Card.Num)
	assert.Equal(t, 3, bad[1].Card.Num)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50.00", percent(1, 2))
	assert.Equal(t, "100.00", percent(0, 0))
	assert.Equal(t, "33.33", percent(1, 3))
}

func TestWriteStatsReport(t *testing.T) {
	report := &statsReport{
		Deck:                 &store.Deck{Name: "japanese", Description: "vocab"},
		GeneratedAt:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		ActiveCardCount:      3,
		InactiveCardCount:    1,
		CorrectAnswerCount:   12,
		IncorrectAnswerCount: 4,
		MaxAnswerCount:       6,
		AnswerHistogram:      []*answerBucket{{Correct: 4, Incorrect: 1, Weight: 2}},
		AnswerHistogramMax:   5,
		ActivityHistogram:    []int{0, 1, 3},
		ActivityHistogramMax: 3,
		BadCards: []*cardStat{
			{Card: &store.Card{Num: 7, Question: "taberu"}, Correct: 1, Incorrect: 3},
		},
		BadCardsThreshold: badCardsThreshold,
	}

	var out strings.Builder
	require.NoError(t, writeStatsReport(report, &out))

	html := out.String()
	assert.Contains(t, html, "japanese")
	assert.Contains(t, html, "Cards below 75% correct")
	assert.Contains(t, html, "taberu")
	assert.Contains(t, html, "#7")
}

func TestParseExportTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-06-01T12:00:00Z", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:00:00", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:00:00.500000", time.Date(2024, 6, 1, 12, 0, 0, 500000000, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseExportTime(tt.input)
		require.NoError(t, err)
		assert.True(t, got.Equal(tt.want), "parsing %s", tt.input)
	}

	_, err := parseExportTime("yesterday")
	assert.Error(t, err)
}
