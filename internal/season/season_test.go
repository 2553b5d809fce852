package season_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/fcvanlose/clubstats/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorKey(t *testing.T) {
	d := season.Descriptor{Year: 2024, Month: time.May}
	assert.Equal(t, "2024-05", d.Key())
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local), d.Start())
	assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.Local), d.End())
}

func TestParseKey(t *testing.T) {
	d, err := season.ParseKey("2024-02")
	require.NoError(t, err)
	assert.Equal(t, season.Descriptor{Year: 2024, Month: time.February}, d)
	// February end respects leap years.
	assert.Equal(t, 29, d.End().Day())

	_, err = season.ParseKey("not-a-season")
	assert.Error(t, err)
}

func TestCurrent(t *testing.T) {
	now := time.Date(2024, time.May, 17, 13, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-05", season.Current(now).Key())
}

func TestWeekOfMonthRange(t *testing.T) {
	// Every day of every month of a leap year and a non-leap year stays in [1,4].
	for _, year := range []int{2023, 2024} {
		for month := time.January; month <= time.December; month++ {
			last := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
			prev := 0
			for day := 1; day <= last; day++ {
				week := season.WeekOfMonth(time.Date(year, month, day, 12, 0, 0, 0, time.Local))
				assert.GreaterOrEqual(t, week, 1, "year=%d month=%d day=%d", year, month, day)
				assert.LessOrEqual(t, week, 4, "year=%d month=%d day=%d", year, month, day)
				assert.GreaterOrEqual(t, week, prev, "week must not decrease within a month")
				prev = week
			}
		}
	}
}

func TestWeekOfMonthFirstDay(t *testing.T) {
	// The 1st of any month is always week 1, including months starting on a Monday.
	// July 2024 starts on a Monday (offset 0).
	assert.Equal(t, 1, season.WeekOfMonth(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)))
	// September 2024 starts on a Sunday (offset 6).
	assert.Equal(t, 1, season.WeekOfMonth(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.Local)))
}

func TestWeekOfMonthKnownDates(t *testing.T) {
	// July 2024: Monday start, clean 7-day weeks.
	assert.Equal(t, 1, season.WeekOfMonth(time.Date(2024, time.July, 7, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, 2, season.WeekOfMonth(time.Date(2024, time.July, 8, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, 4, season.WeekOfMonth(time.Date(2024, time.July, 22, 0, 0, 0, 0, time.Local)))
	// Day 29+ folds into week 4.
	assert.Equal(t, 4, season.WeekOfMonth(time.Date(2024, time.July, 31, 0, 0, 0, 0, time.Local)))
}

func TestCheckRollover(t *testing.T) {
	current := season.Descriptor{Year: 2024, Month: time.May}

	t.Run("no rollover within the month", func(t *testing.T) {
		now := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.Local)
		assert.Nil(t, season.CheckRollover(current, now))
	})

	t.Run("rollover at the month boundary", func(t *testing.T) {
		now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
		ev := season.CheckRollover(current, now)
		require.NotNil(t, ev)
		assert.Equal(t, "2024-05", ev.Outgoing.SeasonKey)
		assert.Equal(t, "2024-06", ev.NewSeason.Key())
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local), ev.Outgoing.StartDate)
		assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.Local), ev.Outgoing.EndDate)
	})

	t.Run("rollover across years", func(t *testing.T) {
		dec := season.Descriptor{Year: 2024, Month: time.December}
		ev := season.CheckRollover(dec, time.Date(2025, time.January, 1, 0, 0, 1, 0, time.Local))
		require.NotNil(t, ev)
		assert.Equal(t, "2025-01", ev.NewSeason.Key())
	})
}

func TestAppendArchiveDedup(t *testing.T) {
	first := season.Descriptor{Year: 2024, Month: time.May}.PastRecord()
	var list []season.PastSeasonRecord
	list = season.AppendArchive(list, first)

	// A second rollover resolving to the same key (clock anomaly) must not
	// produce a duplicate; the most recent write wins.
	again := first
	again.EndDate = again.EndDate.Add(24 * time.Hour)
	list = season.AppendArchive(list, again)

	require.Len(t, list, 1)
	assert.Equal(t, "2024-05", list[0].SeasonKey)
	assert.Equal(t, again.EndDate, list[0].EndDate)
}

func TestAppendArchiveCapAndOrder(t *testing.T) {
	var list []season.PastSeasonRecord
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 30; i++ {
		d := season.Current(start.AddDate(0, i, 0))
		list = season.AppendArchive(list, d.PastRecord())
	}

	require.Len(t, list, season.MaxArchiveEntries)
	// Newest first: the last appended season leads, the oldest six fell off.
	assert.Equal(t, "2024-06", list[0].SeasonKey)
	assert.Equal(t, "2022-07", list[len(list)-1].SeasonKey)
	for i := 0; i < len(list)-1; i++ {
		assert.Greater(t, list[i].SeasonKey, list[i+1].SeasonKey, fmt.Sprintf("entry %d out of order", i))
	}
}
