package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stockpile/backend/internal/stats"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want stats.Range
	}{
		{"last week", stats.RangeLastWeek},
		{"last month", stats.RangeLastMonth},
		{"last year", stats.RangeLastYear},
		{"last 3 years", stats.RangeLast3Years},
		{"", stats.RangeLastWeek},
		{"yesterday", stats.RangeLastWeek},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.ParseRange(tt.in))
		})
	}
}

func TestRange_Buckets(t *testing.T) {
	assert.Equal(t, 7, stats.RangeLastWeek.Buckets())
	assert.Equal(t, 31, stats.RangeLastMonth.Buckets())
	assert.Equal(t, 12, stats.RangeLastYear.Buckets())
	assert.Equal(t, 36, stats.RangeLast3Years.Buckets())
}

func TestRange_Granularity(t *testing.T) {
	assert.Equal(t, stats.ByDay, stats.RangeLastWeek.Granularity())
	assert.Equal(t, stats.ByDay, stats.RangeLastMonth.Granularity())
	assert.Equal(t, stats.ByMonth, stats.RangeLastYear.Granularity())
	assert.Equal(t, stats.ByMonth, stats.RangeLast3Years.Granularity())
}

func TestRange_WindowStart(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.June, 8, 10, 0, 0, 0, time.UTC), stats.RangeLastWeek.WindowStart(now))
	assert.Equal(t, time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC), stats.RangeLastMonth.WindowStart(now))
	assert.Equal(t, time.Date(2023, time.June, 15, 10, 0, 0, 0, time.UTC), stats.RangeLastYear.WindowStart(now))
	assert.Equal(t, time.Date(2021, time.June, 15, 10, 0, 0, 0, time.UTC), stats.RangeLast3Years.WindowStart(now))
}

func TestRange_Slot(t *testing.T) {
	// 2024-06-15 is a Saturday.
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    stats.Range
		t    time.Time
		want int
	}{
		{
			name: "week sunday is slot one",
			r:    stats.RangeLastWeek,
			t:    time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "week tuesday is slot three",
			r:    stats.RangeLastWeek,
			t:    time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
		{
			name: "month uses day of month",
			r:    stats.RangeLastMonth,
			t:    time.Date(2024, time.May, 28, 0, 0, 0, 0, time.UTC),
			want: 28,
		},
		{
			name: "year uses month of year",
			r:    stats.RangeLastYear,
			t:    time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
			want: 9,
		},
		{
			name: "year current month lands in its slot",
			r:    stats.RangeLastYear,
			t:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "year same month one year back is out of series",
			r:    stats.RangeLastYear,
			t:    time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "three years oldest month in series",
			r:    stats.RangeLast3Years,
			t:    time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "three years mid-series month",
			r:    stats.RangeLast3Years,
			t:    time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC),
			want: 14,
		},
		{
			name: "three years current month lands in the last slot",
			r:    stats.RangeLast3Years,
			t:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 36,
		},
		{
			name: "three years before series is dropped",
			r:    stats.RangeLast3Years,
			t:    time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "week same weekday one week back is out of series",
			r:    stats.RangeLastWeek,
			t:    time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "week current day lands in its slot",
			r:    stats.RangeLastWeek,
			t:    time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "month same day one month back is out of series",
			r:    stats.RangeLastMonth,
			t:    time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Slot(tt.t, now))
		})
	}
}
