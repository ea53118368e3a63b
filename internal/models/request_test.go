package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/models"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func Test_BorrowRequest_Overlaps(t *testing.T) {
	existing := models.BorrowRequest{
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-10"),
	}

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{
			name:     "inner_interval_overlaps",
			start:    "2024-01-03",
			end:      "2024-01-07",
			expected: true,
		},
		{
			name:     "partial_overlap_at_tail",
			start:    "2024-01-05",
			end:      "2024-01-15",
			expected: true,
		},
		{
			name:     "partial_overlap_at_head",
			start:    "2023-12-20",
			end:      "2024-01-01",
			expected: true,
		},
		{
			name:     "touching_end_boundary_overlaps",
			start:    "2024-01-10",
			end:      "2024-01-20",
			expected: true,
		},
		{
			name:     "covering_interval_overlaps",
			start:    "2023-12-01",
			end:      "2024-02-01",
			expected: true,
		},
		{
			name:     "disjoint_after",
			start:    "2024-01-11",
			end:      "2024-01-20",
			expected: false,
		},
		{
			name:     "disjoint_before",
			start:    "2023-12-01",
			end:      "2023-12-31",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, existing.Overlaps(date(tc.start), date(tc.end)))
		})
	}
}
