package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/models"
)

func Test_ParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{
			name:  "valid_iso_dates",
			start: "2024-01-01",
			end:   "2024-01-10",
		},
		{
			name:    "garbage_start_date",
			start:   "01.01.2024",
			end:     "2024-01-10",
			wantErr: true,
		},
		{
			name:    "garbage_end_date",
			start:   "2024-01-01",
			end:     "next week",
			wantErr: true,
		},
		{
			name:    "empty_dates",
			start:   "",
			end:     "",
			wantErr: true,
		},
		{
			// Перевёрнутый период не отклоняется, предикат пересечения
			// определён для любой пары дат.
			name:  "end_before_start_is_accepted",
			start: "2024-01-10",
			end:   "2024-01-01",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := parsePeriod(tc.start, tc.end)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrBadDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.start, start.Format(dateLayout))
			assert.Equal(t, tc.end, end.Format(dateLayout))
		})
	}
}

func Test_BuildHistoryCSV(t *testing.T) {
	t.Run("empty_history_has_only_header", func(t *testing.T) {
		blob, err := buildHistoryCSV(nil)
		require.NoError(t, err)
		assert.Equal(t, "Book Title,Start Date,End Date,Status\n", blob)
	})

	t.Run("rows_follow_header_in_order", func(t *testing.T) {
		entries := []models.HistoryEntry{
			{BookTitle: "Собачье сердце", StartDate: "2024-01-01", EndDate: "2024-01-10", Status: "Approved"},
			{BookTitle: "Война и мир", StartDate: "2024-02-01", EndDate: "2024-02-05", Status: "Denied"},
		}

		blob, err := buildHistoryCSV(entries)
		require.NoError(t, err)

		expected := "Book Title,Start Date,End Date,Status\n" +
			"Собачье сердце,2024-01-01,2024-01-10,Approved\n" +
			"Война и мир,2024-02-01,2024-02-05,Denied\n"
		assert.Equal(t, expected, blob)
	})

	t.Run("titles_with_commas_are_quoted", func(t *testing.T) {
		entries := []models.HistoryEntry{
			{BookTitle: "Аннотации, заметки", StartDate: "2024-03-01", EndDate: "2024-03-02", Status: "Pending"},
		}

		blob, err := buildHistoryCSV(entries)
		require.NoError(t, err)
		assert.Contains(t, blob, `"Аннотации, заметки",2024-03-01,2024-03-02,Pending`)
	})
}
