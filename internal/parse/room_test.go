package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomLabel(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  RoomLabel
		expectErr bool
	}{
		{
			name:     "Dashed label",
			raw:      "A-2-14",
			expected: RoomLabel{Block: "A", Floor: 2, Number: 14},
		},
		{
			name:     "Hash separator",
			raw:      "B#1-2",
			expected: RoomLabel{Block: "B", Floor: 1, Number: 2},
		},
		{
			name:     "Named block with floor suffix",
			raw:      "North Hall 3F-07",
			expected: RoomLabel{Block: "North Hall", Floor: 3, Number: 7},
		},
		{
			name:     "Extra whitespace",
			raw:      "  West   Wing  10 - 1 ",
			expected: RoomLabel{Block: "West Wing", Floor: 10, Number: 1},
		},
		{
			name:     "No room number",
			raw:      "Annex 5",
			expected: RoomLabel{Block: "Annex", Floor: 5, Number: 0},
		},
		{
			name:      "No floor",
			raw:       "Penthouse",
			expectErr: true,
		},
		{
			name:      "Digits only",
			raw:       "12",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseRoomLabel(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			}
		})
	}
}
