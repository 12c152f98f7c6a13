package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingComments(t *testing.T) {
	testCases := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "line comments",
			sql:  "-- Customer dimension\n--   owner: data-eng\nSELECT 1",
			want: "Customer dimension\nowner: data-eng",
		},
		{
			name: "block comment with stars",
			sql:  "/*\n * Orders fact table.\n * Refreshed daily.\n */\nSELECT 1",
			want: "Orders fact table.\nRefreshed daily.",
		},
		{
			name: "mixed comments before code",
			sql:  "\n\n-- first\n/* second */\nSELECT 1 -- not leading",
			want: "first\nsecond",
		},
		{
			name: "comments after code are ignored",
			sql:  "SELECT 1 -- trailing",
			want: "",
		},
		{
			name: "unterminated block keeps what came before",
			sql:  "-- ok\n/* broken",
			want: "ok",
		},
		{
			name: "empty",
			sql:  "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LeadingComments(tc.sql))
		})
	}
}
