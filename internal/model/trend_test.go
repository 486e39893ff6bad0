package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstQuery(t *testing.T) {
	tests := []struct {
		name   string
		rows   []RisingQuery
		want   string
		wantOK bool
	}{
		{name: "no rows", rows: nil},
		{name: "blank first row", rows: []RisingQuery{{Query: "  "}, {Query: "cancun"}}},
		{name: "first row wins", rows: []RisingQuery{{Query: "spring break deals cancun"}, {Query: "sxsw"}}, want: "spring break deals cancun", wantOK: true},
		{name: "text returned unchanged", rows: []RisingQuery{{Query: " Cancun  resorts "}}, want: " Cancun  resorts ", wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstQuery(tt.rows)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
