package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYear(t *testing.T) {
	tests := []struct {
		date    string
		year    string
		display string
	}{
		{"1999-03-31", "1999", "1999"},
		{"2004", "2004", "2004"},
		{"", "", "n/a"},
		{"03/31/1999", "", "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			m := MovieSummary{ReleaseDate: tt.date}
			assert.Equal(t, tt.year, m.Year())
			assert.Equal(t, tt.display, m.DisplayYear())
		})
	}
}

func TestSearchStateMode(t *testing.T) {
	tests := []struct {
		name  string
		state SearchState
		want  DisplayMode
	}{
		{"idle", SearchState{}, DisplayIdle},
		{"loading", SearchState{Query: "x", Loading: true}, DisplayLoading},
		{"error", SearchState{Query: "x", Error: true, ErrorMessage: MsgFetchFailed}, DisplayError},
		{"results", SearchState{Query: "x", TotalPages: 1, Items: []MovieSummary{{ID: "1"}}}, DisplayResults},
		{"cleared while results kept", SearchState{TotalPages: 3, Items: []MovieSummary{{ID: "1"}}}, DisplayIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Mode())
			assert.Equal(t, tt.want == DisplayResults, tt.state.CanPage())
		})
	}
}
