package models

import (
	"reflect"
	"testing"
)

func TestParseParticipantIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty string", "", nil},
		{"single id", "1", []int64{1}},
		{"comma separated", "1,2,3", []int64{1, 2, 3}},
		{"whitespace around ids", " 1 , 2 ,3 ", []int64{1, 2, 3}},
		{"non numeric discarded", "1,abc,2", []int64{1, 2}},
		{"negative discarded", "-1,2", []int64{2}},
		{"decimal discarded", "1.5,2", []int64{2}},
		{"empty entries skipped", "1,,2,", []int64{1, 2}},
		{"duplicates collapsed", "2,1,2", []int64{2, 1}},
		{"overflow discarded", "99999999999999999999,4", []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseParticipantIDs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseParticipantIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitParticipantIDs(t *testing.T) {
	tests := []struct {
		input     string
		want      []int64
		malformed int
	}{
		{"", nil, 0},
		{"1,2,3", []int64{1, 2, 3}, 0},
		{"2,1,2,2", []int64{2, 1}, 0},
		{"1,,2, ", []int64{1, 2}, 0},
		{"1,x,-3,2.5", []int64{1}, 3},
		{"99999999999999999999,4,4", []int64{4}, 1},
	}

	for _, tt := range tests {
		ids, malformed := SplitParticipantIDs(tt.input)
		if !reflect.DeepEqual(ids, tt.want) || malformed != tt.malformed {
			t.Errorf("SplitParticipantIDs(%q) = %v, %d; want %v, %d", tt.input, ids, malformed, tt.want, tt.malformed)
		}
	}
}

func TestFormatParticipantIDs(t *testing.T) {
	if got := FormatParticipantIDs([]int64{3, 1, 2}); got != "3,1,2" {
		t.Errorf("FormatParticipantIDs = %q, want %q", got, "3,1,2")
	}
	if got := FormatParticipantIDs(nil); got != "" {
		t.Errorf("FormatParticipantIDs(nil) = %q, want empty", got)
	}
}
