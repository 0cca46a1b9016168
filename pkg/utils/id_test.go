package utils

import "testing"

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: NewID(), want: true},
		{id: "6f1c2a3e-0b7d-4c8e-9a51-2d3f4e5a6b7c", want: true},
		{id: "", want: false},
		{id: "123", want: false},
		{id: "6f1c2a3e0b7d4c8e9a512d3f4e5a6b7c", want: false},
		{id: "urn:uuid:6f1c2a3e-0b7d-4c8e-9a51-2d3f4e5a6b7c", want: false},
		{id: "zzzzzzzz-0b7d-4c8e-9a51-2d3f4e5a6b7c", want: false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q): expected %v, got %v", tt.id, tt.want, got)
		}
	}
}
