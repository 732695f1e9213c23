package util

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hola  mundo ", "hola mundo"},
		{"con nbsp", "con nbsp"},
		{"lineas\n\t separadas", "lineas separadas"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ubicación: Santa Fe", "Santa Fe"},
		{"Santa Fe, santa fe, Rosario", "Santa Fe, Rosario"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.in); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
