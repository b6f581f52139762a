package services

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"github.com/x", "https://github.com/x"},
		{"www.github.com/x", "https://github.com/x"},
		{"www.linkedin.com/in/x", "https://linkedin.com/in/x"},
		{"WWW.twitter.com/x", "https://twitter.com/x"},
		{"https://github.com/x", "https://github.com/x"},
		{"http://www.example.com", "http://www.example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"  github.com/x  ", "https://github.com/x"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeURL(tt.input); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
