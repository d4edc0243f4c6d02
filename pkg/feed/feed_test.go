package feed

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"a&amp;b &lt;ok&gt;", "a&b <ok>"},
		{"<p>one</p><p>two</p>", "one two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Machine Learning", "machinelearning"},
		{"  tech  ", "tech"},
		{"AI", "ai"},
	}

	for _, tt := range tests {
		if got := tagTerm(tt.in); got != tt.want {
			t.Errorf("tagTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
