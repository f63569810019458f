package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.22 Routing!", "go-1-22-routing"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"multiple---dashes___and   spaces", "multiple-dashes-and-spaces"},
		{"ALLCAPS", "allcaps"},
		{"éclair au café", "éclair-au-café"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
