package validation

import "testing"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"msg/Temperature.msg", KindMessage},
		{"srv/Reset.srv", KindService},
		{"/abs/path/Point.MSG", KindMessage},
		{"README.md", KindUnknown},
		{"Temperature", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		if got := DetectKind(tt.path); got != tt.want {
			t.Errorf("DetectKind(%q) = %s, expected %s", tt.path, got, tt.want)
		}
	}
}
