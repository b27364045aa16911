package tool

import "testing"

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{32505856, "31.00 MB"},
		{1073741824, "1.00 GB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain.mp3", "plain.mp3"},
		{`<b>x&y</b>`, "&lt;b&gt;x&amp;y&lt;&#x2F;b&gt;"},
		{`a"b'c`, "a&quot;b&#39;c"},
		{"path/to/file", "path&#x2F;to&#x2F;file"},
	}
	for _, tc := range cases {
		if got := EscapeMarkup(tc.in); got != tc.want {
			t.Errorf("EscapeMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
