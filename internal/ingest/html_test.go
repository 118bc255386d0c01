package ingest

import "testing"

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Simple description.", "Simple description."},
		{"markup flattened", "<p>Seeking <b>Drupal</b> vendor.</p>", "Seeking Drupal vendor."},
		{"script stripped", `<script>alert(1)</script>Legitimate scope of work`, "Legitimate scope of work"},
		{"whitespace collapsed", "Line one\n\n   Line   two", "Line one Line two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDescription(tt.in); got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	got := HTMLToText("<div><h1>RFP</h1> <p>Details here</p></div>")
	if got != "RFP Details here" {
		t.Errorf("HTMLToText = %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateText("a very long description", 10); got != "a very ..." {
		t.Errorf("truncated = %q, want %q", got, "a very ...")
	}
	if len(TruncateText("abcdef", 3)) != 3 {
		t.Errorf("tiny max length not honored")
	}
}
