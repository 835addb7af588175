package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Title\n\nsome **bold** text")
	if !strings.Contains(out, "<h1") {
		t.Errorf("Expected heading in output, got %s", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("Expected bold in output, got %s", out)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown("hello <script>alert(1)</script>")
	if strings.Contains(out, "<script>") {
		t.Errorf("Script tag survived sanitization: %s", out)
	}
}

func TestRenderMarkdownImageAttributes(t *testing.T) {
	out := RenderMarkdown("![alt](https://example.com/a.png)")
	if !strings.Contains(out, `loading="lazy"`) {
		t.Errorf("Expected lazy loading attribute, got %s", out)
	}
	if !strings.Contains(out, `referrerpolicy="no-referrer"`) {
		t.Errorf("Expected referrerpolicy attribute, got %s", out)
	}
}
