package content

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("A **bold** list:\n\n- one\n- two\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"<strong>bold</strong>", "<ul>", "<li>one</li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %q", want, html)
		}
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html, err := RenderMarkdown("hi <script>alert(1)</script> [x](javascript:alert(1))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("expected script to be removed, got %q", html)
	}
	if strings.Contains(html, "javascript:") {
		t.Errorf("expected javascript link to be removed, got %q", html)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	html, err := RenderMarkdown("see [docs](https://example.com)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `rel="nofollow`) {
		t.Errorf("expected nofollow on links, got %q", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Errorf("expected target=_blank on external links, got %q", html)
	}
}
