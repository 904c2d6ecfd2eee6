package page

import (
	"strings"
	"testing"
)

func TestReplaceImages(t *testing.T) {
	p, err := NewPlaceholder("https://placehold.jp/{{ .Width }}x{{ .Height }}.png", 150, 150)
	if err != nil {
		t.Fatalf("NewPlaceholder() error = %v", err)
	}

	html := `<html><head></head><body>
<img src="a.jpg" srcset="a-2x.jpg 2x" alt="A">
<img src="b.jpg" width="320" height="200px">
<img src="c.jpg" width="auto">
</body></html>`

	got, count, err := ReplaceImages(html, p)
	if err != nil {
		t.Fatalf("ReplaceImages() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if strings.Contains(got, "srcset") {
		t.Errorf("srcset should be removed:\n%s", got)
	}
	for _, want := range []string{
		`<img src="https://placehold.jp/150x150.png" alt="A"/>`,
		`<img src="https://placehold.jp/320x200.png" width="320" height="200px"/>`,
		`<img src="https://placehold.jp/150x150.png" width="auto"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in:\n%s", want, got)
		}
	}
}

func TestPlaceholder_SprigFunctions(t *testing.T) {
	p, err := NewPlaceholder(`https://dummyimage.com/{{ .Width }}x{{ .Height }}?text={{ .Alt | default "image" | urlquery }}`, 10, 20)
	if err != nil {
		t.Fatalf("NewPlaceholder() error = %v", err)
	}

	got, err := p.Source(Image{Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if got != "https://dummyimage.com/10x20?text=image" {
		t.Errorf("Source() = %q", got)
	}
}

func TestNewPlaceholder_Invalid(t *testing.T) {
	if _, err := NewPlaceholder("{{ .Width ", 1, 1); err == nil {
		t.Error("expected error for malformed template")
	}
}

func TestReplaceImages_TemplateError(t *testing.T) {
	p, err := NewPlaceholder("{{ .Missing }}", 1, 1)
	if err != nil {
		t.Fatalf("NewPlaceholder() error = %v", err)
	}
	if _, _, err := ReplaceImages(`<img src="a.png">`, p); err == nil {
		t.Error("expected template execution error")
	}
}
