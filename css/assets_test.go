package css

import (
	"strings"
	"testing"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestRemoveDataURLs(t *testing.T) {
	input := `.hero { background-image: url("data:image/png;base64,` + pixelPNG + `"); color: red; }
.logo { background: url(data:image/png;base64,` + pixelPNG + `) no-repeat; }
.icon { mask: url('icon.svg'); }`

	got, removed := RemoveDataURLs(input)

	if strings.Contains(got, "base64") {
		t.Errorf("expected data URLs to be removed, got:\n%s", got)
	}
	if strings.Contains(got, "background-image") {
		t.Errorf("expected emptied background-image declaration to be removed, got:\n%s", got)
	}
	if !strings.Contains(got, "background: none no-repeat;") {
		t.Errorf("expected shorthand with other values to stay, got:\n%s", got)
	}
	if !strings.Contains(got, "url('icon.svg')") || !strings.Contains(got, "color: red;") {
		t.Errorf("unrelated content changed:\n%s", got)
	}

	if len(removed) != 2 {
		t.Fatalf("expected 2 removed payloads, got %d", len(removed))
	}
	for _, d := range removed {
		if d.Declared != "image/png" {
			t.Errorf("Declared = %q, want image/png", d.Declared)
		}
		if d.Detected != "image/png" {
			t.Errorf("Detected = %q, want image/png", d.Detected)
		}
		if d.Size == 0 {
			t.Error("Size should not be zero")
		}
	}
}

func TestRemoveDataURLs_None(t *testing.T) {
	input := `p { background: none; }`
	got, removed := RemoveDataURLs(input)
	if got != input {
		t.Errorf("expected identity when there are no data URLs, got %q", got)
	}
	if removed != nil {
		t.Errorf("expected nothing removed, got %v", removed)
	}
}

func TestRemoveDataURLs_UnknownPayload(t *testing.T) {
	got, removed := RemoveDataURLs(`a { background-image: url(data:application/x-thing;base64,AAAA); }`)
	if strings.TrimSpace(got) != "a {  }" {
		t.Errorf("unexpected output %q", got)
	}
	if len(removed) != 1 || removed[0].Detected != "" {
		t.Errorf("unexpected description %+v", removed)
	}
}

func TestRemoveFontFaces(t *testing.T) {
	input := `@font-face {
  font-family: "Inter";
  src: url(inter.woff2) format("woff2");
}
body { font-family: Inter, sans-serif; }
@font-face{font-family:Mono;src:url(m.woff)}`

	got, count := RemoveFontFaces(input)
	if strings.Contains(got, "@font-face") {
		t.Errorf("expected all @font-face rules removed, got:\n%s", got)
	}
	if !strings.Contains(got, "body { font-family: Inter, sans-serif; }") {
		t.Errorf("body rule should remain, got:\n%s", got)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
