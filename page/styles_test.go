package page

import (
	"slices"
	"strings"
	"testing"
)

func TestExtractStyles(t *testing.T) {
	html := `<html><head>
<style>.a { color: red; }</style>
<STYLE type="text/css">
.b { color: blue; }
</STYLE>
</head><body></body></html>`

	got := ExtractStyles(html)
	want := []string{".a { color: red; }", "\n.b { color: blue; }\n"}
	if !slices.Equal(got, want) {
		t.Errorf("ExtractStyles() = %q, want %q", got, want)
	}
}

func TestExtractStyles_None(t *testing.T) {
	if got := ExtractStyles("<p>no styles</p>"); len(got) != 0 {
		t.Errorf("expected no styles, got %q", got)
	}
}

func TestRemoveStyles(t *testing.T) {
	got := RemoveStyles(`<head><style>a{}</style><title>x</title><style media="print">b{}</style></head>`)
	if got != `<head><title>x</title></head>` {
		t.Errorf("RemoveStyles() = %q", got)
	}
}

func TestReplaceStyles(t *testing.T) {
	html := `<head><style>a{}</style><style>b{}</style></head><body><style>c{}</style></body>`
	got := ReplaceStyles(html, "p {\n  margin: $1;\n}\n")

	want := "<head><style>\np {\n  margin: $1;\n}\n</style></head><body></body>"
	if got != want {
		t.Errorf("ReplaceStyles() = %q, want %q", got, want)
	}
}

func TestRemoveInlineStyleDataURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "only declaration",
			in:   `<div style="background-image: url('data:image/png;base64,iVBORw0KGgo=');">x</div>`,
			want: `<div >x</div>`,
		},
		{
			name: "other declarations kept",
			in:   `<div style="color: red; background-image:url(data:image/gif;base64,R0lGODlh) ; margin: 0">x</div>`,
			want: `<div style="color: red; margin: 0">x</div>`,
		},
		{
			name: "regular url untouched",
			in:   `<div style="background-image: url(/a.png)">x</div>`,
			want: `<div style="background-image: url(/a.png)">x</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveInlineStyleDataURLs(tt.in); got != tt.want {
				t.Errorf("RemoveInlineStyleDataURLs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveUnnecessaryElements(t *testing.T) {
	html := `<html><head>
<meta charset="utf-8">
<!-- comment -->
<link rel="stylesheet" href="a.css">
<script src="a.js"></script>
<script>
  console.log("x")
</script>
<script src="b.js" />
<title>T</title>
</head><body><p>text</p></body></html>`

	got := RemoveUnnecessaryElements(html)

	for _, gone := range []string{"<meta", "<!--", "<link", "<script", "console.log"} {
		if strings.Contains(got, gone) {
			t.Errorf("expected %q to be removed:\n%s", gone, got)
		}
	}
	if !strings.Contains(got, "<title>T</title>") || !strings.Contains(got, "<p>text</p>") {
		t.Errorf("content should remain:\n%s", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank line runs should be squeezed:\n%q", got)
	}
}
