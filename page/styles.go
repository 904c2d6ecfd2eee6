// Package page contains HTML document level rewrites.
package page

import (
	"regexp"
)

var (
	styleRegex = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)

	inlineDataURLRegex = regexp.MustCompile(`(?i)(\bstyle\s*=\s*["'])([\s\S]*?)background-image\s*:\s*url\s*\(\s*["']?data:[^;,]+;base64,[A-Za-z0-9+/=]+["']?\s*\)\s*;?\s*`)
	emptyStyleRegex    = regexp.MustCompile(`(?i)\bstyle\s*=\s*["']\s*["']`)

	unnecessaryRegexes = []*regexp.Regexp{
		regexp.MustCompile(`<!--[\s\S]*?-->`),
		regexp.MustCompile(`(?i)<meta[^>]*>`),
		regexp.MustCompile(`(?i)<link[^>]*>`),
		regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`),
		regexp.MustCompile(`(?i)<script[^>]*/>`),
	}
	blankLinesRegex = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// ExtractStyles returns contents of every <style> element in document order.
func ExtractStyles(html string) []string {
	matches := styleRegex.FindAllStringSubmatch(html, -1)
	styles := make([]string, 0, len(matches))
	for _, m := range matches {
		styles = append(styles, m[1])
	}
	return styles
}

// RemoveStyles drops every <style> element.
func RemoveStyles(html string) string {
	return styleRegex.ReplaceAllString(html, "")
}

// ReplaceStyles puts css into the first <style> element and drops the rest.
func ReplaceStyles(html, css string) string {
	first := true
	return styleRegex.ReplaceAllStringFunc(html, func(string) string {
		if first {
			first = false
			return "<style>\n" + css + "</style>"
		}
		return ""
	})
}

// RemoveInlineStyleDataURLs drops background-image declarations with base64
// data URLs from style attributes, attributes left empty are removed.
func RemoveInlineStyleDataURLs(html string) string {
	result := html
	// a single pass removes one declaration per attribute
	for {
		next := inlineDataURLRegex.ReplaceAllString(result, "${1}${2}")
		if next == result {
			break
		}
		result = next
	}
	return emptyStyleRegex.ReplaceAllString(result, "")
}

// RemoveUnnecessaryElements drops comments, <meta>, <link> and <script>
// elements and squeezes runs of blank lines.
func RemoveUnnecessaryElements(html string) string {
	for _, re := range unnecessaryRegexes {
		html = re.ReplaceAllString(html, "")
	}
	return blankLinesRegex.ReplaceAllString(html, "\n\n")
}
