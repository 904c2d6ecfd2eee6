package css

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
)

var (
	dataURLRegex         = regexp.MustCompile(`(?s)url\s*\(\s*["']?data:([^;,]+);base64,([A-Za-z0-9+/=]+)["']?\s*\)`)
	emptyBackgroundRegex = regexp.MustCompile(`(?i)(background(?:-image)?)\s*:\s*none\s*;`)
	fontFaceRegex        = regexp.MustCompile(`(?s)@font-face\s*\{[^}]*\}`)
)

// enough base64 text for filetype to see a header
const sniffEncodedLen = 360

// DataURL describes base64 payload removed from stylesheet.
type DataURL struct {
	Declared string // media type as written in URL
	Detected string // media type detected from payload, empty when unknown
	Size     int    // decoded size, approximate
}

// RemoveDataURLs replaces base64 url(data:...) values with "none" and then
// drops background and background-image declarations which became "none".
// Returns resulting text and list of removed payloads.
func RemoveDataURLs(text string) (string, []DataURL) {
	var removed []DataURL
	result := dataURLRegex.ReplaceAllStringFunc(text, func(m string) string {
		sub := dataURLRegex.FindStringSubmatch(m)
		removed = append(removed, describeDataURL(sub[1], sub[2]))
		return "none"
	})
	if len(removed) == 0 {
		return text, nil
	}
	return emptyBackgroundRegex.ReplaceAllString(result, ""), removed
}

func describeDataURL(declared, payload string) DataURL {
	d := DataURL{
		Declared: strings.TrimSpace(declared),
		Size:     base64.StdEncoding.DecodedLen(len(payload)),
	}
	head := payload
	if len(head) > sniffEncodedLen {
		head = head[:sniffEncodedLen]
	}
	head = strings.TrimRight(head, "=")
	if data, err := base64.RawStdEncoding.DecodeString(head[:len(head)/4*4]); err == nil {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			d.Detected = kind.MIME.Value
		}
	}
	return d
}

// RemoveFontFaces drops @font-face rules.
func RemoveFontFaces(text string) (string, int) {
	count := 0
	result := fontFaceRegex.ReplaceAllStringFunc(text, func(string) string {
		count++
		return ""
	})
	return result, count
}
