// Package common holds enums shared by configuration and the processing
// packages, so that neither has to import the other.
package common

// Output formatting applied to produced CSS and HTML.
// ENUM(none, pretty, minify)
type FormatMode int

// Enabled reports whether any formatting is requested.
func (x FormatMode) Enabled() bool {
	return x == FormatModePretty || x == FormatModeMinify
}
