package report

import (
	_ "embed"
	"encoding/base64"
)

//go:embed assets/logo.svg
var logoSVG []byte

// DefaultLogo is the built-in cover logo as a data URL
func DefaultLogo() string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(logoSVG)
}
