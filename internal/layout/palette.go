package layout

import "github.com/Leastj/pdf-server/internal/text"

// Report palette
var (
	Blue   = text.MustHex("#144176")
	Orange = text.MustHex("#f97415")
	Gray   = text.MustHex("#f5f5f5")
	Panel  = text.MustHex("#fcfcfc")
	Frame  = text.MustHex("#e5e5e5")
	Muted  = text.MustHex("#999999")
	White  = text.MustHex("#ffffff")
)

// Body is the default running text style
var Body = text.Style{Size: 8, Color: Blue}
