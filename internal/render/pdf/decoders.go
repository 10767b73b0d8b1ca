package pdf

import (
	// fpdf embeds JPEG and PNG only; image.DecodeConfig needs both to
	// sniff data before it reaches the document
	_ "image/jpeg"
	_ "image/png"

	"github.com/Leastj/pdf-server/internal/layout"
	"github.com/Leastj/pdf-server/internal/text"
)

var (
	_ layout.Canvas = (*Renderer)(nil)
	_ text.Metrics  = (*Renderer)(nil)
)
