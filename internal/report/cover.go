package report

import (
	"strings"

	"github.com/Leastj/pdf-server/internal/layout"
	"github.com/Leastj/pdf-server/internal/text"
)

// Cover page geometry
const (
	logoX, logoY = 40, 50
	logoW, logoH = 164, 88

	taglineY = 150
	taglineW = 280

	rightColX = 360
	rightColW = 202

	panelY = 210
	panelH = 177

	coverImgW   = 174
	coverImgH   = 213
	coverImgGap = 16

	pillW = 110
	pillH = 20

	qrSize = 64
)

// Tagline is printed under the logo; the first line is set in bold
var Tagline = []string{
	"Expertises, Conseils, Ingénierie",
	"Maîtrise d'œuvre & Assistance à Maîtrise d'ouvrage",
	"Ascenseurs, Fermetures automatiques, Escalators & dérivés",
	"Expert Judiciaire Près La Cour d'Appel de Toulouse",
	"Membre de la Compagnie des Experts",
}

var (
	coverStyle      = layout.Body
	addressStyle    = text.Style{Size: 8, LineGap: 1.5, Color: layout.Blue}
	serviceStyle    = text.Style{Size: 8, Bold: true, Color: layout.Orange}
	coverPhotoStyle = text.Style{Size: 12, Color: layout.Muted}
	logoMissing     = text.Style{Size: 8, Color: layout.Muted}
)

type chip struct {
	y, h float64
	text string
	bold bool
}

// Cover is the fixed-layout first page
type Cover struct {
	Left         float64
	ContentWidth float64

	LogoRef string
	// PhotoRef is the cover photo; empty draws the placeholder frame
	PhotoRef string

	ClientName            string
	ClientAddress         string
	Representative        string
	RepresentativeAddress string

	InstallationAddress string
	ServiceTitles       []string
	InstallationRef     string
	// ReferenceCode adds a QR code of InstallationRef
	ReferenceCode bool
}

// Cover returns the cover page of in
func (a *Assembler) Cover(in *Inspection) *Cover {
	return &Cover{
		Left:                  a.Geometry.Left,
		ContentWidth:          a.Geometry.ContentWidth,
		LogoRef:               a.LogoRef,
		PhotoRef:              in.CoverPhoto(),
		ClientName:            clean(in.ClientName),
		ClientAddress:         clean(in.ClientAddress),
		Representative:        clean(in.Representative),
		RepresentativeAddress: clean(in.RepresentativeAddress),
		InstallationAddress:   clean(in.InstallationAddress),
		ServiceTitles:         cleanList(in.ServiceTitles),
		InstallationRef:       clean(in.InstallationRef),
		ReferenceCode:         a.ReferenceCode,
	}
}

// Draw lays the cover out on the current page
func (c *Cover) Draw(env *layout.Env) error {
	c.drawLogo(env)
	c.drawTagline(env)
	c.drawParties(env)
	env.Canvas.FillRect(c.Left, panelY, c.ContentWidth, panelH, 4, layout.Panel)
	if h := c.Panel().MeasureHeight(env.Metrics, c.ContentWidth); h > panelH {
		env.Warnf("cover: panel content of %.1f points overflows the %d point panel", h, panelH)
	}
	if _, err := c.Panel().DrawCentered(env, c.Left, panelY, c.ContentWidth, panelH); err != nil {
		return err
	}
	c.drawPhoto(env)
	if c.ReferenceCode && c.InstallationRef != "" {
		env.Canvas.QRCode(c.InstallationRef, c.Left+c.ContentWidth-qrSize, c.photoY()+coverImgH-qrSize, qrSize)
	}
	return nil
}

func (c *Cover) drawLogo(env *layout.Env) {
	if err := env.Image(c.LogoRef, logoX, logoY, logoW, logoH); err != nil {
		env.Warnf("logo %q unavailable: %v", c.LogoRef, err)
		env.Canvas.StrokeRect(logoX, logoY, logoW, logoH, layout.Muted)
		env.Text(logoX+10, 90, logoW-20, "logo missing", logoMissing, text.AlignLeft)
	}
}

func (c *Cover) drawTagline(env *layout.Env) {
	y := float64(taglineY)
	for i, line := range Tagline {
		y += env.Text(c.Left, y, taglineW, line, coverStyle.WithBold(i == 0), text.AlignLeft)
	}
}

func (c *Cover) drawParties(env *layout.Env) {
	env.Text(rightColX, 50, rightColW, "Client", coverStyle, text.AlignCenter)
	env.Text(rightColX, 130, rightColW, "Représentée par", coverStyle, text.AlignCenter)
	for _, ch := range []chip{
		{68, 18, c.ClientName, true},
		{90, 30, c.ClientAddress, false},
		{148, 18, c.Representative, true},
		{170, 30, c.RepresentativeAddress, false},
	} {
		env.Canvas.FillRect(rightColX, ch.y, rightColW, ch.h, 4, layout.Gray)
		ty := ch.y + (ch.h-coverStyle.Size)/2 - 1
		env.Text(rightColX+6, ty, rightColW-12, ch.text, coverStyle.WithBold(ch.bold), text.AlignCenter)
	}
}

// Panel is the installation block of the cover, centred vertically in
// the tinted panel
func (c *Cover) Panel() layout.Stack {
	return layout.Stack{Items: []layout.Block{
		layout.TextRun{Text: c.InstallationAddress, Style: addressStyle, Align: text.AlignCenter, Inset: 10, Gap: 12},
		layout.TextRun{Text: strings.Join(c.ServiceTitles, "\n"), Style: serviceStyle, Align: text.AlignCenter, Inset: 10, Gap: 20},
		layout.TextRun{Text: "Référence de l'installation", Style: coverStyle, Align: text.AlignCenter, Gap: 5},
		layout.Pill{
			Text:   c.InstallationRef,
			Width:  pillW,
			Height: pillH,
			Fill:   layout.White,
			Style:  coverStyle.WithBold(true),
		},
	}}
}

func (c *Cover) photoY() float64 {
	return panelY + panelH + coverImgGap
}

func (c *Cover) drawPhoto(env *layout.Env) {
	x := c.Left + (c.ContentWidth-coverImgW)/2
	y := c.photoY()
	env.Canvas.FillRect(x, y, coverImgW, coverImgH, 4, layout.Frame)
	if c.PhotoRef != "" {
		err := env.Image(c.PhotoRef, x, y, coverImgW, coverImgH)
		if err == nil {
			return
		}
		env.Warnf("cover photo %q unavailable: %v", c.PhotoRef, err)
	}
	env.Text(x, y+coverImgH/2-6, coverImgW, "Image", coverPhotoStyle, text.AlignCenter)
}
