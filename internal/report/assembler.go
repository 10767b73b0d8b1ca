// Package report turns an inspection record into the cover page and the
// flowed sections of the printed report.
package report

import (
	"fmt"
	"strings"

	"github.com/Leastj/pdf-server/internal/layout"
	"github.com/Leastj/pdf-server/internal/pagination"
	"github.com/Leastj/pdf-server/internal/parser/html"
	"github.com/Leastj/pdf-server/internal/text"
)

// Placeholder is printed for a narrative list with no entries
const Placeholder = "Aucune observation enregistrée pour cette section."

const (
	sectionGap   = 40
	titleSpacing = 10
	maxGridRows  = 2
)

// FooterLines is the legal and contact band printed on every page
var FooterLines = []string{
	"E C I - Expertises Conseils Ingénierie",
	"Toulouse – Narbonne - Perpignan",
	"5 Avenue Pierre-Georges Latécoère Bât B 31520 Ramonville Saint Agne – Siret : 918 911 520 00016 Rcs Toulouse – APE : 7112B",
	"Tva Intracommunautaire N° FR04 918911520 - Téléphone : +33 7 83 87 12 10 - Email : assistance@e-c-i.fr",
	"Toute reproduction et/ou diffusion même partielle sans accord préalable d’E C I est strictement interdite",
}

// Assembler lays out one inspection
type Assembler struct {
	Geometry pagination.Geometry
	// LogoRef is the asset reference of the cover logo
	LogoRef string
	// ReferenceCode prints the installation reference as a QR code on the
	// cover
	ReferenceCode bool
}

// NewAssembler returns an assembler for the default A4 frame
func NewAssembler(logoRef string) *Assembler {
	return &Assembler{Geometry: pagination.A4(), LogoRef: logoRef}
}

// Render draws the whole report through eng: the cover, every section and
// the footer of the last page
func (a *Assembler) Render(eng *pagination.Engine, in *Inspection) error {
	if err := eng.StartFixedPage(); err != nil {
		return err
	}
	cover := a.Cover(in)
	if err := cover.Draw(eng.Env()); err != nil {
		return fmt.Errorf("failed to draw cover: %w", err)
	}
	if err := eng.Run(a.Sections(in)); err != nil {
		return err
	}
	return eng.Finish()
}

// clean flattens markup and normalises a free-text value for printing
func clean(t Text) string {
	return text.Normalize(html.PlainText(strings.TrimSpace(string(t))))
}

func cleanList(list List[Text]) []string {
	var out []string
	for _, t := range list {
		if s := clean(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func title(s string) layout.SectionTitle {
	return layout.SectionTitle{Text: s, Level: layout.LevelSection}
}

func subtitle(s string) layout.SectionTitle {
	return layout.SectionTitle{Text: s, Level: layout.LevelSubsection}
}

func banner(s string) layout.SectionTitle {
	return layout.SectionTitle{Text: s, Level: layout.LevelBanner}
}

// Sections returns the flowed part of the report in print order
func (a *Assembler) Sections(in *Inspection) []pagination.Section {
	sections := []pagination.Section{
		{
			Title:   title("1 - Préambule"),
			NewPage: true,
			Blocks:  preamble(in),
		},
		{
			Title:        title("2 - Prestataire de maintenance & identification de l'installation"),
			Gap:          sectionGap,
			KeepWithNext: true,
			Blocks: []layout.Block{layout.FieldRow{Fields: []layout.Field{
				{Label: "Prestataire lors du relevé", Value: clean(in.MaintenanceProvider), Align: text.AlignCenter, PlainLabel: true},
				{Label: "Numéro d’identification du prestataire :", Value: clean(in.MaintenanceProviderID), Align: text.AlignCenter, PlainLabel: true},
			}}},
		},
		{
			Title: layout.Stack{
				Items: []layout.Block{title("3 - Caractéristiques techniques"), subtitle("3.1 - Informations générales")},
				After: titleSpacing,
			},
			Gap:          sectionGap,
			KeepWithNext: true,
			Blocks:       layout.Table(generalInformation(in)),
		},
		table("3.2 - Caractéristiques principales", mainCharacteristics(in)),
		table("3.3 - Machinerie – Caractéristiques principales", machinery(in)),
		{
			Title:   subtitle("3.4 - Gaine"),
			NewPage: true,
			Blocks:  layout.Table(shaft(in)),
		},
		table("3.5 - Cabine – Caractéristiques principales", cabin(in)),
		narrative("4 - Évaluation de l’installation", in.InstallationEvaluation),
		narrative("5 - Évaluation de la qualité de maintenance", in.MaintenanceQualityEvaluation),
		{
			Title:   banner("6 - Reportage photographique"),
			NewPage: true,
			Blocks:  a.photoGrids(in),
		},
	}
	sections = append(sections, maintenance(in)...)
	sections = append(sections, pagination.Section{
		Title:   banner("8 - Synthèse"),
		NewPage: true,
		Blocks:  findings(in.Conclusions),
	})
	return sections
}

func preamble(in *Inspection) []layout.Block {
	return []layout.Block{
		layout.FieldRow{Fields: []layout.Field{
			{Label: "Date de l'audit", Value: clean(in.AuditDate), Width: 200},
			{Label: "Commentaire", Value: clean(in.AuditDateNote)},
		}},
		layout.FieldRow{Fields: []layout.Field{
			{Label: "Date de rédaction du rapport", Value: clean(in.ReportDate), Width: 200},
		}},
		layout.FieldRow{Fields: []layout.Field{
			{Label: "Objet du rapport", Value: clean(in.ReportObjects), MinHeight: 60},
		}},
	}
}

func table(heading string, pairs [][2]string) pagination.Section {
	return pagination.Section{
		Title:        subtitle(heading),
		Gap:          sectionGap,
		KeepWithNext: true,
		Blocks:       layout.Table(pairs),
	}
}

func narrative(heading string, list List[Text]) pagination.Section {
	items := cleanList(list)
	blocks := make([]layout.Block, 0, len(items))
	for i, s := range items {
		blocks = append(blocks, layout.Paragraph{Index: i + 1, Text: s})
	}
	if len(blocks) == 0 {
		blocks = append(blocks, layout.Note{Text: Placeholder})
	}
	return pagination.Section{
		Title:        title(heading),
		Gap:          sectionGap,
		KeepWithNext: true,
		Blocks:       blocks,
	}
}

// photoGrids splits every group into grids of at most maxGridRows rows so
// that no grid is taller than a page
func (a *Assembler) photoGrids(in *Inspection) []layout.Block {
	per := maxGridRows * layout.Columns(a.Geometry.ContentWidth)
	var blocks []layout.Block
	for _, g := range in.Photos {
		photos := make([]layout.Photo, 0, len(g.Photos))
		for _, p := range g.Photos {
			photos = append(photos, layout.Photo{URL: strings.TrimSpace(string(p.URL)), Caption: clean(p.Caption)})
		}
		if len(photos) == 0 {
			continue
		}
		label := clean(g.GroupLabel)
		for start := 0; start < len(photos); start += per {
			end := min(start+per, len(photos))
			l := label
			if start > 0 && label != "" {
				l = label + " (suite)"
			}
			blocks = append(blocks, layout.PhotoGrid{GroupLabel: l, Photos: photos[start:end]})
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, layout.Note{Text: Placeholder})
	}
	return blocks
}

// maintenance returns section 7: a banner page followed by one subsection
// per location
func maintenance(in *Inspection) []pagination.Section {
	head := pagination.Section{
		Title:   banner("7 - Suivi des travaux de maintenance"),
		NewPage: true,
	}
	var subs []pagination.Section
	for _, task := range in.MaintenanceTasks {
		loc := clean(task.Location)
		var cards []layout.Block
		for _, el := range task.Elements {
			for _, d := range el.Defects {
				cards = append(cards, layout.DefectCard{
					Location: loc,
					Element:  clean(el.Element),
					Defect:   clean(d.Defect),
					Comment:  clean(d.Comment),
					DueDate:  clean(d.MaxDueDate),
					DoneDate: clean(d.CompletionDate),
				})
			}
		}
		if len(cards) == 0 {
			continue
		}
		heading := fmt.Sprintf("7.%d - %s", len(subs)+1, loc)
		if loc == "" {
			heading = fmt.Sprintf("7.%d", len(subs)+1)
		}
		subs = append(subs, pagination.Section{
			Title:        subtitle(heading),
			Gap:          titleSpacing,
			KeepWithNext: true,
			Blocks:       cards,
		})
	}
	if len(subs) == 0 {
		head.Blocks = []layout.Block{layout.Note{Text: Placeholder}}
	}
	return append([]pagination.Section{head}, subs...)
}

func findings(list List[Text]) []layout.Block {
	var blocks []layout.Block
	for _, s := range cleanList(list) {
		blocks = append(blocks, layout.FindingBlock{Text: s})
	}
	if len(blocks) == 0 {
		blocks = append(blocks, layout.Note{Text: Placeholder})
	}
	return blocks
}
