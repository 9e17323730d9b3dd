// Package pdf rend un document finalisé (facture, devis, proforma) en
// PDF A4 avec Maroto v2.
//
// Layout de la page:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: type de document + numéro  │  date                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT: nom, société, contact, adresse                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qté | Désignation | Prix | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GÉNÉRAL (FCFA)                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
	"github.com/amakita/arsel-docs-api/pkg/currency"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// Titres imprimés par type de document.
var docTitles = map[string]string{
	entity.TypeFacture:  "FACTURE",
	entity.TypeDevis:    "DEVIS",
	entity.TypeProforma: "FACTURE PROFORMA",
	entity.TypeAutre:    "DOCUMENT",
}

// MarotoGenerator implémente docstore.DocumentPDFGenerator avec Maroto v2.
type MarotoGenerator struct{}

var _ docstore.DocumentPDFGenerator = (*MarotoGenerator)(nil)

// NewMarotoGenerator construit le générateur.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateDocumentPDF génère le PDF et renvoie ses octets.
func (g *MarotoGenerator) GenerateDocumentPDF(_ context.Context, doc *entity.Document) ([]byte, error) {
	accent := parseHexColor(doc.ThemeColor)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(doc.Type)+" "+doc.DocumentNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(clientRow(doc.ClientInfo, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(accent))
	for _, r := range tableProductRows(doc.Products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(totalRow(doc, accent))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return out.GetBytes(), nil
}

func title(docType string) string {
	if t, ok := docTitles[docType]; ok {
		return t
	}
	return docTitles[entity.TypeAutre]
}

// headerRow: titre + numéro (gauche) et date (droite).
func headerRow(doc *entity.Document, accent *props.Color) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: accent, Top: 1,
			}),
			text.New("N° "+doc.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Date: "+doc.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// clientRow: coordonnées du client.
func clientRow(info entity.ClientInfo, accent *props.Color) core.Row {
	name := strings.TrimSpace(info.FirstName + " " + info.LastName)
	if info.CompanyName != "" {
		name = info.CompanyName + " — " + name
	}
	address := strings.TrimSpace(strings.Join(nonEmptyOf(info.Address, info.City, info.Province), ", "))
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: accent, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tél: %s   |   Email: %s   |   %s",
				nonEmpty(info.Phone, "—"),
				nonEmpty(info.Email, "—"),
				nonEmpty(address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: entête de la table des lignes.
func tableHeaderRow(accent *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: accent, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 3, align.Left),
		h("Désignation", 5, align.Left),
		h("Total", 4, align.Right),
	)
}

// tableProductRows: une ligne par produit, avec le détail des quantités
// selon le mode de tarification.
func tableProductRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		name := p.Name
		if p.Description != "" {
			name += " — " + p.Description
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				quantityLabel(p),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				currency.FormatCFA(p.Total, true),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// quantityLabel résume les quantités d'une ligne: "5 kg × 1 000 FCFA"
// en mode unitaire, "3 cartons + 2 sacs" en mode gros.
func quantityLabel(p entity.Product) string {
	switch p.PricingMode {
	case entity.ModeUnitaire:
		return fmt.Sprintf("%s kg × %s", p.Kilos.String(), currency.FormatCFA(p.UnitPrice, true))
	case entity.ModeGros:
		parts := []string{}
		if p.Cartons > 0 {
			parts = append(parts, fmt.Sprintf("%d cartons", p.Cartons))
		}
		if p.Sacs > 0 {
			parts = append(parts, fmt.Sprintf("%d sacs", p.Sacs))
		}
		if len(parts) == 0 {
			return "—"
		}
		return strings.Join(parts, " + ")
	}
	return "—"
}

// totalRow: total général aligné à droite.
func totalRow(doc *entity.Document, accent *props.Color) core.Row {
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: accent, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(currency.FormatCFA(doc.Total, true), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: accent, Right: 1, Top: 2,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyOf(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseHexColor convertit "#3b82f6" en couleur Maroto; gris neutre si la
// valeur est illisible.
func parseHexColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return &props.Color{Red: 59, Green: 130, Blue: 246}
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{Red: 59, Green: 130, Blue: 246}
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}
