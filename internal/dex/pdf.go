package dex

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf/v2"

	"woodfalls/internal/creature"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	cardW     = 160.0
	cardH     = 46.0
	cardGap   = 12.0
	perRow    = 3
	fontSize  = 9
	titleSize = 18
	partyRowH = 22.0
)

// ExportPDF returns a printable Pokedex sheet: one card per dex entry, marked
// by discovery, followed by the party with HP bars. Rows that do not fit
// continue on a new page.
func ExportPDF(c *Catalog, p Progress, party []*creature.Creature, title string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("export pdf: %w", ErrNoCatalog)
	}
	pdf := buildSheet(c, p, party, title)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildSheet(c *Catalog, p Progress, party []*creature.Creature, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	newSheet(pdf)

	pdf.SetTextColor(60, 40, 30)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+10)
	pdf.CellFormat(pageW-2*margin-20, 20, tr("Pokédex"), "", 0, "L", false, 0, "")
	if title != "" {
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetXY(margin+10, margin+32)
		pdf.CellFormat(pageW-2*margin-20, 12, tr(title), "", 0, "L", false, 0, "")
	}

	x0 := float64(margin) + 14
	y := float64(margin) + 60
	// bottom is the lowest y a row may end at.
	bottom := float64(pageH-margin) - 10
	// fit starts a new page when a row of height h would cross the bottom.
	fit := func(h float64) {
		if y+h > bottom {
			newSheet(pdf)
			y = float64(margin) + 20
		}
	}

	rows := Rows(c, p)
	for i := 0; i < len(rows); i += perRow {
		fit(cardH)
		for j := i; j < i+perRow && j < len(rows); j++ {
			drawCard(pdf, tr, x0+float64(j-i)*(cardW+cardGap), y, rows[j])
		}
		y += cardH + cardGap
	}

	if len(party) > 0 {
		y += 10
		fit(20 + partyRowH)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(60, 40, 30)
		pdf.SetXY(x0, y)
		pdf.CellFormat(200, 14, "Party", "", 0, "L", false, 0, "")
		y += 20
		for _, cr := range party {
			fit(partyRowH)
			drawPartyRow(pdf, tr, x0, y, cr)
			y += partyRowH
		}
	}
	return pdf
}

// newSheet adds a parchment page with its border.
func newSheet(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetFillColor(250, 246, 236)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)
}

func drawCard(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, r Row) {
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(60, 40, 30)
	switch r.Discovery {
	case Caught:
		pdf.SetFillColor(255, 236, 200)
	case Seen:
		pdf.SetFillColor(236, 244, 255)
	default:
		pdf.SetFillColor(225, 225, 225)
	}
	pdf.RoundedRect(x, y, cardW, cardH, 6, "1234", "FD")

	drawBall(pdf, x+18, y+cardH/2, r.Discovery)

	pdf.SetTextColor(60, 40, 30)
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetXY(x+34, y+8)
	name := "???"
	if r.Discovery != Unknown {
		name = r.Name
	}
	pdf.CellFormat(cardW-40, 12, tr(fmt.Sprintf("No. %03d  %s", r.Number, name)), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", fontSize-1)
	pdf.SetXY(x+34, y+24)
	status := ""
	if r.Discovery != Unknown {
		status = r.Discovery.String()
	}
	pdf.CellFormat(cardW-40, 10, status, "", 0, "L", false, 0, "")
}

// drawBall draws the discovery marker: an empty ring when unknown, a split
// ball outline when seen, and a filled ball when caught.
func drawBall(pdf *gofpdf.Fpdf, cx, cy float64, d Discovery) {
	const rad = 9.0
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.2)
	switch d {
	case Caught:
		pdf.SetFillColor(200, 40, 40)
		pdf.Arc(cx, cy, rad, rad, 0, 180, 360, "FD")
		pdf.SetFillColor(255, 255, 255)
		pdf.Arc(cx, cy, rad, rad, 0, 0, 180, "FD")
		pdf.Line(cx-rad, cy, cx+rad, cy)
		pdf.Circle(cx, cy, 2.5, "FD")
	case Seen:
		pdf.Circle(cx, cy, rad, "D")
		pdf.Line(cx-rad, cy, cx+rad, cy)
	default:
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetDashPattern([]float64{2, 2}, 0)
		pdf.Circle(cx, cy, rad, "D")
		pdf.SetDashPattern([]float64{}, 0)
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(60, 40, 30)
}

func drawPartyRow(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, c *creature.Creature) {
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetTextColor(60, 40, 30)
	pdf.SetXY(x, y)
	pdf.CellFormat(200, 12, tr(c.Label()), "", 0, "L", false, 0, "")

	// Same ten segments as HPBar, drawn as boxes.
	filled := 0
	if c.MaxHP() > 0 {
		filled = c.CurrentHP() * hpBarSegments / c.MaxHP()
	}
	bx := x + 210
	for i := 0; i < hpBarSegments; i++ {
		style := "D"
		if i < filled {
			pdf.SetFillColor(60, 170, 80)
			style = "FD"
		}
		pdf.Rect(bx+float64(i)*11, y+2, 10, 8, style)
	}
	pdf.SetXY(bx+hpBarSegments*11+6, y)
	pdf.CellFormat(60, 12, fmt.Sprintf("%d/%d", c.CurrentHP(), c.MaxHP()), "", 0, "L", false, 0, "")
}

// drawWavyBorder draws a hand-drawn looking border around the sheet.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 12, 3)
	pdf.SetDrawColor(60, 40, 30)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
}

// wavyRectPoints returns polygon points for a rectangle with a sinusoidal
// wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+4)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w + amp*math.Sin(float64(i)*0.7), Y: y + amp*math.Cos(float64(i)*0.5)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h + amp*math.Cos(float64(i)*0.4)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w + amp*math.Sin(float64(i)*0.8), Y: y + h + amp*math.Cos(float64(i)*0.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h + amp*math.Cos(float64(i)*0.6)})
	}
	return pts
}
