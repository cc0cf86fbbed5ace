// Package scoresheet renders a printable PDF for a wagon train: an old-map
// trail of every stop with the train's progress, the party roster, and the
// victory point breakdown.
package scoresheet

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"wagontrail/internal/catalog"
	"wagontrail/internal/game"
	"wagontrail/internal/scoring"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	sceneSize = 56.0
	pathStep  = 110.0
	rowStep   = 78.0
	perRow    = 4
	fontSize  = 8
	titleSize = 16
	labelSize = 7
)

// Generate returns PDF bytes for t's scoresheet.
func Generate(cat *catalog.Catalog, t game.WagonTrain, score scoring.Breakdown) ([]byte, error) {
	if cat == nil || len(cat.Stops) == 0 {
		return nil, fmt.Errorf("catalog has no trail stops")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Wagon Trail: "+t.Name, true)
	pdf.AddPage()

	// Parchment
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(1)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+8)
	pdf.CellFormat(300, 16, "The Oregon Trail", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize+2)
	pdf.SetXY(margin+10, margin+26)
	pdf.CellFormat(300, 12, fmt.Sprintf("%s  -  %s, day %d", t.Name, statusLabel(t.Status), t.Days), "", 0, "L", false, 0, "")

	drawCompassRose(pdf, pageW-margin-45, margin+45)

	y := drawTrail(pdf, cat.Stops, t)
	y = drawRoster(pdf, t, y+24)
	drawScore(pdf, score, y+20)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render scoresheet: %w", err)
	}
	return buf.Bytes(), nil
}

func statusLabel(s game.TrainStatus) string {
	switch s {
	case game.StatusArrived:
		return "arrived in Oregon"
	case game.StatusFailed:
		return "lost on the trail"
	}
	return "on the trail"
}

// drawTrail lays the stops out as a winding path and returns the y below it.
func drawTrail(pdf *gofpdf.Fpdf, stops []catalog.Stop, t game.WagonTrain) float64 {
	positions := make([][2]float64, len(stops))
	x0 := float64(margin) + sceneSize + 10
	y0 := float64(margin) + 110
	for i := range stops {
		row, col := i/perRow, i%perRow
		if row%2 == 1 {
			col = perRow - 1 - col
		}
		positions[i] = [2]float64{x0 + float64(col)*pathStep, y0 + float64(row)*rowStep}
	}

	// Travelled legs are solid red, the rest dashed brown.
	for i := 0; i < len(positions)-1; i++ {
		x1, y1 := positions[i][0], positions[i][1]
		x2, y2 := positions[i+1][0], positions[i+1][1]
		if i < t.StopIndex {
			pdf.SetDrawColor(180, 40, 40)
			pdf.SetLineWidth(2)
			pdf.SetDashPattern([]float64{}, 0)
		} else {
			pdf.SetDrawColor(120, 90, 60)
			pdf.SetLineWidth(1)
			pdf.SetDashPattern([]float64{6, 5}, 0)
		}
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)

	for i, s := range stops {
		x, y := positions[i][0], positions[i][1]
		current := i == t.StopIndex
		lost := current && t.Status == game.StatusFailed
		drawScene(pdf, x, y, s.Scenery, i <= t.StopIndex, current, lost)

		label := strings.ToUpper(s.Name)
		if len(label) > 22 {
			label = label[:19] + "..."
		}
		pdf.SetFont("Helvetica", "B", labelSize)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(x-pathStep/2+4, y+sceneSize/2)
		pdf.CellFormat(pathStep-8, 9, label, "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", labelSize)
		pdf.SetXY(x-pathStep/2+4, y+sceneSize/2+8)
		pdf.CellFormat(pathStep-8, 8, fmt.Sprintf("%d mi  x%.2f", s.Miles, s.Inflation), "", 0, "C", false, 0, "")
		if current {
			pdf.SetFont("Helvetica", "I", labelSize)
			pdf.SetXY(x-pathStep/2+4, y-sceneSize/2-8)
			pdf.CellFormat(pathStep-8, 8, "Wagon is here", "", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(80, 50, 30)
	}
	rows := (len(stops) + perRow - 1) / perRow
	return y0 + float64(rows-1)*rowStep + sceneSize/2 + 16
}

func drawRoster(pdf *gofpdf.Fpdf, t game.WagonTrain, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(margin+10, y)
	pdf.CellFormat(200, 14, "Party", "", 0, "L", false, 0, "")
	y += 16
	pdf.SetFont("Helvetica", "", fontSize+1)
	for _, c := range t.Party {
		state := fmt.Sprintf("%d/%d", c.Health, c.MaxHealth)
		if !c.IsAlive() {
			state = "died"
		}
		pdf.SetXY(margin+14, y)
		pdf.CellFormat(160, 11, fmt.Sprintf("%s (%s)", c.Name, c.Role), "", 0, "L", false, 0, "")
		pdf.CellFormat(110, 11, strings.ReplaceAll(c.Job, "_", " "), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 11, state, "", 0, "R", false, 0, "")
		pdf.CellFormat(160, 11, strings.Join(c.Statuses, ", "), "", 0, "L", false, 0, "")
		y += 12
	}
	pdf.SetXY(margin+14, y+2)
	pdf.CellFormat(300, 11, "Cash "+game.FormatCash(t.Cash), "", 0, "L", false, 0, "")
	return y + 14
}

func drawScore(pdf *gofpdf.Fpdf, b scoring.Breakdown, y float64) {
	const left, width = margin + 10, 300.0
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(left, y)
	pdf.CellFormat(width, 14, "Victory Points", "", 0, "L", false, 0, "")
	y += 18
	pdf.SetFont("Helvetica", "", fontSize+1)
	for _, l := range b.Lines {
		pdf.SetXY(left+4, y)
		pdf.CellFormat(width-60, 11, l.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(56, 11, fmt.Sprint(l.Points), "", 0, "R", false, 0, "")
		y += 12
	}
	pdf.Line(left+4, y+2, left+width, y+2)
	y += 6
	if b.Multiplier != 1 {
		pdf.SetXY(left+4, y)
		pdf.CellFormat(width-60, 11, fmt.Sprintf("Subtotal x %.2f (elder statesman)", b.Multiplier), "", 0, "L", false, 0, "")
		pdf.CellFormat(56, 11, fmt.Sprint(b.Subtotal), "", 0, "R", false, 0, "")
		y += 12
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(left+4, y)
	pdf.CellFormat(width-60, 13, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(56, 13, fmt.Sprint(b.Total), "", 0, "R", false, 0, "")
}

// drawWavyBorder draws a tattered black border around the parchment.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 12, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// wavyRectPoints returns a rectangle outline with a sinusoidal wobble on each
// side, closing back at (x, y).
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	side := func(fx, fy func(t float64) float64, first int, sx, sy float64) {
		for i := first; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pts = append(pts, gofpdf.PointType{
				X: fx(t) + amp*math.Sin(float64(i)*sx),
				Y: fy(t) + amp*math.Cos(float64(i)*sy),
			})
		}
	}
	side(func(t float64) float64 { return x + t*w }, func(float64) float64 { return y }, 0, 0.7, 0.5)
	side(func(float64) float64 { return x + w }, func(t float64) float64 { return y + t*h }, 1, 0.6, 0.4)
	side(func(t float64) float64 { return x + w - t*w }, func(float64) float64 { return y + h }, 1, 0.8, 0.3)
	side(func(float64) float64 { return x }, func(t float64) float64 { return y + h - t*h }, 1, 0.5, 0.6)
	return pts
}

// drawCompassRose draws an eight-point compass with cardinal labels.
func drawCompassRose(pdf *gofpdf.Fpdf, cx, cy float64) {
	const rad = 22.0
	pdf.SetDrawColor(101, 67, 33)
	pdf.SetLineWidth(1)
	pdf.Circle(cx, cy, rad, "D")
	for i := 0; i < 8; i++ {
		angle := float64(i)*math.Pi/4 - math.Pi/2
		if i%2 == 0 {
			pdf.SetDrawColor(180, 40, 40)
			pdf.SetLineWidth(1.5)
		} else {
			pdf.SetDrawColor(180, 140, 60)
			pdf.SetLineWidth(1)
		}
		pdf.Line(cx, cy, cx+rad*math.Cos(angle), cy+rad*math.Sin(angle))
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(80, 50, 30)
	for _, lab := range []struct {
		label  string
		dx, dy float64
	}{
		{"N", 0, -rad - 10},
		{"S", 0, rad + 10},
		{"E", rad + 8, 0},
		{"W", -rad - 8, 0},
	} {
		pdf.SetXY(cx+lab.dx-4, cy+lab.dy-3)
		pdf.CellFormat(8, 6, lab.label, "", 0, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", fontSize)
}
