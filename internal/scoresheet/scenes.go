package scoresheet

import "github.com/jung-kurt/gofpdf/v2"

// drawScene draws a stop's pictogram at (x, y). Stops not yet reached are
// drawn faint; the current stop is ringed and a lost train is crossed out.
func drawScene(pdf *gofpdf.Fpdf, x, y float64, scenery string, reached, current, lost bool) {
	r := sceneSize / 2.0
	if current {
		pdf.SetDrawColor(180, 40, 40)
		pdf.SetLineWidth(2)
		pdf.Circle(x, y, r*0.75, "D")
	}
	if reached {
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(1.2)
	} else {
		pdf.SetDrawColor(170, 150, 120)
		pdf.SetLineWidth(0.8)
	}
	switch scenery {
	case "forest":
		drawForest(pdf, x, y, r)
	case "clearing":
		drawClearing(pdf, x, y, r)
	case "river":
		drawRiver(pdf, x, y, r)
	case "hills":
		drawHills(pdf, x, y, r)
	case "town":
		drawTown(pdf, x, y, r)
	default:
		pdf.Circle(x, y, r*0.35, "D")
	}
	if lost {
		pdf.SetDrawColor(180, 40, 40)
		pdf.SetLineWidth(2)
		pdf.Line(x-r*0.5, y-r*0.5, x+r*0.5, y+r*0.5)
		pdf.Line(x-r*0.5, y+r*0.5, x+r*0.5, y-r*0.5)
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

func drawForest(pdf *gofpdf.Fpdf, x, y, r float64) {
	for i, dx := range []float64{-r * 0.4, 0, r * 0.35} {
		h := 8 + float64(i)*3
		pdf.Line(x+dx, y+6, x+dx, y+6-h)
		pdf.Circle(x+dx, y+6-h, 4, "D")
	}
}

func drawClearing(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Circle(x, y, r*0.45, "D")
	pdf.Circle(x, y, r*0.2, "D")
}

func drawRiver(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.SetLineWidth(2)
	pdf.Line(x-r*0.7, y, x+r*0.7, y)
	pdf.SetLineWidth(1)
	for i := -1; i <= 1; i++ {
		dx := float64(i) * r * 0.35
		pdf.Line(x+dx-3, y-4, x+dx+3, y+4)
	}
}

func drawHills(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Arc(x-r*0.35, y+r*0.2, r*0.4, r*0.35, 0, 0, 180, "D")
	pdf.Arc(x+r*0.3, y+r*0.25, r*0.45, r*0.45, 0, 0, 180, "D")
}

// drawTown draws a row of three buildings.
func drawTown(pdf *gofpdf.Fpdf, x, y, r float64) {
	for i, dx := range []float64{-r * 0.4, -r * 0.05, r * 0.3} {
		w, h := 8.0, 10.0+float64(i)*3
		pdf.Rect(x+dx-w/2, y+r*0.3-h, w, h, "D")
	}
}
