package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// donut draws a ring chart filling the data area of a plot with hidden axes.
type donut struct {
	values []float64
	labels []string
	colors []color.Color

	// hole is the inner radius as a fraction of the outer radius.
	hole float64
	// explode pushes the first slice outward by this fraction of the radius.
	explode float64
	// start is the angle of the first slice edge, in degrees counter-clockwise
	// from the positive x axis.
	start float64

	background color.Color
	label      text.Style
}

var _ plot.Plotter = (*donut)(nil)

// Plot implements plot.Plotter.
func (d *donut) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, v := range d.values {
		if v > 0 {
			total += v
		}
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	r := 0.42 * vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y)))
	inner := r * vg.Length(d.hole)

	if total == 0 {
		sty := d.label
		sty.XAlign, sty.YAlign = text.XCenter, text.YCenter
		c.FillText(sty, center, "No titles")
		return
	}

	angle := d.start * math.Pi / 180
	for i, v := range d.values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		mid := angle + sweep/2

		origin := center
		if i == 0 && d.explode > 0 {
			origin = polar(center, r*vg.Length(d.explode), mid)
		}

		var wedge vg.Path
		wedge.Move(origin)
		wedge.Arc(origin, r, angle, sweep)
		wedge.Close()
		c.SetColor(d.colors[i%len(d.colors)])
		c.Fill(wedge)

		angle += sweep
	}

	var hole vg.Path
	hole.Move(vg.Point{X: center.X + inner, Y: center.Y})
	hole.Arc(center, inner, 0, 2*math.Pi)
	hole.Close()
	c.SetColor(d.background)
	c.Fill(hole)

	d.drawLabels(c, center, r, inner, total)
}

// drawLabels writes the percentage inside each ring segment and the slice
// name just outside it.
func (d *donut) drawLabels(c draw.Canvas, center vg.Point, r, inner vg.Length, total float64) {
	pct := d.label
	pct.XAlign, pct.YAlign = text.XCenter, text.YCenter
	pct.Color = color.White

	name := d.label
	name.YAlign = text.YCenter

	angle := d.start * math.Pi / 180
	for i, v := range d.values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		mid := angle + sweep/2
		angle += sweep

		c.FillText(pct, polar(center, (r+inner)/2, mid), printer.Sprintf("%.1f%%", v*100/total))

		if i >= len(d.labels) {
			continue
		}
		name.XAlign = text.XLeft
		if math.Cos(mid) < 0 {
			name.XAlign = text.XRight
		}
		c.FillText(name, polar(center, r*1.1, mid), d.labels[i])
	}
}

// polar offsets p by length l in direction theta (radians).
func polar(p vg.Point, l vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: p.X + l*vg.Length(math.Cos(theta)),
		Y: p.Y + l*vg.Length(math.Sin(theta)),
	}
}
