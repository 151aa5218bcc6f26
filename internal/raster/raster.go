// Package raster renders spike logs as raster plot images: time on the
// X axis, neuron index on the Y axis, one translucent dot per spike.
package raster

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/izhinet/izhinet/internal/network"
)

// Population dot colors. Low alpha keeps dense synchronous columns
// readable, as in the reference figure.
var (
	excitatoryColor = color.NRGBA{R: 0, G: 0, B: 0, A: 76}
	inhibitoryColor = color.NRGBA{R: 178, G: 34, B: 34, A: 96}
)

// Options controls the raster geometry and axis extents.
type Options struct {
	// Excitatory is the size of the excitatory index range [0, Excitatory);
	// spikes at or above it are drawn in the inhibitory color.
	Excitatory int

	// Neurons fixes the Y axis extent. Zero means fit to the data.
	Neurons int

	// DurationMS fixes the X axis extent. Zero means fit to the data.
	DurationMS int

	// Width and Height of the output image. Zero means the reference
	// geometry, 800x1200 points.
	Width  vg.Length
	Height vg.Length
}

// Render draws the spike log and writes the image to path. The format is
// chosen by extension (.png, .svg, .pdf); the reference output is PNG.
func Render(log network.SpikeLog, opts Options, path string) error {
	p := plot.New()
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Neuron Index"
	p.X.Min = 0
	p.Y.Min = 0
	if opts.DurationMS > 0 {
		p.X.Max = float64(opts.DurationMS)
	}
	if opts.Neurons > 0 {
		p.Y.Max = float64(opts.Neurons)
	}

	exc, inh := split(log, opts.Excitatory)
	for _, pop := range []struct {
		pts plotter.XYs
		col color.NRGBA
	}{
		{exc, excitatoryColor},
		{inh, inhibitoryColor},
	} {
		if len(pop.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pop.pts)
		if err != nil {
			return fmt.Errorf("failed to build scatter: %w", err)
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1)
		sc.GlyphStyle.Color = pop.col
		p.Add(sc)
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 800
	}
	if height == 0 {
		height = 1200
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save raster to %s: %w", path, err)
	}
	return nil
}

// split partitions the log into excitatory and inhibitory point sets.
func split(log network.SpikeLog, ne int) (exc, inh plotter.XYs) {
	for _, s := range log {
		pt := plotter.XY{X: float64(s.TimeMS), Y: float64(s.Neuron)}
		if s.Neuron < ne {
			exc = append(exc, pt)
		} else {
			inh = append(inh, pt)
		}
	}
	return exc, inh
}
