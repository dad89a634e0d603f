// trajsmooth demonstrates curve fitting on the rigid-motion group: it builds
// a jittered helical trajectory, smooths it with the De Casteljau fit, and
// renders the raw and fitted ground tracks to a PNG.
package main

import (
	"flag"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tangram-robotics/liegroups/curve"
	"github.com/tangram-robotics/liegroups/se3"
	"github.com/tangram-robotics/liegroups/so3"
)

func main() {
	var (
		n       = flag.Int("n", 20, "number of control poses")
		degree  = flag.Uint("degree", 3, "smoothness degree of the fitted curve")
		kInterp = flag.Uint("interp", 10, "interpolated samples per segment")
		closed  = flag.Bool("closed", false, "wrap the curve back to its start")
		out     = flag.String("out", "trajsmooth.png", "output PNG path")
	)
	flag.Parse()

	logger := golog.NewDevelopmentLogger("trajsmooth")

	trajectory := helix(*n)
	logger.Infow("built control trajectory", "poses", len(trajectory))

	fitted, err := curve.DeCasteljau[se3.SE3, se3.Twist](trajectory, *degree, *kInterp, *closed)
	if err != nil {
		logger.Fatalw("curve fit failed", "error", err)
	}
	logger.Infow("fitted curve", "degree", *degree, "samples", len(fitted))

	if err := render(trajectory, fitted, *out); err != nil {
		logger.Fatalw("render failed", "error", err)
	}
	logger.Infow("wrote plot", "path", *out)
}

// helix returns poses along a rising spiral, with angular jitter so the raw
// track is visibly rough before smoothing.
func helix(n int) []se3.SE3 {
	trajectory := make([]se3.SE3, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		jitter := 0.35 * math.Sin(float64(7*i))
		trajectory = append(trajectory, se3.New(
			r3.Vector{
				X: 5 * math.Cos(angle+jitter),
				Y: 5 * math.Sin(angle+jitter),
				Z: 0.2 * float64(i),
			},
			so3.FromAxisAngle(r3.Vector{Z: angle + jitter}),
		))
	}
	return trajectory
}

func render(raw, fitted []se3.SE3, path string) error {
	p := plot.New()
	p.Title.Text = "De Casteljau fit on SE(3)"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	rawLine, err := plotter.NewLine(track(raw))
	if err != nil {
		return err
	}
	rawLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	fitLine, err := plotter.NewLine(track(fitted))
	if err != nil {
		return err
	}

	p.Add(rawLine, fitLine)
	p.Legend.Add("raw", rawLine)
	p.Legend.Add("fitted", fitLine)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

func track(poses []se3.SE3) plotter.XYs {
	xys := make(plotter.XYs, len(poses))
	for i, pose := range poses {
		xys[i] = plotter.XY{X: pose.X(), Y: pose.Y()}
	}
	return xys
}
