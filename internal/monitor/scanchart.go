package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/linda/internal/geom"
	"github.com/banshee-data/linda/internal/lidarsim"
)

// echartsAssetsPrefix is where the rendered page loads echarts.min.js from.
const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// RenderScanChart writes an HTML page showing the world-frame hit points of
// every sample, the poses they were taken from and the environment walls.
func RenderScanChart(w io.Writer, env lidarsim.Environment, samples []ScanSample) error {
	width, height := env.Extent()
	pad := 0.25

	hits := make([]opts.ScatterData, 0)
	poses := make([]opts.ScatterData, 0, len(samples))
	for _, s := range samples {
		for _, p := range s.Scan.Points(s.Pose) {
			hits = append(hits, opts.ScatterData{Value: []interface{}{p.X, p.Y, s.Tick}})
		}
		poses = append(poses, opts.ScatterData{Value: []interface{}{s.Pose.X, s.Pose.Y, s.Tick}})
	}

	walls := make([]opts.ScatterData, 0)
	for _, seg := range env.Segments {
		for _, p := range segmentDots(seg, 20) {
			walls = append(walls, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
		}
	}
	for _, c := range env.Circles {
		for _, p := range circleDots(c, 36) {
			walls = append(walls, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Lidar Scans", Theme: "dark", Width: "900px", Height: "700px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Lidar Scans", Subtitle: fmt.Sprintf("scans=%d hits=%d", len(samples), len(hits))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: width + pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: height + pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("environment", walls, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))
	scatter.AddSeries("hits", hits, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	scatter.AddSeries("pose", poses, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render scan chart: %w", err)
	}
	return nil
}

func segmentDots(seg geom.LineSegment, n int) []geom.Vector2 {
	d := seg.End.Sub(seg.Start)
	dots := make([]geom.Vector2, 0, n+1)
	for i := 0; i <= n; i++ {
		dots = append(dots, seg.Start.Add(d.Scale(float64(i)/float64(n))))
	}
	return dots
}

func circleDots(c geom.Circle, n int) []geom.Vector2 {
	dots := make([]geom.Vector2, 0, n)
	edge := geom.Vector2{X: c.Radius}
	for i := 0; i < n; i++ {
		dots = append(dots, c.Pos.Add(edge.Rotate(2*math.Pi*float64(i)/float64(n))))
	}
	return dots
}
