// Command flowdemo renders an animated layer tree to a sequence of PNG
// frames, reusing the raster cache between frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/layer"
	"github.com/gogpu/flow/paint"
	"github.com/gogpu/flow/rastercache"
)

func main() {
	var (
		width   = flag.Int("width", 640, "frame width")
		height  = flag.Int("height", 400, "frame height")
		frames  = flag.Int("frames", 30, "number of frames")
		outDir  = flag.String("out", "frames", "output directory")
		dpr     = flag.Float64("dpr", 1, "device pixel ratio")
		verbose = flag.Bool("v", false, "log per-frame diagnostics")
	)
	flag.Parse()

	if *verbose {
		flow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	lw := float64(*width) / *dpr
	lh := float64(*height) / *dpr
	s := newScene(lw, lh)

	cache := rastercache.New(rastercache.WithAccessThreshold(2))
	tree := layer.NewLayerTree(s.root, *width, *height,
		layer.WithRasterCache(cache),
		layer.WithDevicePixelRatio(*dpr))

	const frameTime = float32(1) / 30
	fade := gween.New(0.2, 1, float32(*frames)*frameTime, ease.InOutQuad)
	slide := gween.New(0, float32(lw/2), float32(*frames)*frameTime, ease.OutCubic)

	for i := 0; i < *frames; i++ {
		alpha, _ := fade.Update(frameTime)
		x, _ := slide.Update(frameTime)
		s.cards.Alpha = float64(alpha)
		s.cards.Offset = gg.Pt(float64(x), lh/4)

		c := canvas.NewOffscreen(*width, *height)
		stats := tree.Preroll()
		tree.Paint(c)
		tree.EndFrame()
		if err := c.Err(); err != nil {
			log.Fatalf("Failed to render frame %d: %v", i, err)
		}
		img := c.Snapshot()
		name := filepath.Join(*outDir, fmt.Sprintf("frame%03d.png", i))
		if err := savePNG(name, img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		cs := cache.Stats()
		log.Printf("%s: saveLayers=%d cached=%d hitRate=%.2f\n", name, stats.SaveLayers, cs.Images, cs.HitRate)
	}
}

type scene struct {
	root  *layer.ContainerLayer
	cards *layer.OpacityLayer
}

// newScene builds a striped background, a group of overlapping cards that
// fades and slides in, and a frosted panel that blurs what is beneath it.
func newScene(w, h float64) *scene {
	root := layer.NewContainerLayer()

	bg := dl.NewBuilder()
	const stripes = 24
	for i := 0; i < stripes; i++ {
		t := float64(i) / stripes
		bg.DrawRect(geom.XYWH(0, h*t, w, h/stripes), gg.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2))
	}
	root.Add(layer.NewDisplayListLayer(gg.Pt(0, 0), bg.Build()))

	cards := layer.NewOpacityLayer(0.2, gg.Pt(0, 0))
	colors := []gg.RGBA{gg.RGB(1, 0.3, 0.3), gg.RGB(0.3, 1, 0.3), gg.RGB(0.3, 0.3, 1)}
	for i, c := range colors {
		b := dl.NewBuilder()
		r := geom.XYWH(float64(i)*40, float64(i)*20, 120, 80)
		b.DrawPath(geom.RRectPath(geom.RRectOf(r, 12)), c)
		cards.Add(layer.NewDisplayListLayer(gg.Pt(0, 0), b.Build()))
	}
	root.Add(cards)

	panel := geom.XYWH(w*0.6, h*0.1, w*0.3, h*0.8)
	clip := layer.NewClipRRectLayer(geom.RRectOf(panel, 16), layer.ClipAntiAlias)
	clip.Add(layer.NewBackdropFilterLayer(paint.Blur(6, 6), paint.BlendNormal))
	tint := layer.NewColorFilterLayer(paint.Grayscale())
	b := dl.NewBuilder()
	b.DrawRect(panel.Outset(-12), gg.RGBA{R: 1, G: 1, B: 1, A: 0.25})
	tint.Add(layer.NewDisplayListLayer(gg.Pt(0, 0), b.Build()))
	clip.Add(tint)
	root.Add(clip)

	return &scene{root: root, cards: cards}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
