package rastercache

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

type testContent struct {
	id       uint64
	bounds   geom.Rect
	ops      int
	complex  bool
	changing bool
	draws    int
}

func (c *testContent) CacheID() KeyID { return KeyID{Kind: KindPicture, ID: c.id} }
func (c *testContent) Bounds() geom.Rect { return c.bounds }
func (c *testContent) OpCount() int { return c.ops }
func (c *testContent) IsComplex() bool { return c.complex }
func (c *testContent) WillChange() bool { return c.changing }
func (c *testContent) Draw(cv *canvas.Canvas) {
	c.draws++
	cv.DrawRect(c.bounds, gg.RGBA{R: 1, A: 1})
}

func complexContent(id uint64) *testContent {
	return &testContent{id: id, bounds: geom.XYWH(0, 0, 20, 10), ops: 10}
}

func TestPromotionScenario(t *testing.T) {
	c := New(WithAccessThreshold(2))
	content := complexContent(1)
	m := geom.Identity()

	if img, ok := c.Prepare(content, m); ok || img != nil {
		t.Fatal("frame 1 Prepare() returned an image")
	}
	c.SweepAfterFrame()

	img, ok := c.Prepare(content, m)
	if !ok || img == nil {
		t.Fatal("frame 2 Prepare() returned no image")
	}
	if got, want := img.Bounds(), content.bounds; got != want {
		t.Errorf("image Bounds() = %v, want %v", got, want)
	}
	if got, _ := c.Get(content.CacheID(), m); got != img {
		t.Error("Get() does not return the prepared image")
	}
	c.SweepAfterFrame()

	// A frame without Prepare evicts.
	if n := c.SweepAfterFrame(); n != 1 {
		t.Errorf("SweepAfterFrame() = %d, want 1", n)
	}
	if _, ok := c.Get(content.CacheID(), m); ok {
		t.Error("Get() after eviction found an image")
	}
	if _, ok := c.Prepare(content, m); ok {
		t.Error("Prepare() after eviction returned an image")
	}
	e, ok := c.Lookup(content.CacheID(), m)
	if !ok || e.AccessCount() != 1 {
		t.Errorf("entry after eviction = %+v, %v, want access count 1", e, ok)
	}
	if content.draws != 1 {
		t.Errorf("content drawn %d times, want 1", content.draws)
	}
}

func TestPromotionThreshold(t *testing.T) {
	for threshold := 1; threshold <= 4; threshold++ {
		c := New(WithAccessThreshold(threshold))
		content := complexContent(7)
		m := geom.Translation(3, 4)
		for frame := 1; frame <= threshold+2; frame++ {
			_, ok := c.Prepare(content, m)
			if want := frame >= threshold; ok != want {
				t.Errorf("threshold %d frame %d: Prepare() ok = %v, want %v", threshold, frame, ok, want)
			}
			e, _ := c.Lookup(content.CacheID(), m)
			if e.AccessCount() > threshold {
				t.Errorf("threshold %d: AccessCount() = %d exceeds threshold", threshold, e.AccessCount())
			}
			c.SweepAfterFrame()
		}
	}
}

func TestKeySensitivity(t *testing.T) {
	c := New(WithAccessThreshold(1))
	content := complexContent(2)
	a := geom.Translation(10, 10)
	b := geom.Translation(10+1e-9, 10)

	imgA, okA := c.Prepare(content, a)
	imgB, okB := c.Prepare(content, b)
	if !okA || !okB {
		t.Fatal("Prepare() did not cache")
	}
	if imgA == imgB {
		t.Error("translations differing by epsilon share an image")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if MakeKey(content.CacheID(), a) == MakeKey(content.CacheID(), b) {
		t.Error("MakeKey() coalesced distinct matrices")
	}
	other := complexContent(3)
	if MakeKey(content.CacheID(), a) == MakeKey(other.CacheID(), a) {
		t.Error("MakeKey() coalesced distinct content")
	}
	layer := KeyID{Kind: KindLayer, ID: 2}
	if MakeKey(content.CacheID(), a) == MakeKey(layer, a) {
		t.Error("MakeKey() coalesced distinct kinds")
	}
}

func TestEligibility(t *testing.T) {
	tests := []struct {
		name    string
		content *testContent
		m       geom.Matrix
		want    bool
	}{
		{"complex op count", complexContent(1), geom.Identity(), true},
		{"trivial", &testContent{id: 1, bounds: geom.XYWH(0, 0, 10, 10), ops: 5}, geom.Identity(), false},
		{"trivial but complex hint", &testContent{id: 1, bounds: geom.XYWH(0, 0, 10, 10), ops: 1, complex: true}, geom.Identity(), true},
		{"will change", &testContent{id: 1, bounds: geom.XYWH(0, 0, 10, 10), ops: 100, changing: true}, geom.Identity(), false},
		{"empty bounds", &testContent{id: 1, bounds: geom.EmptyRect(), ops: 100}, geom.Identity(), false},
		{"singular", complexContent(1), geom.Scaling(0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithAccessThreshold(1))
			if got := c.Eligible(tt.content, tt.m); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
			_, ok := c.Prepare(tt.content, tt.m)
			if ok != tt.want {
				t.Errorf("Prepare() ok = %v, want %v", ok, tt.want)
			}
			if !tt.want && c.Len() != 0 {
				t.Errorf("ineligible content inserted: Len() = %d", c.Len())
			}
		})
	}
}

func TestPerFrameLimit(t *testing.T) {
	c := New(WithAccessThreshold(1), WithPictureCacheLimitPerFrame(2))
	contents := []*testContent{complexContent(1), complexContent(2), complexContent(3)}
	ready := 0
	for _, content := range contents {
		if _, ok := c.Prepare(content, geom.Identity()); ok {
			ready++
		}
	}
	if ready != 2 {
		t.Errorf("images in frame 1 = %d, want 2", ready)
	}
	c.SweepAfterFrame()
	if _, ok := c.Prepare(contents[2], geom.Identity()); !ok {
		t.Error("deferred content not rasterized in frame 2")
	}

	unlimited := New(WithAccessThreshold(1), WithPictureCacheLimitPerFrame(0))
	for i := uint64(0); i < 10; i++ {
		if _, ok := unlimited.Prepare(complexContent(100+i), geom.Identity()); !ok {
			t.Fatalf("unlimited cache refused content %d", i)
		}
	}
}

func TestSurfaceTooLarge(t *testing.T) {
	c := New(WithAccessThreshold(1), WithMaxSurfaceSize(64))
	content := complexContent(1)
	if _, ok := c.Prepare(content, geom.Scaling(10, 10)); ok {
		t.Error("Prepare() cached a 200px surface with a 64px limit")
	}
	if _, ok := c.Prepare(content, geom.Scaling(10, 10)); ok {
		t.Error("second Prepare() cached an oversized surface")
	}
	if content.draws != 0 {
		t.Errorf("content drawn %d times, want 0", content.draws)
	}

	_, err := Rasterize(content, geom.Scaling(10, 10), false, 64)
	if !errors.Is(err, ErrSurfaceTooLarge) {
		t.Errorf("Rasterize() error = %v, want ErrSurfaceTooLarge", err)
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize(complexContent(1), geom.Scaling(0, 2), false, 100); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Rasterize(singular) error = %v, want ErrSingularMatrix", err)
	}
	empty := &testContent{id: 1, bounds: geom.EmptyRect()}
	if _, err := Rasterize(empty, geom.Identity(), false, 100); !errors.Is(err, ErrEmptyBounds) {
		t.Errorf("Rasterize(empty) error = %v, want ErrEmptyBounds", err)
	}
}

func TestRasterizeDevicePlacement(t *testing.T) {
	content := &testContent{id: 1, bounds: geom.XYWH(0, 0, 10, 10), ops: 10}
	m := geom.Translation(5.5, 7).Concat(geom.Scaling(2, 2))
	img, err := Rasterize(content, m, false, 100)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	dev := img.DeviceBounds()
	if dev.Min.X != 5 || dev.Min.Y != 7 || dev.Dx() != 21 || dev.Dy() != 20 {
		t.Errorf("DeviceBounds() = %v, want (5,7)-(26,27)", dev)
	}
	if got := img.RGBA().Bounds().Size(); got != dev.Size() {
		t.Errorf("pixel size = %v, want %v", got, dev.Size())
	}
	if p := img.RGBA().RGBAAt(10, 10); p.R < 200 || p.A < 200 {
		t.Errorf("pixel inside = %v, want opaque red", p)
	}
	if got, want := img.ByteSize(), int64(21*20*4); got != want {
		t.Errorf("ByteSize() = %d, want %d", got, want)
	}
}

func TestCheckerboard(t *testing.T) {
	c := New(WithAccessThreshold(1))
	content := complexContent(1)
	if _, ok := c.Prepare(content, geom.Identity()); !ok {
		t.Fatal("Prepare() did not cache")
	}
	c.SetCheckerboardCacheImages(false)
	if c.Len() != 1 {
		t.Error("setting the same checkerboard flag cleared the cache")
	}
	c.SetCheckerboardCacheImages(true)
	if c.Len() != 0 {
		t.Errorf("Len() after toggling checkerboard = %d, want 0", c.Len())
	}
	if !c.CheckerboardCacheImages() {
		t.Error("CheckerboardCacheImages() = false")
	}

	plain, err := Rasterize(content, geom.Identity(), false, 100)
	if err != nil {
		t.Fatal(err)
	}
	checked, err := Rasterize(content, geom.Identity(), true, 100)
	if err != nil {
		t.Fatal(err)
	}
	if plain.RGBA().RGBAAt(2, 2) == checked.RGBA().RGBAAt(2, 2) {
		t.Error("checkerboard overlay did not change pixels")
	}
}

func TestTouchKeepsEntry(t *testing.T) {
	c := New(WithAccessThreshold(1))
	content := complexContent(1)
	c.Prepare(content, geom.Identity())
	c.SweepAfterFrame()

	c.Touch(content.CacheID(), geom.Identity())
	c.Touch(KeyID{Kind: KindLayer, ID: 99}, geom.Identity())
	if n := c.SweepAfterFrame(); n != 0 {
		t.Errorf("SweepAfterFrame() after Touch = %d, want 0", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestDraw(t *testing.T) {
	c := New(WithAccessThreshold(1))
	content := complexContent(1)
	m := geom.Translation(10, 5)
	if _, ok := c.Prepare(content, m); !ok {
		t.Fatal("Prepare() did not cache")
	}

	cv := canvas.NewOffscreen(40, 40)
	cv.Translate(100, 100) // ignored: cached images draw at device position
	p := paint.New()
	if !c.Draw(content.CacheID(), m, cv, &p) {
		t.Fatal("Draw() = false")
	}
	if err := cv.Err(); err != nil {
		t.Fatalf("canvas Err() = %v", err)
	}
	img := cv.Snapshot()
	if px := img.RGBAAt(15, 10); px.R < 200 || px.A < 200 {
		t.Errorf("pixel inside = %v, want opaque red", px)
	}
	if px := img.RGBAAt(5, 2); px.A != 0 {
		t.Errorf("pixel outside = %v, want transparent", px)
	}
	if tx, ty := cv.Matrix().Translation(); tx != 100 || ty != 100 {
		t.Errorf("canvas matrix not restored: (%v, %v)", tx, ty)
	}
	if c.Draw(content.CacheID(), geom.Identity(), cv, nil) {
		t.Error("Draw() with an uncached matrix = true")
	}
}

func TestPictureContent(t *testing.T) {
	b := dl.NewBuilder()
	for i := 0; i < 8; i++ {
		b.DrawRect(geom.XYWH(float64(i)*4, 0, 3, 3), gg.RGBA{G: 1, A: 1})
	}
	d := b.Build()
	pc := NewPictureContent(d, false, false)
	if got := pc.CacheID(); got.Kind != KindPicture || got.ID != d.UniqueID() {
		t.Errorf("CacheID() = %v", got)
	}
	c := New(WithAccessThreshold(1))
	img, ok := c.Prepare(pc, geom.Identity())
	if !ok {
		t.Fatal("Prepare() did not cache a display list with 8 ops")
	}
	if px := img.RGBA().RGBAAt(1, 1); px.G < 200 {
		t.Errorf("pixel = %v, want green", px)
	}
}

func TestStats(t *testing.T) {
	c := New(WithAccessThreshold(2))
	content := complexContent(1)
	c.Prepare(content, geom.Identity())
	c.Prepare(content, geom.Identity())
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 0.5 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss", s)
	}
	if s.Entries != 1 || s.Images != 1 || s.Rasterized != 1 {
		t.Errorf("Stats() = %+v, want one rasterized entry", s)
	}
	if s.Bytes != c.EstimateByteSize() || s.Bytes != 20*10*4 {
		t.Errorf("Stats().Bytes = %d, EstimateByteSize() = %d, want %d", s.Bytes, c.EstimateByteSize(), 20*10*4)
	}
	c.Clear()
	if s := c.Stats(); s.Entries != 0 || s.Evictions != 1 {
		t.Errorf("Stats() after Clear() = %+v", s)
	}
	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Evictions != 0 {
		t.Errorf("Stats() after ResetStats() = %+v", s)
	}
}

func TestLogSites(t *testing.T) {
	var buf bytes.Buffer
	flow.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer flow.SetLogger(nil)

	c := New(WithAccessThreshold(1), WithMaxSurfaceSize(32))
	c.Prepare(complexContent(1), geom.Identity())
	big := complexContent(2)
	big.bounds = geom.XYWH(0, 0, 64, 64)
	c.Prepare(big, geom.Identity())
	c.SweepAfterFrame()
	c.SweepAfterFrame()

	out := buf.String()
	for _, want := range []string{
		`msg="rastercache: rasterized"`,
		`level=WARN msg="rastercache: not caching"`,
		`msg="rastercache: sweep" evicted=2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
