package geom

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f64"
)

const epsilon = 1e-9

func nearly(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func rectNearly(a, b Rect) bool {
	return nearly(a.Left, b.Left) && nearly(a.Top, b.Top) &&
		nearly(a.Right, b.Right) && nearly(a.Bottom, b.Bottom)
}

func TestMatrixConcatOrder(t *testing.T) {
	// Scale then translate: points are scaled first when the translate is
	// the outer matrix.
	m := Translation(10, 20).Concat(Scaling(2, 3))
	x, y := m.MapPoint(1, 1)
	if !nearly(x, 12) || !nearly(y, 23) {
		t.Errorf("MapPoint(1, 1) = (%v, %v), want (12, 23)", x, y)
	}

	m = Scaling(2, 3).Concat(Translation(10, 20))
	x, y = m.MapPoint(1, 1)
	if !nearly(x, 22) || !nearly(y, 63) {
		t.Errorf("MapPoint(1, 1) = (%v, %v), want (22, 63)", x, y)
	}
}

func TestMatrixPreTranslate(t *testing.T) {
	base := Scaling(2, 2).Concat(Rotation(math.Pi / 6))
	got := base.PreTranslate(5, 7)
	want := base.Concat(Translation(5, 7))
	for i, v := range got.Mat4() {
		if !nearly(v, want.Mat4()[i]) {
			t.Fatalf("PreTranslate()[%d] = %v, want %v", i, v, want.Mat4()[i])
		}
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{"identity", Identity(), true},
		{"translate", Translation(3, -4), true},
		{"scale", Scaling(2, 0.5), true},
		{"rotate", Rotation(0.3), true},
		{"perspective", Perspective(0.001, 0.002), true},
		{"zero scale", Scaling(0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if ok != tt.ok {
				t.Fatalf("Invert() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			x, y := tt.m.MapPoint(13, 17)
			bx, by := inv.MapPoint(x, y)
			if math.Abs(bx-13) > 1e-6 || math.Abs(by-17) > 1e-6 {
				t.Errorf("round trip = (%v, %v), want (13, 17)", bx, by)
			}
		})
	}
}

func TestMatrixMapRect(t *testing.T) {
	r := LTRB(0, 0, 10, 20)
	got := Translation(5, 5).Concat(Scaling(2, 2)).MapRect(r)
	if want := LTRB(5, 5, 25, 45); !rectNearly(got, want) {
		t.Errorf("MapRect() = %v, want %v", got, want)
	}

	got = Rotation(math.Pi / 2).MapRect(r)
	if want := LTRB(-20, 0, 0, 10); !rectNearly(got, want) {
		t.Errorf("MapRect(rotate 90) = %v, want %v", got, want)
	}

	if got := Identity().MapRect(EmptyRect()); !got.IsEmpty() {
		t.Errorf("MapRect(empty) = %v, want empty", got)
	}
}

func TestMatrixPredicates(t *testing.T) {
	tests := []struct {
		name          string
		m             Matrix
		perspective   bool
		affine        bool
		rectStaysRect bool
	}{
		{"identity", Identity(), false, true, true},
		{"scale translate", Translation(1, 2).Concat(Scaling(3, 4)), false, true, true},
		{"quarter turn", FromMat4(f64.Mat4{0, -1, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}), false, true, true},
		{"rotate 30", Rotation(math.Pi / 6), false, true, false},
		{"perspective", Perspective(0.01, 0), true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.HasPerspective(); got != tt.perspective {
				t.Errorf("HasPerspective() = %v, want %v", got, tt.perspective)
			}
			if got := tt.m.IsAffine(); got != tt.affine {
				t.Errorf("IsAffine() = %v, want %v", got, tt.affine)
			}
			if got := tt.m.RectStaysRect(); got != tt.rectStaysRect {
				t.Errorf("RectStaysRect() = %v, want %v", got, tt.rectStaysRect)
			}
		})
	}
}

func TestMatrixIntegral(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		changed bool
		tx, ty  float64
	}{
		{"already integral", Translation(3, 4), false, 3, 4},
		{"fractional", Translation(3.4, 4.6), true, 3, 5},
		{"scaled fractional", Translation(0.5, 1.25).Concat(Scaling(2, 2)), true, 1, 1},
		{"rotated", Translation(0.5, 0.5).Concat(Rotation(0.1)), false, 0.5, 0.5},
		{"perspective", Translation(0.5, 0.5).Concat(Perspective(0.01, 0)), false, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.m.Integral()
			if changed != tt.changed {
				t.Fatalf("Integral() changed = %v, want %v", changed, tt.changed)
			}
			tx, ty := got.Translation()
			if !nearly(tx, tt.tx) || !nearly(ty, tt.ty) {
				t.Errorf("Integral() translation = (%v, %v), want (%v, %v)", tx, ty, tt.tx, tt.ty)
			}
		})
	}
}

func TestMatrixAffineInterop(t *testing.T) {
	a := gg.Matrix{A: 2, B: 0.5, C: 10, D: -0.5, E: 3, F: 20}
	m := FromAffine(a)
	if !m.IsAffine() {
		t.Fatal("FromAffine() result is not affine")
	}
	if got := m.Affine(); got != a {
		t.Errorf("Affine() = %+v, want %+v", got, a)
	}
	if got := FromAff3(m.Aff3()); !got.Equal(m) {
		t.Errorf("FromAff3(Aff3()) = %v, want %v", got.Mat4(), m.Mat4())
	}
	want := f64.Aff3{2, 0.5, 10, -0.5, 3, 20}
	if got := m.Aff3(); got != want {
		t.Errorf("Aff3() = %v, want %v", got, want)
	}
}
