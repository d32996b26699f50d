package neopix

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/rgb"
)

func TestTopology_Serpentine4x4(t *testing.T) {
	topo, err := NewTopology(4, 4, Serpentine)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		col, row int
		want     int
	}{
		{0, 0, 0},
		{0, 3, 3},
		{1, 0, 7},
		{1, 3, 4},
		{2, 0, 8},
		{3, 0, 15},
		{3, 3, 12},
	}
	for _, tt := range tests {
		got, ok := topo.Index(tt.col, tt.row)
		if !ok || got != tt.want {
			t.Errorf("Index(%d, %d) = %d, %v; want %d", tt.col, tt.row, got, ok, tt.want)
		}
	}
}

func TestTopology_RowMajor(t *testing.T) {
	topo, err := NewTopology(3, 5, RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 5; row++ {
			if got, _ := topo.Index(col, row); got != col*5+row {
				t.Errorf("Index(%d, %d) = %d", col, row, got)
			}
		}
	}
}

func TestTopology_Bijection(t *testing.T) {
	for _, w := range []Wiring{RowMajor, Serpentine} {
		for _, dims := range [][2]int{{1, 1}, {4, 4}, {32, 8}, {5, 3}, {1, 7}} {
			topo, err := NewTopology(dims[0], dims[1], w)
			if err != nil {
				t.Fatal(err)
			}
			seen := make(map[int]bool)
			for col := 0; col < dims[0]; col++ {
				for row := 0; row < dims[1]; row++ {
					i, ok := topo.Index(col, row)
					if !ok || i < 0 || i >= topo.Len() || seen[i] {
						t.Fatalf("%v %v: bad index %d at (%d, %d)", w, dims, i, col, row)
					}
					seen[i] = true

					c, r, ok := topo.Coord(i)
					if !ok || c != col || r != row {
						t.Fatalf("%v %v: Coord(%d) = (%d, %d)", w, dims, i, c, r)
					}
				}
			}
			if len(seen) != dims[0]*dims[1] {
				t.Fatalf("%v %v: %d indices, want %d", w, dims, len(seen), dims[0]*dims[1])
			}
		}
	}
}

func TestTopology_Invalid(t *testing.T) {
	g := NewWithT(t)

	_, err := NewTopology(0, 4, Serpentine)
	g.Expect(err).To(MatchError(ErrConfiguration))
	_, err = NewTopology(4, -1, RowMajor)
	g.Expect(err).To(MatchError(ErrConfiguration))
	_, err = NewTopology(4, 4, Wiring(9))
	g.Expect(err).To(MatchError(ErrConfiguration))

	topo, _ := NewTopology(2, 2, RowMajor)
	_, ok := topo.Index(2, 0)
	g.Expect(ok).To(BeFalse())
	_, _, ok = topo.Coord(4)
	g.Expect(ok).To(BeFalse())
}

func TestParseWiring(t *testing.T) {
	tests := map[string]Wiring{
		"row_major":    RowMajor,
		"standard":     RowMajor,
		"Serpentine":   Serpentine,
		"chain":        Serpentine,
		"chain_matrix": Serpentine,
	}
	for in, want := range tests {
		got, err := ParseWiring(in)
		if err != nil || got != want {
			t.Errorf("ParseWiring(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseWiring("zigzag"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func newStrip(t *testing.T, cfg Config) (*Strip, *MemorySink) {
	t.Helper()
	sink := NewMemorySink(cfg.Columns * cfg.Rows)
	s, err := New(sink, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s, sink
}

func TestStrip_MatrixWrites(t *testing.T) {
	g := NewWithT(t)
	s, sink := newStrip(t, Config{Columns: 4, Rows: 4, Wiring: Serpentine})

	red := rgb.Color{R: 255}
	s.SetMatrixPixel(1, 0, red)
	g.Expect(sink.Pending(7)).To(Equal(red))

	s.SetMatrixPixel(4, 0, red)
	s.SetMatrixPixel(-1, 0, red)

	idx, ok := s.MatrixIndex(1, 3)
	g.Expect(ok).To(BeTrue())
	g.Expect(idx).To(Equal(4))

	g.Expect(sink.Frame()[7]).To(Equal(rgb.Black))
	g.Expect(s.Show()).To(Succeed())
	g.Expect(sink.Frame()[7]).To(Equal(red))
	g.Expect(sink.Shows()).To(Equal(1))
}

func TestStrip_Ranges(t *testing.T) {
	g := NewWithT(t)
	s, sink := newStrip(t, Config{Columns: 2, Rows: 4, Wiring: RowMajor})
	blue := rgb.Color{B: 200}

	s.SetStripPixels(0, 8, blue, 3)
	for i := 0; i < 8; i++ {
		if i%3 == 0 {
			g.Expect(sink.Pending(i)).To(Equal(blue))
		} else {
			g.Expect(sink.Pending(i)).To(Equal(rgb.Black))
		}
	}

	s.ClearAll()
	s.SetMatrixPixels(0, 2, 1, 1, blue, 1)
	for i := 0; i < 8; i++ {
		want := rgb.Black
		if i >= 2 && i < 5 {
			want = blue
		}
		g.Expect(sink.Pending(i)).To(Equal(want), "index %d", i)
	}
}

func TestStrip_Gamma(t *testing.T) {
	g := NewWithT(t)
	s, sink := newStrip(t, Config{Columns: 2, Rows: 2, GammaCorrect: true, Gamma: 2.2, BitDepth: 8})

	g.Expect(s.Gamma(0)).To(BeZero())
	g.Expect(s.Gamma(255)).To(Equal(255))

	s.SetStripPixel(0, rgb.Color{R: 255, G: 128})
	got := sink.Pending(0)
	g.Expect(got.R).To(Equal(uint8(255)))
	g.Expect(int(got.G)).To(Equal(s.Gamma(128)))

	plain, _ := newStrip(t, Config{Columns: 2, Rows: 2})
	g.Expect(plain.Gamma(128)).To(Equal(128))
	g.Expect(plain.GammaTable()).To(BeNil())
}

func TestStrip_SetAll(t *testing.T) {
	g := NewWithT(t)
	s, sink := newStrip(t, Config{Columns: 1, Rows: 3})
	c := rgb.Color{R: 255, G: 128, B: 64}

	s.SetAll(c, FullBrightness)
	g.Expect(sink.Pending(2)).To(Equal(c))

	s.SetAll(c, 64)
	g.Expect(sink.Pending(0)).To(Equal(rgb.Color{R: 3, G: 2, B: 1}))

	s.SetAll(c, 0)
	g.Expect(sink.Pending(1)).To(Equal(rgb.Black))
}

func TestNew_Invalid(t *testing.T) {
	g := NewWithT(t)

	_, err := New(nil, Config{})
	g.Expect(err).To(MatchError(ErrConfiguration))

	_, err = New(NewMemorySink(4), Config{Columns: 4, Rows: 4})
	g.Expect(err).To(MatchError(ErrConfiguration))

	_, err = New(NewMemorySink(4), Config{Columns: 2, Rows: 2, GammaCorrect: true, Gamma: 0})
	g.Expect(err).To(MatchError(ErrConfiguration))
	g.Expect(errors.Is(err, rgb.ErrInvalidGamma)).To(BeTrue())

	s, err := New(NewMemorySink(10), Config{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Topology()).To(BeNil())
	_, ok := s.MatrixIndex(0, 0)
	g.Expect(ok).To(BeFalse())
}

func TestStrip_Brightness(t *testing.T) {
	g := NewWithT(t)
	s, sink := newStrip(t, Config{Columns: 2, Rows: 2, Brightness: 64})
	g.Expect(s.Brightness()).To(Equal(64))

	s.SetMatrixPixel(1, 1, rgb.Color{R: 255, G: 128, B: 64})
	idx, _ := s.MatrixIndex(1, 1)
	g.Expect(sink.Pending(idx)).To(Equal(rgb.Color{R: 3, G: 2, B: 1}))

	full, _ := newStrip(t, Config{Columns: 2, Rows: 2})
	g.Expect(full.Brightness()).To(Equal(FullBrightness))

	for _, b := range []int{-1, 128, 200, 254, 300} {
		_, err := New(NewMemorySink(4), Config{Columns: 2, Rows: 2, Brightness: b})
		g.Expect(err).To(MatchError(ErrConfiguration), "brightness %d", b)
	}
	dim, _ := newStrip(t, Config{Columns: 2, Rows: 2, Brightness: MaxDimLevel})
	g.Expect(dim.Brightness()).To(Equal(MaxDimLevel))
}
