package rgb

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
)

func TestFromHSV(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    Color
	}{
		{0, 1, 1, Color{255, 0, 0}},
		{60, 1, 1, Color{255, 255, 0}},
		{120, 1, 1, Color{0, 255, 0}},
		{180, 1, 1, Color{0, 255, 255}},
		{240, 1, 1, Color{0, 0, 255}},
		{300, 1, 1, Color{255, 0, 255}},
		{360, 1, 1, Color{255, 0, 0}},
		{-120, 1, 1, Color{0, 0, 255}},
		{0, 0, 0.5, Color{128, 128, 128}},
		{0, 0, 0, Color{0, 0, 0}},
	}

	for _, tt := range tests {
		if got := FromHSV(tt.h, tt.s, tt.v); got != tt.want {
			t.Errorf("FromHSV(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestColor_HSV(t *testing.T) {
	tests := []struct {
		c    Color
		want HSV
	}{
		{Color{255, 0, 0}, HSV{0, 100, 100}},
		{Color{0, 255, 0}, HSV{120, 100, 100}},
		{Color{0, 0, 255}, HSV{240, 100, 100}},
		{Color{255, 0, 255}, HSV{300, 100, 100}},
		{Color{0, 0, 0}, HSV{0, 0, 0}},
	}
	for _, tt := range tests {
		if got := tt.c.HSV(); got != tt.want {
			t.Errorf("%v.HSV() = %+v, want %+v", tt.c, got, tt.want)
		}
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		pos  uint8
		want Color
	}{
		{0, Color{0, 255, 0}},
		{85, Color{255, 0, 0}},
		{86, Color{252, 0, 3}},
		{170, Color{0, 0, 255}},
		{171, Color{0, 3, 252}},
		{255, Color{0, 255, 0}},
	}
	for _, tt := range tests {
		if got := Wheel(tt.pos); got != tt.want {
			t.Errorf("Wheel(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestRGB565(t *testing.T) {
	g := NewWithT(t)

	g.Expect(To565(Color{255, 0, 0})).To(Equal(uint16(0xf800)))
	g.Expect(To565(Color{0, 255, 0})).To(Equal(uint16(0x07e0)))
	g.Expect(To565(Color{0, 0, 255})).To(Equal(uint16(0x001f)))

	// lossy round trips
	g.Expect(From565(To565(Color{255, 0, 0}))).To(Equal(Color{255, 0, 0}))
	g.Expect(From565(To565(Color{1, 1, 1}))).To(Equal(Color{0, 0, 0}))
	g.Expect(From565(To565(Color{200, 100, 50}))).To(Equal(Color{206, 101, 49}))
	g.Expect(From565(0xffff)).To(Equal(White))
}

func TestGammaTable_Identity(t *testing.T) {
	gt, err := NewGammaTable(1.0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if gt.Len() != 256 {
		t.Fatalf("len = %d, want 256", gt.Len())
	}
	for i := 0; i < 256; i++ {
		if got := gt.Lookup(i); int(got) != i {
			t.Fatalf("out[%d] = %d", i, got)
		}
	}
}

func TestGammaTable_Curve(t *testing.T) {
	g := NewWithT(t)

	gt, err := NewGammaTable(DefaultGamma, 8)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(gt.Lookup(0)).To(BeZero())
	g.Expect(gt.Lookup(255)).To(Equal(uint16(255)))
	g.Expect(gt.Lookup(128)).To(BeNumerically("~", 56, 1))
	g.Expect(gt.Lookup(-5)).To(BeZero())
	g.Expect(gt.Lookup(900)).To(Equal(uint16(255)))

	prev := uint16(0)
	for i := 0; i < 256; i++ {
		v := gt.Lookup(i)
		g.Expect(v).To(BeNumerically(">=", prev))
		prev = v
	}

	c := gt.Apply(Color{255, 128, 0})
	g.Expect(c.R).To(Equal(uint8(255)))
	g.Expect(c.G).To(BeNumerically("<", 128))
	g.Expect(c.B).To(BeZero())
}

func TestGammaTable_BitDepth(t *testing.T) {
	gt, err := NewGammaTable(1.0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if gt.Len() != 16 {
		t.Fatalf("len = %d, want 16", gt.Len())
	}
	if c := gt.Apply(Color{255, 0, 136}); c != (Color{255, 0, 136}) {
		t.Errorf("identity 4-bit apply = %v", c)
	}
}

func TestGammaTable_Invalid(t *testing.T) {
	cases := []struct {
		exp  float64
		bits int
	}{
		{0, 8}, {-1, 8}, {2.2, 0}, {2.2, 17},
	}
	for _, c := range cases {
		if _, err := NewGammaTable(c.exp, c.bits); !errors.Is(err, ErrInvalidGamma) {
			t.Errorf("NewGammaTable(%v, %d): expected ErrInvalidGamma, got %v", c.exp, c.bits, err)
		}
	}
}

func TestDim(t *testing.T) {
	c := Color{255, 128, 64}
	if got := Dim(c, 127); got != c {
		t.Errorf("full level changed color: %v", got)
	}
	if got := Dim(c, 0); got != Black {
		t.Errorf("zero level = %v", got)
	}
	if got := Dim(c, 64); got != (Color{3, 2, 1}) {
		t.Errorf("Dim(64) = %v", got)
	}
}

func TestConvert(t *testing.T) {
	g := NewWithT(t)

	c, err := Convert(SpaceHSV, 120, 1, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c).To(Equal(Color{0, 255, 0}))

	c, err = Convert(SpaceWheel, 85)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c).To(Equal(Color{255, 0, 0}))

	c, err = Convert(SpaceRGB565, 0x001f)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c).To(Equal(Color{0, 0, 255}))

	c, err = Convert(SpaceRGB, 300, -4, 12.4)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c).To(Equal(Color{255, 0, 12}))

	_, err = Convert(SpaceHSV, 1)
	g.Expect(err).To(HaveOccurred())

	sp, err := ParseSpace("c_w")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sp).To(Equal(SpaceWheel))
	_, err = ParseSpace("CMYK")
	g.Expect(err).To(HaveOccurred())
}

func TestHexAndBlend(t *testing.T) {
	g := NewWithT(t)

	g.Expect(White.Hex()).To(Equal("#ffffff"))
	g.Expect(Color{255, 0, 0}.Hex()).To(Equal("#ff0000"))

	c, err := ParseHex("#00ff80")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c).To(Equal(Color{0, 255, 128}))

	mid := Blend(Black, White, 0.5)
	g.Expect(mid.R).To(BeNumerically("~", 128, 1))
	g.Expect(Blend(Black, White, 0)).To(Equal(Black))
	g.Expect(Blend(Black, White, 1)).To(Equal(White))
}
