package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/rgb"
)

var frame = [][]rgb.Color{
	{{R: 255}, rgb.Black, rgb.Black},
	{rgb.Black, rgb.Black, {B: 255}},
}

func TestFrameToSVG(t *testing.T) {
	g := NewWithT(t)
	topo, err := neopix.NewTopology(3, 2, neopix.Serpentine)
	g.Expect(err).NotTo(HaveOccurred())

	svg := FrameToSVG(frame, topo, 10)
	g.Expect(svg).To(HavePrefix("<?xml"))
	g.Expect(svg).To(HaveSuffix("</svg>"))
	g.Expect(strings.Count(svg, "<circle")).To(Equal(6))
	g.Expect(svg).To(ContainSubstring(`width="30" height="20"`))
	g.Expect(svg).To(ContainSubstring(`fill="#ff0000" data-index="0"`))
	// columns are wired top to bottom, odd columns bottom to top
	g.Expect(svg).To(ContainSubstring(`cx="25.0" cy="15.0" r="4.0" fill="#0000ff" data-index="5"`))
	g.Expect(svg).To(ContainSubstring(`cx="15.0" cy="5.0" r="4.0" fill="#1a1a1a" data-index="3"`))
	g.Expect(svg).NotTo(ContainSubstring("<path"))
}

func TestFrameToSVG_Trails(t *testing.T) {
	trail := Trail{Name: "ball0", Color: rgb.White, Points: []geometry.Point{{X: 0, Y: 0}, {X: 2, Y: 1}}}
	svg := FrameToSVG(frame, nil, 10, trail, Trail{Name: "short"})
	if !strings.Contains(svg, `data-body="ball0" d="M5.0,5.0 L25.0,15.0"`) {
		t.Errorf("trail path missing:\n%s", svg)
	}
	if strings.Contains(svg, "data-index") {
		t.Error("indices written without a topology")
	}
	if strings.Contains(svg, `data-body="short"`) {
		t.Error("single-point trail should be skipped")
	}
}

func TestFrameToSVG_Empty(t *testing.T) {
	if FrameToSVG(nil, nil, 10) != "" {
		t.Error("expected empty output for an empty frame")
	}
}

func TestFrameToPNG(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer
	g.Expect(FrameToPNG(&buf, frame, 4)).To(Succeed())

	img, err := png.Decode(&buf)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(img.Bounds().Dx()).To(Equal(12))
	g.Expect(img.Bounds().Dy()).To(Equal(8))

	r, gr, b, a := img.At(3, 3).RGBA()
	g.Expect([]uint32{r >> 8, gr >> 8, b >> 8, a >> 8}).To(Equal([]uint32{255, 0, 0, 255}))
	r, _, b, _ = img.At(11, 7).RGBA()
	g.Expect([]uint32{r >> 8, b >> 8}).To(Equal([]uint32{0, 255}))
	r, _, _, _ = img.At(4, 0).RGBA()
	g.Expect(r).To(BeZero())
}

func TestFrameToPNG_Invalid(t *testing.T) {
	var buf bytes.Buffer
	if err := FrameToPNG(&buf, nil, 4); err == nil {
		t.Error("expected error for empty frame")
	}
	if err := FrameToPNG(&buf, frame, 0); err == nil {
		t.Error("expected error for zero scale")
	}
}
