package geometry

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/rgb"
)

// Buffer is a frame buffer over a byte slice in one of the supported
// formats. Reads and writes outside [0,width)×[0,height) are ignored.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int, f Format) (*Buffer, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColorFormat, f)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	return Wrap(make([]byte, BufferSize(width, height, f, 0)), width, height, f, 0)
}

// Wrap uses data as backing storage. A stride of 0 means width; other
// strides are rounded up to whole bytes per row for packed formats.
func Wrap(data []byte, width, height int, f Format, stride int) (*Buffer, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColorFormat, f)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if stride <= 0 {
		stride = width
	}
	if stride < width {
		return nil, fmt.Errorf("%w: stride %d below width %d", ErrBufferSize, stride, width)
	}
	stride = f.alignStride(stride)
	if need := BufferSize(width, height, f, stride); len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferSize, need, len(data))
	}
	return &Buffer{data: data, width: width, height: height, stride: stride, format: f}, nil
}

func (b *Buffer) Width() int     { return b.width }
func (b *Buffer) Height() int    { return b.height }
func (b *Buffer) Stride() int    { return b.stride }
func (b *Buffer) Format() Format { return b.format }

// Bytes exposes the backing storage.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the raw value at (x, y), or 0 outside the buffer.
func (b *Buffer) Pixel(x, y int) uint16 {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.get(x, y)
}

// SetPixel writes the raw value c at (x, y). c is masked to the format's
// depth.
func (b *Buffer) SetPixel(x, y int, c uint16) {
	if !b.inBounds(x, y) {
		return
	}
	b.set(x, y, c)
}

func (b *Buffer) get(x, y int) uint16 {
	switch b.format {
	case MonoVLSB:
		return uint16(b.data[(y>>3)*b.stride+x]>>(y&7)) & 1
	case MonoHLSB:
		return uint16(b.data[(x+y*b.stride)>>3]>>(7-x&7)) & 1
	case MonoHMSB:
		return uint16(b.data[(x+y*b.stride)>>3]>>(x&7)) & 1
	case RGB565:
		i := (x + y*b.stride) * 2
		return uint16(b.data[i]) | uint16(b.data[i+1])<<8
	case GS2HMSB:
		return uint16(b.data[(x+y*b.stride)>>2]>>((x&3)<<1)) & 0x03
	case GS4HMSB:
		v := b.data[(x+y*b.stride)>>1]
		if x&1 == 0 {
			v >>= 4
		}
		return uint16(v & 0x0f)
	default:
		return uint16(b.data[x+y*b.stride])
	}
}

func (b *Buffer) set(x, y int, c uint16) {
	switch b.format {
	case MonoVLSB:
		setBit(&b.data[(y>>3)*b.stride+x], uint(y&7), c&1 != 0)
	case MonoHLSB:
		setBit(&b.data[(x+y*b.stride)>>3], uint(7-x&7), c&1 != 0)
	case MonoHMSB:
		setBit(&b.data[(x+y*b.stride)>>3], uint(x&7), c&1 != 0)
	case RGB565:
		i := (x + y*b.stride) * 2
		b.data[i] = byte(c)
		b.data[i+1] = byte(c >> 8)
	case GS2HMSB:
		p := &b.data[(x+y*b.stride)>>2]
		shift := uint((x & 3) << 1)
		*p = *p&^(0x03<<shift) | byte(c&0x03)<<shift
	case GS4HMSB:
		p := &b.data[(x+y*b.stride)>>1]
		if x&1 == 0 {
			*p = byte(c&0x0f)<<4 | *p&0x0f
		} else {
			*p = byte(c&0x0f) | *p&0xf0
		}
	default:
		b.data[x+y*b.stride] = byte(c)
	}
}

func setBit(p *byte, bit uint, on bool) {
	if on {
		*p |= 1 << bit
	} else {
		*p &^= 1 << bit
	}
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c uint16) {
	b.FillRect(0, 0, b.width, b.height, c)
}

// FillRect fills the w×h rectangle at (x, y), clipped to the buffer.
func (b *Buffer) FillRect(x, y, w, h int, c uint16) {
	if w < 1 || h < 1 || x+w <= 0 || y+h <= 0 || x >= b.width || y >= b.height {
		return
	}
	x1 := min(b.width, x+w)
	y1 := min(b.height, y+h)
	x = max(x, 0)
	y = max(y, 0)
	for yy := y; yy < y1; yy++ {
		for xx := x; xx < x1; xx++ {
			b.set(xx, yy, c)
		}
	}
}

// Rect draws the outline of the w×h rectangle at (x, y).
func (b *Buffer) Rect(x, y, w, h int, c uint16) {
	b.HLine(x, y, w, c)
	b.HLine(x, y+h-1, w, c)
	b.VLine(x, y, h, c)
	b.VLine(x+w-1, y, h, c)
}

func (b *Buffer) HLine(x, y, w int, c uint16) { b.FillRect(x, y, w, 1, c) }
func (b *Buffer) VLine(x, y, h int, c uint16) { b.FillRect(x, y, 1, h, c) }

// Line draws from (x0, y0) to (x1, y1) inclusive using Bresenham's
// algorithm.
func (b *Buffer) Line(x0, y0, x1, y1 int, c uint16) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Scroll shifts the contents by (dx, dy). Pixels uncovered by the shift
// keep their previous values.
func (b *Buffer) Scroll(dx, dy int) {
	var sx, xend, stepX int
	if dx < 0 {
		sx, xend, stepX = 0, b.width+dx, 1
		if xend <= 0 {
			return
		}
	} else {
		sx, xend, stepX = b.width-1, dx-1, -1
		if xend >= sx {
			return
		}
	}
	var y, yend, stepY int
	if dy < 0 {
		y, yend, stepY = 0, b.height+dy, 1
		if yend <= 0 {
			return
		}
	} else {
		y, yend, stepY = b.height-1, dy-1, -1
		if yend >= y {
			return
		}
	}
	for ; y != yend; y += stepY {
		for x := sx; x != xend; x += stepX {
			b.set(x, y, b.get(x-dx, y-dy))
		}
	}
}

// Blit copies src onto b with its top-left corner at (x, y). Source pixels
// equal to key are skipped; a negative key disables transparency. When
// palette is non-nil each source value v is replaced by palette.Pixel(v, 0)
// before the key comparison, which allows blitting between formats.
func (b *Buffer) Blit(src *Buffer, x, y int, key int, palette *Buffer) {
	if src == nil {
		return
	}
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(b.width, x+src.width)
	y1 := min(b.height, y+src.height)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			v := src.get(xx-x, yy-y)
			if palette != nil {
				v = palette.Pixel(int(v), 0)
			}
			if key >= 0 && int(v) == key {
				continue
			}
			b.set(xx, yy, v)
		}
	}
}

// Encode converts c to this buffer's pixel value.
func (b *Buffer) Encode(c rgb.Color) uint16 { return b.format.Encode(c) }

// Decode converts a pixel value of this buffer to 8-bit RGB.
func (b *Buffer) Decode(v uint16) rgb.Color { return b.format.Decode(v) }

// Color returns the decoded color at (x, y).
func (b *Buffer) Color(x, y int) rgb.Color { return b.Decode(b.Pixel(x, y)) }

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.data = append([]byte(nil), b.data...)
	return &c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
