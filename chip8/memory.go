package chip8

// Memory map. The display bitmap sits in the highest 256+1 bytes, programs
// load at 0x200 and the glyphs for the hex digits live at 0x000.
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200

	Width    = 64
	Height   = 32
	RowBytes = Width / 8

	VideoSize  = RowBytes * Height
	VideoStart = MemorySize - VideoSize - 1

	GlyphSize = 5
)

// glyphs are the 4x5 sprites for the digits 0-F.
var glyphs = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0,
	0x20, 0x60, 0x20, 0x20, 0x70,
	0xF0, 0x10, 0xF0, 0x80, 0xF0,
	0xF0, 0x10, 0xF0, 0x10, 0xF0,
	0x90, 0x90, 0xF0, 0x10, 0x10,
	0xF0, 0x80, 0xF0, 0x10, 0xF0,
	0xF0, 0x80, 0xF0, 0x90, 0xF0,
	0xF0, 0x10, 0x20, 0x40, 0x40,
	0xF0, 0x90, 0xF0, 0x90, 0xF0,
	0xF0, 0x90, 0xF0, 0x10, 0xF0,
	0xF0, 0x90, 0xF0, 0x90, 0x90,
	0xE0, 0x90, 0xE0, 0x90, 0xE0,
	0xF0, 0x80, 0x80, 0x80, 0xF0,
	0xE0, 0x90, 0x90, 0x90, 0xE0,
	0xF0, 0x80, 0xF0, 0x80, 0xF0,
	0xF0, 0x80, 0xF0, 0x80, 0x80,
}

// Memory is the flat address space of the interpreter. It holds the glyph
// sprites, the loaded program and the display bitmap.
type Memory [MemorySize]byte

// NewMemory returns zeroed memory with the glyph sprites installed.
func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()

	return m
}

// Reset zeroes memory and reinstalls the glyphs.
func (m *Memory) Reset() {
	*m = Memory{}

	copy(m[:], glyphs[:])
}

// Load copies a program image to ProgramStart. The image may not reach into
// the display bitmap.
func (m *Memory) Load(program []byte) error {
	if ProgramStart+len(program) > VideoStart {
		return &ErrProgramTooLarge{Size: len(program), Free: VideoStart - ProgramStart}
	}

	copy(m[ProgramStart:], program)

	return nil
}

// Read returns the byte at address. Addresses wrap at 12 bits.
func (m *Memory) Read(address uint16) byte {
	return m[address&(MemorySize-1)]
}

// Write stores b at address. Addresses wrap at 12 bits.
func (m *Memory) Write(address uint16, b byte) {
	m[address&(MemorySize-1)] = b
}

// Video returns the display bitmap: 32 rows of 8 bytes, MSB is the leftmost
// pixel of each byte.
func (m *Memory) Video() []byte {
	return m[VideoStart : VideoStart+VideoSize]
}

// ClearVideo turns every pixel off.
func (m *Memory) ClearVideo() {
	clear(m.Video())
}

// xor flips the bits of b at address and reports whether any of them were
// already set.
func (m *Memory) xor(address uint16, b byte) bool {
	a := address & (MemorySize - 1)
	old := m[a]

	// flip the pixels
	m[a] = old ^ b

	return old&b != 0
}

// GlyphAddress returns the address of the sprite for hex digit d.
func GlyphAddress(d byte) uint16 {
	return uint16(d) * GlyphSize
}
