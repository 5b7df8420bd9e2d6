package hw

import (
	"image"
	"image/color"

	"nestor/emu/log"
	"nestor/hw/hwdefs"
	"nestor/hw/hwio"
	"nestor/hw/snapshot"
)

const (
	// NumScanlines is the NTSC scanline count. The PPU itself uses
	// numScanlines, which SetRegion sets from the region's timing.
	NumScanlines = 262
	NumCycles    = 341 // Number of PPU cycles per scanline.
)

const (
	// PPUCTRL bits
	// $2000

	// Nametable selection mask
	// (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
	ntselect = 0b11

	// VRAM address increment per CPU read/write of PPUDATA
	// (0: +1 i.e. horizontal; 1: +32 i.e. vertical)
	vramIncr = 2

	// Sprite pattern table address for 8x8 sprites
	// (0: $0000; 1: $1000; ignored in 8x16 mode)
	spriteAddr = 3

	// Background pattern table address (0: $0000; 1: $1000)
	backgroundAddr = 4

	// Sprite size (0: 8x8 pixels; 1: 8x16 pixels – see byte 1 of OAM)
	spriteSize = 5

	// PPU master/slave select
	// (0: read backdrop from EXT pins; 1: output color on EXT pins)
	ppuMasterSlave = 6

	// Generate an NMI at the start of the
	// vertical blanking interval (0: off; 1: on)
	nmi = 7
)

const (
	// PPUMASK bits
	// $2001

	// Greyscale
	// (0: normal color, 1: produce a greyscale display)
	greyscale = 0

	// Show background in leftmost 8 pixels of screen
	// 1: Show, 0: Hide
	leftmostBg = 1

	// Show sprites in leftmost 8 pixels of screen
	// 1: Show, 0: Hide
	leftmostSprites = 2

	// Show background
	showBg = 3

	// Show sprites
	showSprites = 4

	// Emphasize red
	highlightRed = 5

	// Emphasize green
	highlightGreen = 6

	// Emphasize blue
	highlightBlue = 7
)

const (
	// PPUSTATUS bits
	// $2002

	// Returns stale PPU bus contents.
	openbusMask = 0b11111

	// Sprite overflow. The intent was for this flag to be set
	// whenever more than eight sprites appear on a scanline, but a
	// hardware bug causes the actual behavior to be more complicated
	// and generate false positives as well as false negatives; see
	// PPU sprite evaluation. This flag is set during sprite
	// evaluation and cleared at dot 1 (the second dot) of the
	// pre-render line.
	spriteOverflow = 5

	// Sprite 0 Hit.  Set when a nonzero pixel of sprite 0 overlaps
	// a nonzero background pixel; cleared at dot 1 of the pre-render
	// line.  Used for raster timing.
	sprite0Hit = 6

	// Vertical blank has started (0: not in vblank; 1: in vblank).
	// Set at dot 1 of line 241 (the line *after* the post-render
	// line); cleared after reading $2002 and at dot 1 of the
	// pre-render line.
	vblank = 7
)

// nesPalette is the standard 64-entry NES master palette, converted from
// the FCEUX .pal reference table.
var nesPalette = [64]color.RGBA{
	{0x74, 0x74, 0x74, 0xFF}, {0x24, 0x18, 0x8c, 0xFF}, {0x00, 0x00, 0xa8, 0xFF}, {0x44, 0x00, 0x9c, 0xFF},
	{0x8c, 0x00, 0x74, 0xFF}, {0xa8, 0x00, 0x10, 0xFF}, {0xa4, 0x00, 0x00, 0xFF}, {0x7c, 0x08, 0x00, 0xFF},
	{0x40, 0x2c, 0x00, 0xFF}, {0x00, 0x44, 0x00, 0xFF}, {0x00, 0x50, 0x00, 0xFF}, {0x00, 0x3c, 0x14, 0xFF},
	{0x18, 0x3c, 0x5c, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xbc, 0xbc, 0xbc, 0xFF}, {0x00, 0x70, 0xec, 0xFF}, {0x20, 0x38, 0xec, 0xFF}, {0x80, 0x00, 0xf0, 0xFF},
	{0xbc, 0x00, 0xbc, 0xFF}, {0xe4, 0x00, 0x58, 0xFF}, {0xd8, 0x28, 0x00, 0xFF}, {0xc8, 0x4c, 0x0c, 0xFF},
	{0x88, 0x70, 0x00, 0xFF}, {0x00, 0x94, 0x00, 0xFF}, {0x00, 0xa8, 0x00, 0xFF}, {0x00, 0x90, 0x38, 0xFF},
	{0x00, 0x80, 0x88, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xfc, 0xfc, 0xfc, 0xFF}, {0x3c, 0xbc, 0xfc, 0xFF}, {0x5c, 0x94, 0xfc, 0xFF}, {0xcc, 0x88, 0xfc, 0xFF},
	{0xf4, 0x78, 0xfc, 0xFF}, {0xfc, 0x74, 0xb4, 0xFF}, {0xfc, 0x74, 0x60, 0xFF}, {0xfc, 0x98, 0x38, 0xFF},
	{0xf0, 0xbc, 0x3c, 0xFF}, {0x80, 0xd0, 0x10, 0xFF}, {0x4c, 0xdc, 0x48, 0xFF}, {0x58, 0xf8, 0x98, 0xFF},
	{0x00, 0xe8, 0xd8, 0xFF}, {0x78, 0x78, 0x78, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xfc, 0xfc, 0xfc, 0xFF}, {0xa8, 0xe4, 0xfc, 0xFF}, {0xc4, 0xd4, 0xfc, 0xFF}, {0xd4, 0xc8, 0xfc, 0xFF},
	{0xfc, 0xc4, 0xfc, 0xFF}, {0xfc, 0xc4, 0xd8, 0xFF}, {0xfc, 0xbc, 0xb0, 0xFF}, {0xfc, 0xd8, 0xa8, 0xFF},
	{0xfc, 0xe4, 0xa0, 0xFF}, {0xe0, 0xfc, 0xa0, 0xFF}, {0xa8, 0xf0, 0xbc, 0xFF}, {0xb0, 0xfc, 0xcc, 0xFF},
	{0x9c, 0xfc, 0xf0, 0xFF}, {0xc4, 0xc4, 0xc4, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
}

// ppuBgRegs holds the internal scroll/fetch state used by the background
// rendering pipeline (loopy's v/t/x, plus the fetch latches and shift
// registers).
type ppuBgRegs struct {
	addrLatch uint16
	finex     uint8

	nt    uint8
	at    uint8
	bgLo  uint8
	bgHi  uint8

	bgShiftLo uint16
	bgShiftHi uint16
	atShiftLo uint8
	atShiftHi uint8
	atLatchLo bool
	atLatchHi bool
}

type PPU struct {
	Bus *hwio.Table // PPU bus
	CPU *CPU

	Cycle    int // Current cycle/pixel in scanline
	Scanline int // Current scanline being drawn

	masterClock uint64
	FrameCount  uint32
	oddFrame    bool

	region        hwdefs.Region
	ppuDivider    uint64
	numScanlines  int
	dendyDotCount int // dots since the last Dendy 15/88 clock-skip correction

	//	$0000-$0FFF	$1000	Pattern table 0
	//	$1000-$1FFF	$1000	Pattern table 1
	PatternTables hwio.Mem `hwio:"offset=0x0000,size=0x2000,wcb"`

	// Nametables holds the console's 2KB of internal VRAM (CIRAM). The
	// cartridge mapper decides how this backing store is mirrored into the
	// $2000-$3EFF range (see mappers.base.setNTMirroring), so it isn't
	// mapped onto the bus here.
	Nametables [0x800]byte

	// $3F00-$3F1F	$0020	Palette RAM indexes
	// $3F20-$3FFF	$00E0	Mirrors of $3F00-$3F1F
	Palettes hwio.Mem `hwio:"offset=0x3F00,size=0x20,vsize=0x100,wcb"`

	// CPU-exposed memory-mapped PPU registers
	// mapped from $2000 to $2007, mirrored up to $3fff
	PPUCTRL   hwio.Reg8 `hwio:"bank=1,offset=0x0,writeonly,wcb"`
	PPUMASK   hwio.Reg8 `hwio:"bank=1,offset=0x1,writeonly,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"bank=1,offset=0x2,readonly,rcb"`
	OAMADDR   hwio.Reg8 `hwio:"bank=1,offset=0x3,writeonly,wcb"`
	OAMDATA   hwio.Reg8 `hwio:"bank=1,offset=0x4,rcb,wcb"`
	PPUSCROLL hwio.Reg8 `hwio:"bank=1,offset=0x5,writeonly,wcb"`
	PPUADDR   hwio.Reg8 `hwio:"bank=1,offset=0x6,writeonly,wcb"`
	PPUDATA   hwio.Reg8 `hwio:"bank=1,offset=0x7,rcb,wcb,"`

	screen image.RGBA

	// VRAM read/write
	vramAddr    uint16
	vramTmp     uint16
	writeLatch  bool
	ppuDataRbuf uint8

	// Background pipeline
	bg ppuBgRegs

	// Sprites (OAM)
	oamMem [0x100]uint8
	oam    [8]spriteInfo
	oam2   [8]spriteInfo
}

type spriteInfo struct {
	id    uint8
	x     uint8
	y     uint8
	tile  uint8
	attr  uint8
	dataL uint8
	dataH uint8
}

func NewPPU() *PPU {
	p := &PPU{
		Bus: hwio.NewTable("ppu"),
	}
	p.screen = *image.NewRGBA(image.Rect(0, 0, 256, 240))
	p.SetRegion(hwdefs.NTSC)
	return p
}

// SetRegion switches the PPU's clock divider and per-frame scanline count
// to match r. Must be called before Reset.
func (p *PPU) SetRegion(r hwdefs.Region) {
	p.region = r
	t := r.Timing()
	p.ppuDivider = t.PPUDivider
	p.numScanlines = t.Scanlines
	p.dendyDotCount = 0
}

func (p *PPU) Output() *image.RGBA {
	return &p.screen
}

func (p *PPU) InitBus() {
	hwio.MustInitRegs(p)
	p.Bus.MapBank(0x0000, p, 0)
}

func (p *PPU) Reset() {
	p.Scanline = 0
	p.Cycle = 0
	p.masterClock = 0
	p.writeLatch = false
	p.vramAddr = 0
	p.vramTmp = 0
	p.bg = ppuBgRegs{}
	p.oddFrame = false
	p.FrameCount = 0
}

// Run advances the PPU to keep pace with the given CPU master clock value.
func (p *PPU) Run(masterClock uint64) {
	for p.masterClock+p.ppuDivider <= masterClock {
		p.masterClock += p.ppuDivider
		if p.region == hwdefs.Dendy {
			p.dendyDotCount++
			if p.dendyDotCount == 88 {
				p.dendyDotCount = 0
				// Dendy's 15-master-clocks-per-CPU-cycle divider doesn't
				// divide the console's actual oscillator evenly; burn one
				// extra master-clock tick here to keep the PPU dot clock
				// from drifting against it over time.
				p.masterClock++
			}
		}
		p.tick()
	}
}

type scanlineMode int

const (
	preRender scanlineMode = iota
	renderMode
	postRender
	vblankNMI
)

func (p *PPU) tick() {
	switch {
	case p.Scanline < 240:
		p.doScanline(renderMode)
	case p.Scanline == 240:
		p.doScanline(postRender)
	case p.Scanline == 241 && p.region != hwdefs.Dendy,
		p.Scanline == 291 && p.region == hwdefs.Dendy:
		p.doScanline(vblankNMI)
	case p.Scanline == p.numScanlines-1:
		p.doScanline(preRender)
	}
	p.Cycle++
	if p.Cycle >= NumCycles {
		p.Cycle -= NumCycles
		p.Scanline++
		if p.Scanline >= p.numScanlines {
			p.Scanline = 0
			p.oddFrame = !p.oddFrame
			p.FrameCount++
		}
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK.GetBit(showBg) || p.PPUMASK.GetBit(showSprites)
}

func (p *PPU) doScanline(sm scanlineMode) {
	switch sm {
	case preRender:
		if p.Cycle == 1 {
			// Clear vblank, sprite0Hit and spriteOverflow
			const mask = 1<<vblank | 1<<sprite0Hit | 1<<spriteOverflow
			p.PPUSTATUS.ClearBits(mask)
		}
		if p.renderingEnabled() {
			p.updateShiftersOrFetch()
			if p.Cycle >= 280 && p.Cycle <= 304 {
				// Repeatedly reload vertical bits of v from t.
				p.vramAddr &^= 0b0111_1011_1110_0000
				p.vramAddr |= p.vramTmp & 0b0111_1011_1110_0000
			}
		}
		// Odd frame cycle skip: NTSC PPUs skip the idle cycle on odd frames
		// when rendering is enabled.
		if p.Cycle == 339 && p.oddFrame && p.region == hwdefs.NTSC && p.renderingEnabled() {
			p.Cycle++
		}

	case renderMode:
		switch {
		case p.Cycle == 0:
			// Idle cycle.
		case p.Cycle >= 1 && p.Cycle <= 256:
			if p.renderingEnabled() {
				p.updateShiftersOrFetch()
				p.renderPixel()
				if p.Cycle == 256 {
					p.incrementY()
				}
			}
		case p.Cycle == 257:
			if p.renderingEnabled() {
				// Reload horizontal bits of v from t.
				p.vramAddr &^= 0b0000_0100_0001_1111
				p.vramAddr |= p.vramTmp & 0b0000_0100_0001_1111
				p.evaluateSprites()
			}
		case p.Cycle > 257 && p.Cycle <= 320:
			// Sprite pattern fetches (not cycle-accurate here).
		case p.Cycle > 320 && p.Cycle <= 336:
			if p.renderingEnabled() {
				p.updateShiftersOrFetch()
			}
		case p.Cycle > 336 && p.Cycle <= 340:
			// Unused nametable fetches.
		}

	case postRender:
		// Nothing happens on the post-render scanline.

	case vblankNMI:
		if p.Cycle == 1 {
			p.PPUSTATUS.SetBit(vblank)
			if p.PPUCTRL.GetBit(nmi) {
				p.CPU.setNMIflag()
			}
		}
	}
}

// updateShiftersOrFetch runs the background fetch pipeline: every 8 cycles
// it fetches nametable byte, attribute byte, and the low/high pattern
// bytes, then shifts the fetched tile into the shift registers.
func (p *PPU) updateShiftersOrFetch() {
	p.bg.bgShiftLo <<= 1
	p.bg.bgShiftHi <<= 1
	p.bg.atShiftLo = p.bg.atShiftLo<<1 | b2u8(p.bg.atLatchLo)
	p.bg.atShiftHi = p.bg.atShiftHi<<1 | b2u8(p.bg.atLatchHi)

	switch p.Cycle % 8 {
	case 1:
		p.loadBgShifters()
		p.bg.nt = p.Bus.Read8(0x2000|(p.vramAddr&0x0FFF), false)
	case 3:
		attrAddr := 0x23C0 | (p.vramAddr & 0x0C00) | ((p.vramAddr >> 4) & 0x38) | ((p.vramAddr >> 2) & 0x07)
		at := p.Bus.Read8(attrAddr, false)
		if (p.vramAddr>>4)&0x04 != 0 {
			at >>= 4
		}
		if (p.vramAddr>>1)&0x02 != 0 && (p.vramAddr&0x02) == 0 {
			// coarse x bit 1 selects right half of the 4x4 attribute cell
		}
		if p.vramAddr&0x02 != 0 {
			at >>= 2
		}
		p.bg.at = at & 0x03
	case 5:
		table := uint16(0)
		if p.PPUCTRL.GetBit(backgroundAddr) {
			table = 0x1000
		}
		fineY := (p.vramAddr >> 12) & 0x07
		p.bg.bgLo = p.Bus.Read8(table+uint16(p.bg.nt)*16+fineY, false)
	case 7:
		table := uint16(0)
		if p.PPUCTRL.GetBit(backgroundAddr) {
			table = 0x1000
		}
		fineY := (p.vramAddr >> 12) & 0x07
		p.bg.bgHi = p.Bus.Read8(table+uint16(p.bg.nt)*16+fineY+8, false)
	case 0:
		p.incrementX()
	}
}

func (p *PPU) loadBgShifters() {
	p.bg.bgShiftLo = (p.bg.bgShiftLo & 0xFF00) | uint16(p.bg.bgLo)
	p.bg.bgShiftHi = (p.bg.bgShiftHi & 0xFF00) | uint16(p.bg.bgHi)
	p.bg.atLatchLo = p.bg.at&0x01 != 0
	p.bg.atLatchHi = p.bg.at&0x02 != 0
}

func (p *PPU) incrementX() {
	if p.vramAddr&0x001F == 31 {
		p.vramAddr &^= 0x001F
		p.vramAddr ^= 0x0400
	} else {
		p.vramAddr++
	}
}

func (p *PPU) incrementY() {
	if p.vramAddr&0x7000 != 0x7000 {
		p.vramAddr += 0x1000
	} else {
		p.vramAddr &^= 0x7000
		y := (p.vramAddr & 0x03E0) >> 5
		if y == 29 {
			y = 0
			p.vramAddr ^= 0x0800
		} else if y == 31 {
			y = 0
		} else {
			y++
		}
		p.vramAddr = (p.vramAddr &^ 0x03E0) | (y << 5)
	}
}

func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}

	bit := uint16(0x8000) >> p.bg.finex
	lo := b2u8(p.bg.bgShiftLo&bit != 0)
	hi := b2u8(p.bg.bgShiftHi&bit != 0)
	pixel := lo | hi<<1

	abit := uint8(0x80) >> p.bg.finex
	alo := b2u8(p.bg.atShiftLo&abit != 0)
	ahi := b2u8(p.bg.atShiftHi&abit != 0)
	palette := alo | ahi<<1

	showLeft := x >= 8 || p.PPUMASK.GetBit(leftmostBg)
	var colorIdx uint8
	if p.PPUMASK.GetBit(showBg) && showLeft && pixel != 0 {
		colorIdx = p.Bus.Read8(0x3F00+uint16(palette)*4+uint16(pixel), false)
	} else {
		colorIdx = p.Bus.Read8(0x3F00, false)
	}

	p.screen.SetRGBA(x, y, nesPalette[colorIdx&0x3F])
}

// evaluateSprites picks up to 8 sprites for the next scanline. Sprite
// rendering itself is not composited into the frame buffer yet.
func (p *PPU) evaluateSprites() {
	p.oam2 = [8]spriteInfo{}

	height := 8
	if p.PPUCTRL.GetBit(spriteSize) {
		height = 16
	}

	count := 0
	for i := 0; i < 64 && count < 8; i++ {
		y := p.oamMem[i*4]
		row := p.Scanline - int(y)
		if row < 0 || row >= height {
			continue
		}
		p.oam2[count] = spriteInfo{
			id:   uint8(i),
			y:    y,
			tile: p.oamMem[i*4+1],
			attr: p.oamMem[i*4+2],
			x:    p.oamMem[i*4+3],
		}
		count++
	}
	if count == 8 {
		p.PPUSTATUS.SetBit(spriteOverflow)
	}
}

func (p *PPU) WritePATTERNTABLES(addr uint16, val uint8) {
	log.ModPPU.DebugZ("Write to PATTERNTABLES").
		Hex8("val", val).
		Hex16("addr", addr).
		End()
}

func (p *PPU) WritePALETTES(addr uint16, val uint8) {
	memaddr := addr & 0x01F
	log.ModPPU.DebugZ("Write to PALETTES").
		Hex8("val", val).
		Hex16("addr", addr).
		End()
}

// PPUCTRL: $2000
func (p *PPU) WritePPUCTRL(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUCTRL").Hex8("val", val).End()

	nmiOnVblank := p.PPUCTRL.GetBit(nmi)

	// By toggling the nmi bit (bit 7 of PPUCTRL) during vblank without reading
	// PPUSTATUS, a program can cause /nmi to be pulled low multiple times,
	// causing multiple NMIs to be generated.
	if !nmiOnVblank {
		p.CPU.clearNMIflag()
	} else if p.PPUSTATUS.GetBit(vblank) {
		p.CPU.setNMIflag()
	}

	// Transfer the nametable bits.
	p.vramTmp &^= ntselect << 10
	p.vramTmp |= (uint16(val) & ntselect) << 10

	p.PPUCTRL.Value = val
}

// PPUMASK: $2001
func (p *PPU) WritePPUMASK(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUMASK").Hex8("val", val).End()
}

// PPUSTATUS: $2002
func (ppu *PPU) ReadPPUSTATUS(val uint8, peek bool) uint8 {
	if peek {
		return ppu.PPUSTATUS.GetBiti(spriteOverflow)<<spriteOverflow |
			ppu.PPUSTATUS.GetBiti(sprite0Hit)<<sprite0Hit |
			ppu.PPUSTATUS.GetBiti(vblank)<<vblank
	}
	ppu.writeLatch = false
	ret := ppu.PPUSTATUS.GetBiti(spriteOverflow)<<spriteOverflow |
		ppu.PPUSTATUS.GetBiti(sprite0Hit)<<sprite0Hit |
		ppu.PPUSTATUS.GetBiti(vblank)<<vblank

	ppu.PPUSTATUS.ClearBit(vblank)
	ppu.CPU.clearNMIflag()
	// TODO: emulate open bus?
	return ret
}

// OAMADDR: $2003
func (p *PPU) WriteOAMADDR(old, val uint8) {
	p.OAMADDR.Value = val
}

// OAMDATA: $2004
func (p *PPU) ReadOAMDATA(_ uint8, peek bool) uint8 {
	return p.oamMem[p.OAMADDR.Value]
}

func (p *PPU) WriteOAMDATA(old, val uint8) {
	p.oamMem[p.OAMADDR.Value] = val
	p.OAMADDR.Value++
}

// PPUSCROLL: $2005
func (p *PPU) WritePPUSCROLL(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUSCROLL").Hex8("val", val).End()

	if !p.writeLatch { // first write
		p.bg.finex = val & 0b111
		p.vramTmp &^= 0b1_1111
		p.vramTmp |= uint16(val >> 3)
	} else { // second write
		p.vramTmp &^= 0b0111_0011_1110_0000
		p.vramTmp |= uint16(val&0b111) << 12
		p.vramTmp |= uint16(val&0b1111_1000) << 2
	}

	p.writeLatch = !p.writeLatch
}

// To read/write VRAM from CPU, PPUADDR is set to the address of the operation.
// It's a 16-bit register so 2 writes are necessary.
// PPUADDR: $2006
func (p *PPU) WritePPUADDR(old, val uint8) {
	if !p.writeLatch { //first write
		p.vramTmp &^= 0b11_1111_0000_0000
		p.vramTmp |= uint16(val&0b11_1111) << 8
		p.vramTmp &^= 1 << 14 // clear z bit
	} else { // second write
		p.vramTmp &^= 0xff
		p.vramTmp |= uint16(val)
		p.vramAddr = p.vramTmp
	}

	p.writeLatch = !p.writeLatch
}

// PPUDATA: $2007
func (p *PPU) ReadPPUDATA(_ uint8, peek bool) uint8 {
	var val uint8
	switch {
	case p.vramAddr < 0x3F00:
		// Reading VRAM is too slow so the actual data
		// will be returned at the next read.
		data := p.ppuDataRbuf
		p.ppuDataRbuf = p.Bus.Read8(p.vramAddr, false)
		val = data
	default: // $3F00-3FFF
		// Reading palette data is immediate.
		val = p.Bus.Read8(p.vramAddr, false)
		// Still it overwrites the read buffer.
		p.ppuDataRbuf = val
	}

	p.incVRAMaddr()
	log.ModPPU.DebugZ("VRAM read").
		Hex16("addr", p.vramAddr).
		Hex8("val", val).
		End()
	return val
}

// PPUDATA: $2007
func (p *PPU) WritePPUDATA(old, val uint8) {
	// Mirror down address (only $000-$3fff range is valid).
	p.vramAddr &= 0x3fff
	p.Bus.Write8(p.vramAddr, val)
	p.incVRAMaddr()

	log.ModPPU.DebugZ("VRAM write").
		Hex16("addr", p.vramAddr).
		Hex8("val", val).
		End()
}

// After each i/o on PPUDATA, PPUADDR is incremented.
func (p *PPU) incVRAMaddr() {
	if p.renderingEnabled() && (p.Scanline < 240 || p.Scanline == p.numScanlines-1) {
		// During rendering, PPUDATA accesses increment the coarse
		// scroll bits instead of behaving like a plain VRAM pointer.
		p.incrementX()
		p.incrementY()
		return
	}

	incr := uint16(1)
	if p.PPUCTRL.GetBit(vramIncr) {
		incr = 32
	}
	p.vramAddr = (p.vramAddr + incr) & 0x7fff
}

func (p *PPU) SaveState(state *snapshot.PPU) {
	copy(state.Palette[:], p.Palettes.Data)
	state.OAMMem = p.oamMem
	state.Nametables = p.Nametables

	for i, s := range p.oam {
		state.OAM[i] = snapshot.Sprite{ID: s.id, X: s.x, Y: s.y, Tile: s.tile, Attr: s.attr, DataL: s.dataL, DataH: s.dataH}
	}
	for i, s := range p.oam2 {
		state.OAM2[i] = snapshot.Sprite{ID: s.id, X: s.x, Y: s.y, Tile: s.tile, Attr: s.attr, DataL: s.dataL, DataH: s.dataH}
	}

	state.BusAddr = p.vramAddr
	state.OAMAddr = p.OAMADDR.Value
	state.VRAMAddr = p.vramAddr
	state.VRAMTemp = p.vramTmp
	state.WriteLatch = p.writeLatch
	state.PPUDataBuf = p.ppuDataRbuf

	state.PPUBgRegs = snapshot.PPUBgRegs{
		AddrLatch: p.bg.addrLatch,
		Finex:     p.bg.finex,
		NT:        p.bg.nt,
		AT:        p.bg.at,
		BgLo:      p.bg.bgLo,
		BgHi:      p.bg.bgHi,
		BgShiftLo: p.bg.bgShiftLo,
		BgShiftHi: p.bg.bgShiftHi,
		ATShiftLo: p.bg.atShiftLo,
		ATShiftHi: p.bg.atShiftHi,
		ATLatchLo: p.bg.atLatchLo,
		ATLatchHi: p.bg.atLatchHi,
	}

	state.PPUCTRL = p.PPUCTRL.Value
	state.PPUMASK = p.PPUMASK.Value
	state.PPUSTATUS = p.PPUSTATUS.Value

	state.MasterClock = p.masterClock
	state.Cycle = uint32(p.Cycle)
	state.Scanline = p.Scanline
	state.FrameCount = p.FrameCount
	state.OddFrame = p.oddFrame
}

func (p *PPU) SetState(state *snapshot.PPU) {
	copy(p.Palettes.Data, state.Palette[:])
	p.oamMem = state.OAMMem
	p.Nametables = state.Nametables

	for i, s := range state.OAM {
		p.oam[i] = spriteInfo{id: s.ID, x: s.X, y: s.Y, tile: s.Tile, attr: s.Attr, dataL: s.DataL, dataH: s.DataH}
	}
	for i, s := range state.OAM2 {
		p.oam2[i] = spriteInfo{id: s.ID, x: s.X, y: s.Y, tile: s.Tile, attr: s.Attr, dataL: s.DataL, dataH: s.DataH}
	}

	p.OAMADDR.Value = state.OAMAddr
	p.vramAddr = state.VRAMAddr
	p.vramTmp = state.VRAMTemp
	p.writeLatch = state.WriteLatch
	p.ppuDataRbuf = state.PPUDataBuf

	p.bg = ppuBgRegs{
		addrLatch: state.PPUBgRegs.AddrLatch,
		finex:     state.PPUBgRegs.Finex,
		nt:        state.PPUBgRegs.NT,
		at:        state.PPUBgRegs.AT,
		bgLo:      state.PPUBgRegs.BgLo,
		bgHi:      state.PPUBgRegs.BgHi,
		bgShiftLo: state.PPUBgRegs.BgShiftLo,
		bgShiftHi: state.PPUBgRegs.BgShiftHi,
		atShiftLo: state.PPUBgRegs.ATShiftLo,
		atShiftHi: state.PPUBgRegs.ATShiftHi,
		atLatchLo: state.PPUBgRegs.ATLatchLo,
		atLatchHi: state.PPUBgRegs.ATLatchHi,
	}

	p.PPUCTRL.Value = state.PPUCTRL
	p.PPUMASK.Value = state.PPUMASK
	p.PPUSTATUS.Value = state.PPUSTATUS

	p.masterClock = state.MasterClock
	p.Cycle = int(state.Cycle)
	p.Scanline = state.Scanline
	p.FrameCount = state.FrameCount
	p.oddFrame = state.OddFrame
}
