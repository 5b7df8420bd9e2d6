package mappers

import (
	"fmt"

	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

type base struct {
	desc MapperDesc

	rom *ines.Rom
	cpu *hw.CPU
	ppu *hw.PPU

	hasBusConflicts bool

	// Bank-switched PRG ROM window at $8000-$FFFF, used by mappers that swap
	// banks via base.init/selectPRGPage* instead of owning their own device
	// (UxROM, MMC1, AxROM).
	prgDevice hwio.Device
	writePRG  func(addr uint16, val uint8)
	prgOffset [2]uint32 // byte offset into rom.PRGROM for $8000-$BFFF / $C000-$FFFF
}

func ispow2(n int) bool {
	return n&(n-1) == 0
}

func u8tob(v uint8) bool { return v != 0 }

func newbase(desc MapperDesc, rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) (*base, error) {
	if !ispow2(len(rom.PRGROM)) {
		return nil, fmt.Errorf("only support PRGROM with power of 2 size, got %d", len(rom.PRGROM))
	}

	b := &base{desc: desc, rom: rom, cpu: cpu, ppu: ppu}
	if desc.HasBusConflicts != nil {
		b.hasBusConflicts = desc.HasBusConflicts(b)
	}
	return b, nil
}

func (b *base) load() error {
	return b.desc.Load(b)
}

// init wires a bank-switched $8000-$FFFF PRG ROM window to the CPU bus.
// Writes into the window are forwarded to writePRG, which mappers use to
// decode their bank-select registers and call selectPRGPage*/selectCHRROM*
// in response.
func (b *base) init(writePRG func(addr uint16, val uint8)) {
	b.writePRG = writePRG
	b.prgDevice = hwio.Device{
		Name:    "PRGROM",
		Size:    0x8000,
		ReadCb:  b.readPRGROM,
		PeekCb:  b.readPRGROM,
		WriteCb: writePRG,
	}
	b.cpu.Bus.MapDevice(0x8000, &b.prgDevice)
}

func (b *base) readPRGROM(addr uint16) uint8 {
	off := addr - 0x8000
	slot := 0
	if off >= 0x4000 {
		slot = 1
		off -= 0x4000
	}
	return b.rom.PRGROM[b.prgOffset[slot]+uint32(off)]
}

// resolvePage converts a (possibly negative, counting from the last page)
// page index into a byte offset within data, given a fixed page size.
func resolvePage(data []byte, page int, pageSize uint32) uint32 {
	total := int(uint32(len(data)) / pageSize)
	if page < 0 {
		page += total
	}
	return uint32(page) * pageSize
}

func (b *base) selectPRGPage16KB(slot int, page int) {
	b.prgOffset[slot] = resolvePage(b.rom.PRGROM, page, 0x4000)
}

func (b *base) selectPRGPage32KB(page int) {
	off := resolvePage(b.rom.PRGROM, page, 0x8000)
	b.prgOffset[0] = off
	b.prgOffset[1] = off + 0x4000
}

// copyCHRROM copies an 8KB CHRROM bank into dst, a mapper-owned pattern table
// buffer (used by mappers such as CNROM that expose their own PatternTables
// memory rather than writing directly into the PPU's).
func (b *base) copyCHRROM(dst []byte, bank uint32) {
	start := bank * 0x2000
	end := start + 0x2000
	copy(dst, b.rom.CHRROM[start:end])
}

func copyCHRROM(ppu *hw.PPU, rom *ines.Rom, bank uint32) {
	// Copy CHRROM bank to PPU memory.
	// CHRROM is 8KB in size
	start := bank * 0x2000
	end := start + 0x2000
	copy(ppu.PatternTables.Data, rom.CHRROM[start:end])
}

// selectCHRROMPage8KB maps an 8KB CHRROM bank into the PPU's pattern tables.
// Cartridges with CHR RAM (empty CHRROM) leave the existing RAM untouched.
func (b *base) selectCHRROMPage8KB(page int) {
	if len(b.rom.CHRROM) == 0 {
		return
	}
	off := resolvePage(b.rom.CHRROM, page, 0x2000)
	copy(b.ppu.PatternTables.Data, b.rom.CHRROM[off:off+0x2000])
}

// selectCHRROMPage4KB maps a 4KB CHRROM bank into either half of the PPU's
// pattern tables (slot 0 = $0000-$0FFF, slot 1 = $1000-$1FFF).
func (b *base) selectCHRROMPage4KB(slot int, page int) {
	if len(b.rom.CHRROM) == 0 {
		return
	}
	off := resolvePage(b.rom.CHRROM, page, 0x1000)
	dst := b.ppu.PatternTables.Data[slot*0x1000 : slot*0x1000+0x1000]
	copy(dst, b.rom.CHRROM[off:off+0x1000])
}

func (b *base) setNTMirroring(m ines.NTMirroring) {
	// Unmap all nametables
	b.ppu.Bus.Unmap(0x2000, 0x3EFF)

	A := b.ppu.Nametables[:0x400]
	B := b.ppu.Nametables[0x400:0x800]

	var nt1, nt2, nt3, nt4 []byte

	switch m {
	case ines.HorzMirroring:
		nt1, nt2 = A, A
		nt3, nt4 = B, B
	case ines.VertMirroring:
		nt1, nt2 = A, B
		nt3, nt4 = A, B
	case ines.OnlyAScreen:
		nt1, nt2 = A, A
		nt3, nt4 = A, A
	case ines.OnlyBScreen:
		nt1, nt2 = B, B
		nt3, nt4 = B, B
	case ines.FourScreen:
		// No cartridge-side extra CIRAM is emulated; approximate with the two
		// banks we do have rather than refusing to load the cartridge.
		nt1, nt2 = A, B
		nt3, nt4 = A, B
	default:
		panic(fmt.Sprintf("unsupported mirroring %d", m))
	}

	// Map nametables
	b.ppu.Bus.MapMemorySlice(0x2000, 0x23FF, nt1, false)
	b.ppu.Bus.MapMemorySlice(0x2400, 0x27FF, nt2, false)
	b.ppu.Bus.MapMemorySlice(0x2800, 0x2BFF, nt3, false)
	b.ppu.Bus.MapMemorySlice(0x2C00, 0x2FFF, nt4, false)

	// Mirrors
	b.ppu.Bus.MapMemorySlice(0x3000, 0x33FF, nt1, false)
	b.ppu.Bus.MapMemorySlice(0x3400, 0x37FF, nt2, false)
	b.ppu.Bus.MapMemorySlice(0x3800, 0x3BFF, nt3, false)
	b.ppu.Bus.MapMemorySlice(0x3C00, 0x3EFF, nt4, false)
}
