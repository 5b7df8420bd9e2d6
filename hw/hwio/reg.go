package hwio

import (
	"fmt"

	"nestor/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg8 is a single byte-wide register, optionally backed by read/write
// callbacks bound through the "hwio" struct tag (see reflect.go).
type Reg8 struct {
	Name   string
	Value  uint8
	RoMask uint8 // bits preserved across writes regardless of the written value

	Flags   RWFlags
	ReadCb  func(val uint8, peek bool) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old uint8, val uint8)
}

func (reg Reg8) String() string {
	s := fmt.Sprintf("%s{%02x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg8) write(val uint8) {
	old := reg.Value
	reg.Value = (reg.Value & reg.RoMask) | (val &^ reg.RoMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write8 to readonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return
	}
	reg.write(val)
}

// Read8 satisfies BankIO8. peek reads must never trigger side effects, so
// they bypass ReadCb and return the raw stored value.
func (reg *Reg8) Read8(addr uint16, peek bool) uint8 {
	if reg.Flags&WriteOnlyFlag != 0 {
		if !peek {
			log.ModHwIo.ErrorZ("invalid Read8 from writeonly reg").
				String("name", reg.Name).
				Hex16("addr", addr).
				End()
		}
		return 0
	}
	if peek {
		if reg.PeekCb != nil {
			return reg.PeekCb(reg.Value)
		}
		return reg.Value
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value, false)
	}
	return reg.Value
}

func (reg *Reg8) Peek8(addr uint16) uint8 {
	return reg.Read8(addr, true)
}

// Bit helpers, so register fields can be poked the same way a raw uint8
// would be via the hwio/bitops.go free functions.

func (reg *Reg8) GetBit(n uint) bool    { return GetBit8(reg.Value, n) }
func (reg *Reg8) GetBiti(n uint) uint8  { return GetBiti8(reg.Value, n) }
func (reg *Reg8) SetBit(n uint)         { SetBit8(&reg.Value, n) }
func (reg *Reg8) ClearBit(n uint)       { ClearBit8(&reg.Value, n) }
func (reg *Reg8) FlipBit(n uint)        { FlipBit8(&reg.Value, n) }
func (reg *Reg8) ClearBits(mask uint8)  { ClearBits8(&reg.Value, mask) }
