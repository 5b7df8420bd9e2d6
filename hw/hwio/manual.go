package hwio

// Manual hands an address range to read/write callbacks that need the raw
// address (rather than a Reg8's single-byte view or a Mem's linear buffer).
type Manual struct {
	Name string
	Size int

	ReadCb  func(addr uint16, peek bool) uint8
	WriteCb func(addr uint16, val uint8)
}

func (m *Manual) Read8(addr uint16, peek bool) uint8 {
	if m.ReadCb == nil {
		return 0
	}
	return m.ReadCb(addr, peek)
}

func (m *Manual) Peek8(addr uint16) uint8 {
	return m.Read8(addr, true)
}

func (m *Manual) Write8(addr uint16, val uint8) {
	if m.WriteCb != nil {
		m.WriteCb(addr, val)
	}
}
