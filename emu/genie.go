package emu

import (
	"fmt"

	"nestor/hw/hwio"
)

// genieAlphabet maps each Game Genie letter to the 4-bit value it encodes.
// The mapping is a fixed obfuscation table, not a cipher: it exists purely so
// codes read as pronounceable letters instead of raw hex.
var genieAlphabet = map[byte]uint8{
	'A': 0x0, 'P': 0x1, 'Z': 0x2, 'L': 0x3, 'G': 0x4, 'I': 0x5, 'T': 0x6,
	'Y': 0x7, 'E': 0x8, 'O': 0x9, 'X': 0xA, 'U': 0xB, 'K': 0xC, 'S': 0xD,
	'V': 0xE, 'N': 0xF,
}

// GenieCode is a decoded Game Genie code: writing data to addr should be
// observed instead of whatever the cartridge would otherwise return, and
// only when compare is nil or the cartridge's own value at addr equals it.
type GenieCode struct {
	Code    string
	Addr    uint16
	Data    uint8
	Compare *uint8
}

// ParseGenieCode decodes a 6- or 8-character Game Genie code.
func ParseGenieCode(code string) (GenieCode, error) {
	if len(code) != 6 && len(code) != 8 {
		return GenieCode{}, fmt.Errorf("invalid game genie code %q: must be 6 or 8 characters", code)
	}

	hex := make([]uint8, len(code))
	for i := range code {
		v, ok := genieAlphabet[code[i]]
		if !ok {
			return GenieCode{}, fmt.Errorf("invalid game genie code %q: unknown letter %q", code, code[i])
		}
		hex[i] = v
	}

	addr := 0x8000 |
		uint16(hex[3]&7)<<12 |
		uint16(hex[5]&7)<<8 |
		uint16(hex[4]&8)<<8 |
		uint16(hex[2]&7)<<4 |
		uint16(hex[1]&8)<<4 |
		uint16(hex[4]&7) |
		uint16(hex[3]&8)

	var data uint8
	if len(hex) == 6 {
		data = (hex[1]&7)<<4 | (hex[0]&8)<<4 | (hex[0] & 7) | (hex[5] & 8)
		return GenieCode{Code: code, Addr: addr, Data: data}, nil
	}

	data = (hex[1]&7)<<4 | (hex[0]&8)<<4 | (hex[0] & 7) | (hex[7] & 8)
	compare := (hex[7]&7)<<4 | (hex[6]&8)<<4 | (hex[6] & 7) | (hex[5] & 8)
	return GenieCode{Code: code, Addr: addr, Data: data, Compare: &compare}, nil
}

// ApplyGenieCodes patches nes's CPU bus so that reads of each code's target
// address return its replacement byte, subject to its compare byte, without
// disturbing writes or reads of every other address the mapper serves.
func ApplyGenieCodes(nes *NES, codes []GenieCode) error {
	for _, gc := range codes {
		orig := nes.CPU.Bus.Underlying(gc.Addr)
		if orig == nil {
			return fmt.Errorf("game genie code %q: nothing mapped at $%04X", gc.Code, gc.Addr)
		}

		nes.CPU.Bus.MapDevice(gc.Addr, &hwio.Device{
			Name: "GenieCode(" + gc.Code + ")",
			Size: 1,
			ReadCb: func(addr uint16) uint8 {
				v := orig.Read8(addr, false)
				if gc.Compare == nil || v == *gc.Compare {
					return gc.Data
				}
				return v
			},
			PeekCb: func(addr uint16) uint8 {
				v := orig.Read8(addr, true)
				if gc.Compare == nil || v == *gc.Compare {
					return gc.Data
				}
				return v
			},
			WriteCb: orig.Write8,
		})
	}
	return nil
}
