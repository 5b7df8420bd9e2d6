// package ines implements a Reader for roms inz the iNES file format, used for
// for the distribution of NES binary programs.
package ines

import (
	"path/filepath"
	"testing"

	"nestor/hw/hwdefs"
)

func TestRomOpen(t *testing.T) {
	dir := filepath.Join("..", "testdata", "nes-test-roms", "instr_test-v5", "rom_singles")
	paths := []string{
		"01-basics.nes",
		"02-implied.nes",
		"03-immediate.nes",
		"04-zero_page.nes",
		"05-zp_xy.nes",
		"06-absolute.nes",
		"07-abs_xy.nes",
		"08-ind_x.nes",
		"09-ind_y.nes",
		"10-branches.nes",
		"11-stack.nes",
		"12-jmp_jsr.nes",
		"13-rts.nes",
		"14-rti.nes",
		"15-brk.nes",
		"16-special.nes",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rom, err := Open(filepath.Join(dir, path))
			if err != nil {
				t.Fatal(err)
			}
			t.Logf("%+v", rom)
		})
	}
}

func newHeader(b9, nes20byte7, b12 byte) *header {
	hdr := &header{}
	hdr.raw[9] = b9
	hdr.raw[7] = nes20byte7
	hdr.raw[12] = b12
	return hdr
}

func TestHeaderRegionINES1(t *testing.T) {
	if got := newHeader(0x00, 0x00, 0x00).Region(); got != hwdefs.NTSC {
		t.Errorf("Region() = %s, want NTSC", got)
	}
	if got := newHeader(0x01, 0x00, 0x00).Region(); got != hwdefs.PAL {
		t.Errorf("Region() = %s, want PAL", got)
	}
}

func TestHeaderRegionNES20(t *testing.T) {
	cases := []struct {
		b12  byte
		want hwdefs.Region
	}{
		{0x00, hwdefs.NTSC},
		{0x01, hwdefs.PAL},
		{0x02, hwdefs.NTSC}, // dual-compatible cart, treated as NTSC
		{0x03, hwdefs.Dendy},
	}
	for _, tc := range cases {
		hdr := newHeader(0x01 /* would mean PAL under iNES 1.0 */, 0x08, tc.b12)
		if got := hdr.Region(); got != tc.want {
			t.Errorf("Region() with NES2.0 byte12=%#02x = %s, want %s", tc.b12, got, tc.want)
		}
	}
}
