package emu

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nestor/ines"
)

// nromImage builds a minimal but valid iNES image for mapper 0 (NROM) with
// one 16KB PRG bank and one 8KB CHR bank, all zeroed.
func nromImage() []byte {
	header := make([]byte, 16)
	copy(header, ines.Magic)
	header[4] = 1 // 16KB PRG bank
	header[5] = 1 // 8KB CHR bank
	buf := make([]byte, 0, len(header)+16384+8192)
	buf = append(buf, header...)
	buf = append(buf, make([]byte, 16384)...)
	buf = append(buf, make([]byte, 8192)...)
	return buf
}

func newTestNES(t *testing.T) *NES {
	t.Helper()
	rom := new(ines.Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(nromImage())); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	nes, err := powerUp(rom)
	if err != nil {
		t.Fatalf("powerUp: %v", err)
	}
	return nes
}

type cpuRegs struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
	Cycles      int64
}

func captureRegs(nes *NES) cpuRegs {
	return cpuRegs{
		A:      nes.CPU.A,
		X:      nes.CPU.X,
		Y:      nes.CPU.Y,
		SP:     nes.CPU.SP,
		PC:     nes.CPU.PC,
		P:      uint8(nes.CPU.P),
		Cycles: nes.CPU.Cycles,
	}
}

// TestSnapshotRoundTrip runs the machine forward, snapshots it, mutates its
// visible registers, then restores the snapshot and checks that the restored
// state matches the one that was saved rather than the mutated one.
func TestSnapshotRoundTrip(t *testing.T) {
	nes := newTestNES(t)
	for range 3 {
		nes.RunOneFrame()
	}

	want := captureRegs(nes)

	buf, err := nes.SaveSnapshot()
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// Perturb visible CPU state so a no-op restore would be caught.
	nes.CPU.A ^= 0xFF
	nes.CPU.PC += 1234
	nes.CPU.Cycles += 999

	if err := nes.LoadSnapshot(buf); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	got := captureRegs(nes)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CPU state after snapshot round-trip mismatch (-want +got):\n%s", diff)
	}
}
