package emu

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"nestor/emu/log"
	"nestor/ines"
	"nestor/tests"
)

var romPath = flag.String("rom", "", "ROM file to load for BenchmarkCPUSpeed")

func loadEmulator(b *testing.B, path string) *Emulator {
	b.Helper()
	log.DisableDebugModules(log.ModuleMaskAll)
	b.ReportAllocs()

	rom, err := ines.Open(path)
	if err != nil {
		b.Fatal(err)
	}

	nes, err := powerUp(rom)
	if err != nil {
		b.Fatal(err)
	}

	return &Emulator{NES: nes, rw: newRewind(RewindConfig{})}
}

func BenchmarkCPUSpeed(b *testing.B) {
	if *romPath == "" {
		b.Fatal("missing -rom flag")
	}

	e := loadEmulator(b, *romPath)

	const nframes = 300

	nloops := 0
	start := time.Now()

	for b.Loop() {
		for range nframes {
			e.NES.RunOneFrame()
		}
		nloops++
	}
	fps := float64(nframes*nloops) / time.Since(start).Seconds()
	b.ReportMetric(fps, "frames/s")
}

func BenchmarkSaveState(b *testing.B) {
	romPath := filepath.Join(tests.RomsPath(b), "spritecans-2011", "spritecans.nes")
	e := loadEmulator(b, romPath)
	e.NES.RunOneFrame()

	b.ResetTimer()
	for b.Loop() {
		_, _ = e.NES.SaveSnapshot()
	}
}
