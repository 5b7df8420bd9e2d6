package emu

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"nestor/hw"
	"nestor/hw/hwdefs"
	"nestor/hw/mappers"
	"nestor/hw/snapshot"
	"nestor/ines"
)

// snapshotVersion is bumped whenever the layout of snapshot.NES changes in a
// way that would make older save states unreadable.
const snapshotVersion = 1

type NES struct {
	CPU    *hw.CPU
	PPU    *hw.PPU
	APU    *hw.APU
	Rom    *ines.Rom
	Mixer  *hw.AudioMixer
	Region hwdefs.Region

	// Zapper is always wired onto controller port 2 alongside the standard
	// pad; its bits are ORed into every $4017 read. Until Aim is called it
	// points off-screen, so reads show the trigger released and bit 4 (no
	// light) set.
	Zapper *hw.Zapper

	// isRunAheadFrame marks a frame that is run purely to peek ahead at
	// future input latency and then rolled back; the audio/video output
	// produced during it must never reach the player.
	isRunAheadFrame bool
}

func powerUp(rom *ines.Rom) (*NES, error) {
	region := rom.Region()

	audioMixer := hw.NewAudioMixer()
	ppu := hw.NewPPU()
	cpu := hw.NewCPU(ppu)
	apu := hw.NewAPU(cpu, audioMixer)

	cpu.SetRegion(region)

	ppu.InitBus()
	cpu.APU = apu
	cpu.InitBus()

	if err := mappers.Load(rom, cpu, ppu); err != nil {
		return nil, err
	}

	zapper := hw.NewZapper(ppu)
	cpu.PlugZapper(zapper)

	nes := &NES{
		CPU:    cpu,
		PPU:    ppu,
		APU:    apu,
		Rom:    rom,
		Mixer:  audioMixer,
		Region: region,
		Zapper: zapper,
	}
	nes.Reset(hwdefs.HardReset)
	return nes, nil
}

func (nes *NES) Reset(soft bool) {
	nes.PPU.Reset()
	nes.APU.Reset(soft)
	nes.CPU.Reset(soft)
	nes.Mixer.Reset()
}

// RunOneFrame clocks the machine for exactly one video frame at nes.Region's
// timing. The rendered picture is left in nes.PPU's own frame buffer,
// retrievable through nes.PPU.Output(); audio samples are queued to the SDL
// audio device by nes.Mixer at each APU frame end.
func (nes *NES) RunOneFrame() {
	nes.CPU.Run(nes.Region.CPUCyclesPerFrame())
	nes.APU.EndFrame()
}

// SaveSnapshot serializes the entire machine state (CPU, PPU, APU, DMA and
// work RAM) into a byte slice suitable for LoadSnapshot, either to persist a
// save state to disk or, during run-ahead, to roll back a speculatively-run
// frame.
func (nes *NES) SaveSnapshot() ([]byte, error) {
	var state snapshot.NES
	state.Version = snapshotVersion

	state.CPU = &snapshot.CPU{}
	nes.CPU.SaveState(state.CPU)

	copy(state.RAM[:], nes.CPU.RAM.Data)

	state.DMA = &snapshot.DMA{}
	nes.CPU.PPUDMA.SaveState(state.DMA)

	state.PPU = &snapshot.PPU{}
	nes.PPU.SaveState(state.PPU)

	state.APU = &snapshot.APU{}
	nes.APU.SaveState(state.APU)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadSnapshot restores machine state previously produced by SaveSnapshot.
func (nes *NES) LoadSnapshot(data []byte) error {
	var state snapshot.NES
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if state.Version != snapshotVersion {
		return fmt.Errorf("incompatible snapshot version %d, want %d", state.Version, snapshotVersion)
	}

	nes.CPU.SetState(state.CPU)
	copy(nes.CPU.RAM.Data, state.RAM[:])
	nes.CPU.PPUDMA.SetState(state.DMA)
	nes.PPU.SetState(state.PPU)
	nes.APU.SetState(state.APU)
	return nil
}
