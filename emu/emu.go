package emu

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"nestor/emu/log"
	"nestor/hw"
	"nestor/hw/input"
	"nestor/ines"
)

// Output is implemented by whatever presents the emulator's picture to the
// outside world (a window, a headless test harness, a video encoder). Sound
// does not go through it: the APU's mixer queues samples to the SDL audio
// device itself. Nestor's core doesn't ship an Output: building and driving
// an actual window is left to the embedding program.
type Output interface {
	BeginFrame()
	EndFrame(picture *image.RGBA)
	Poll() bool
	Close()
	Screenshot() *image.RGBA
}

type Config struct {
	Input     input.Config    `toml:"input"`
	Video     VideoConfig     `toml:"video"`
	Audio     AudioConfig     `toml:"audio"`
	Emulation EmulationConfig `toml:"emulation"`
	General   GeneralConfig   `toml:"general"`

	TraceOut io.WriteCloser `toml:"-"`
}

type EmulationConfig struct {
	RunAheadFrames int          `toml:"run_ahead_frames"`
	Rewind         RewindConfig `toml:"rewind"`
}

type VideoConfig struct {
	DisableVSync bool  `toml:"disable_vsync"`
	Monitor      int32 `toml:"monitor"`
}

type AudioConfig struct {
	DisableAudio bool `toml:"disable_audio"`
}

type Emulator struct {
	NES *NES
	out Output
	cfg EmulationConfig
	rw  *rewind

	// These are accessed concurrently by the emulator loop and the UI.
	quit    atomic.Bool
	paused  atomic.Bool
	reset   atomic.Bool
	restart atomic.Bool

	tmpdir string
}

// Launch starts the various hardware subsystems, plugs controllers and wires
// out as the sink for rendered frames. out is supplied by
// the caller: Nestor's core has no opinion on how frames reach a screen. It
// doesn't start the emulation loop, call Run() for that.
func Launch(rom *ines.Rom, cfg Config, out Output) (*Emulator, error) {
	nes, err := powerUp(rom)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %s", err)
	}

	if cfg.Audio.DisableAudio {
		log.ModEmu.WarnZ("Audio disabled").End()
	} else {
		log.ModEmu.InfoZ("Audio enabled").End()
	}

	inprov := input.NewProvider(cfg.Input)
	nes.CPU.PlugInputDevice(inprov)

	// CPU execution trace setup.
	if cfg.TraceOut != nil {
		nes.CPU.SetTraceOutput(cfg.TraceOut)
	}

	return &Emulator{
		NES: nes,
		out: out,
		cfg: cfg.Emulation,
		rw:  newRewind(cfg.Emulation.Rewind),
	}, nil
}

// Rewind restores the most recently recorded rewind point, if one has been
// captured yet. It reports whether a rewind actually happened.
func (e *Emulator) Rewind() (bool, error) {
	return e.rw.Rewind(e.NES)
}

// Zapper aims the light gun mounted on controller port 2. x and y are PPU
// pixel coordinates (0-255, 0-239) matching the frame from
// e.NES.PPU.Output(); trigger reports whether the trigger is currently
// held. Call once per frame before RunOneFrame, the way input.Provider is
// polled for the standard pads.
func (e *Emulator) Zapper(x, y int, trigger bool) {
	e.NES.Zapper.Aim(x, y, trigger)
}

func (e *Emulator) RunOneFrame() {
	if e.cfg.RunAheadFrames > 0 {
		e.RunFrameWithRunAhead()
	} else {
		e.out.BeginFrame()
		e.NES.RunOneFrame()
		e.out.EndFrame(e.NES.PPU.Output())
	}

	if err := e.rw.Tick(e.NES); err != nil {
		log.ModEmu.WarnZ("Failed to record rewind point").Error("err", err).End()
	}
}

func (e *Emulator) RunFrameWithRunAhead() {
	frames := e.cfg.RunAheadFrames

	// Run a single frame, make a snapshot, but do not render video nor play
	// audio out of it.
	e.NES.isRunAheadFrame = true
	e.NES.RunOneFrame()

	buf, err := e.NES.SaveSnapshot()
	if err != nil {
		log.ModEmu.PanicZ("failed run-ahead frame snapshot").Error("err", err).End()
	}

	for frames > 1 {
		e.NES.RunOneFrame()
		frames--
	}
	e.NES.isRunAheadFrame = false

	// Run one frame normally.
	e.out.BeginFrame()
	e.NES.RunOneFrame()
	e.out.EndFrame(e.NES.PPU.Output())

	e.NES.isRunAheadFrame = true
	if err := e.NES.LoadSnapshot(buf); err != nil {
		log.ModEmu.PanicZ("failed to load snapshot").Error("err", err).End()
	}
	e.NES.isRunAheadFrame = false
}

func (e *Emulator) loop() {
	for e.out.Poll() {
		// Handle pause.
		if e.isPaused() {
			// Don't burn cpu while paused.
			time.Sleep(100 * time.Millisecond)
		} else {
			e.RunOneFrame()
		}
		if e.shouldStop() {
			break
		}
		e.handleReset()
	}

	e.out.Close()
}

func (e *Emulator) Run() {
	e.loop()
	log.ModEmu.InfoZ("Emulation loop exited").End()

	if e.tmpdir != "" {
		e.save()
	}
}

func (e *Emulator) save() {
	// Save state
	state, err := e.NES.SaveSnapshot()
	if err != nil {
		log.ModEmu.WarnZ("Failed to save state").Error("err", err).End()
		return
	}

	fmt.Printf("save state: %d bytes\n", len(state))

	path := filepath.Join(e.tmpdir, "screenshot.png")
	if err := hw.SaveAsPNG(e.out.Screenshot(), path); err != nil {
		log.ModEmu.WarnZ("Failed to save screenshot").String("path", path).End()
	}
}

func (e *Emulator) SetTempDir(path string) { e.tmpdir = path }

// SetPause, Stop, Reset and Restart allows to control
// the emulator loop in a concurrent-safe way.

func (e *Emulator) SetPause(pause bool) { e.paused.CompareAndSwap(!pause, pause) }
func (e *Emulator) Reset()              { e.reset.Store(true) }
func (e *Emulator) Restart()            { e.restart.Store(true) }
func (e *Emulator) Stop() {
	e.quit.Store(true)
}

func (e *Emulator) isPaused() bool {
	return e.paused.Load()
}

func (e *Emulator) shouldStop() bool {
	return e.quit.Load() || e.NES.CPU.IsHalted()
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing soft reset").End()
		e.NES.Reset(true)
	} else if e.restart.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing hard reset").End()
		e.NES.Reset(false)
	}
}
