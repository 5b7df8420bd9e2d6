package hwdefs

import "strings"

type IRQSource uint8

const (
	External IRQSource = 1 << iota
	FrameCounter
	DMC

	numSources = 3
)

var irqSrcNames = [numSources]string{
	"ext",
	"fcnt",
	"dmc",
}

func (irq IRQSource) String() string {
	var names []string
	for i := range numSources {
		if irq&(1<<i) != 0 {
			names = append(names, irqSrcNames[i])
		}
	}
	return strings.Join(names, "|")
}

const (
	SoftReset = true
	HardReset = false
)

const NumAudioChannels = 5 // Square1, Square2, Triangle, Noise, DMC

// Region identifies the television-standard master clock timing a console
// runs at. NTSC, PAL and Dendy(-clone) machines share the same 6502 core,
// mapper wiring and picture format; what changes between them is the
// CPU/PPU clock dividers, the scanline count per frame, and (for Dendy) a
// periodic clock-skip correction.
type Region uint8

const (
	NTSC Region = iota
	PAL
	Dendy
)

func (r Region) String() string {
	switch r {
	case PAL:
		return "PAL"
	case Dendy:
		return "Dendy"
	default:
		return "NTSC"
	}
}

// ClockTiming holds the master-clock divisors for a Region: CPUDivider is
// the number of master-clock ticks per CPU cycle, PPUDivider is the number
// of master-clock ticks per PPU dot, and StartHalf/EndHalf split
// CPUDivider across the two halves (cycle-begin/cycle-end) of a CPU cycle.
// Scanlines is the number of PPU scanlines per frame.
type ClockTiming struct {
	CPUDivider int
	PPUDivider uint64
	StartHalf  int
	EndHalf    int
	Scanlines  int
}

var clockTimings = [...]ClockTiming{
	NTSC: {CPUDivider: 12, PPUDivider: 4, StartHalf: 6, EndHalf: 6, Scanlines: 262},
	PAL:  {CPUDivider: 16, PPUDivider: 5, StartHalf: 8, EndHalf: 8, Scanlines: 312},
	// Dendy clones run PAL's 312-scanline frame but keep an NTSC-like 3:1
	// CPU:PPU ratio; unlike NTSC/PAL, 15 master-clock ticks per CPU cycle
	// doesn't divide evenly against the console's actual (non-integer)
	// oscillator ratio, so real hardware drifts. This clock inserts one
	// extra master-clock tick every 88 PPU dots to correct for it, the
	// same 15/88 correction cadence documented on the NESDev Dendy page.
	Dendy: {CPUDivider: 15, PPUDivider: 5, StartHalf: 7, EndHalf: 8, Scanlines: 312},
}

// Timing returns the clock divisors for r.
func (r Region) Timing() ClockTiming {
	return clockTimings[r]
}

// cpuCyclesPerFrame is the nominal number of CPU cycles in one video frame
// for each region (Scanlines*341 PPU dots, divided by the region's CPU:PPU
// ratio and rounded to the nearest whole cycle).
var cpuCyclesPerFrame = [...]int64{
	NTSC:  29781,
	PAL:   33248,
	Dendy: 35464,
}

// CPUCyclesPerFrame returns how many CPU cycles to run to advance the
// machine by exactly one video frame under r.
func (r Region) CPUCyclesPerFrame() int64 {
	return cpuCyclesPerFrame[r]
}
