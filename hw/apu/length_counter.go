package apu

import "nestor/hw/snapshot"

type lengthCounter struct {
	channel Channel
	newHalt bool

	enabled       bool
	halt          bool
	counter       uint8
	reloadValue   uint8
	previousValue uint8

	apu apu
}

var lengthCounterLUT = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

func (lc *lengthCounter) init(halt bool) {
	lc.apu.SetNeedToRun()
	lc.newHalt = halt
}

func (lc *lengthCounter) load(val uint8) {
	if lc.enabled {
		lc.reloadValue = lengthCounterLUT[val]
		lc.previousValue = lc.counter
		lc.apu.SetNeedToRun()
	}
}

func (lc *lengthCounter) reset(soft bool) {
	lc.enabled = false
	if soft && lc.channel == Triangle {
		// At reset, length counters should be enabled, triangle unaffected.
		return
	}
	lc.halt = false
	lc.counter = 0
	lc.newHalt = false
	lc.reloadValue = 0
	lc.previousValue = 0
}

func (lc *lengthCounter) status() bool {
	return lc.counter > 0
}

func (lc *lengthCounter) isHalted() bool {
	return lc.halt
}

func (lc *lengthCounter) reload() {
	if lc.reloadValue != 0 {
		if lc.counter == lc.previousValue {
			lc.counter = lc.reloadValue
		}
		lc.reloadValue = 0
	}
	lc.halt = lc.newHalt
}

func (lc *lengthCounter) tick() {
	if lc.counter > 0 && !lc.halt {
		lc.counter--
	}
}

func (lc *lengthCounter) setEnabled(enabled bool) {
	if !enabled {
		lc.counter = 0
	}
	lc.enabled = enabled
}

func (lc *lengthCounter) isEnabled() bool {
	return lc.enabled
}

func (lc *lengthCounter) saveState(state *snapshot.APULengthCounter) {
	state.NewHalt = lc.newHalt
	state.Enabled = lc.enabled
	state.Halt = lc.halt
	state.Counter = lc.counter
	state.ReloadValue = lc.reloadValue
	state.PreviousValue = lc.previousValue
}

func (lc *lengthCounter) setState(state *snapshot.APULengthCounter) {
	lc.newHalt = state.NewHalt
	lc.enabled = state.Enabled
	lc.halt = state.Halt
	lc.counter = state.Counter
	lc.reloadValue = state.ReloadValue
	lc.previousValue = state.PreviousValue
}
