package apu

import "nestor/hw/snapshot"

// Timer drives a channel's sequencer: it counts CPU/APU cycles down from
// period to 0, at which point Run reports a tick and the channel advances
// its sequence and pushes a new output delta to the mixer.
type Timer struct {
	Channel Channel
	mixer   mixer

	previousCycle uint32
	timer         uint16
	period        uint16
	lastOutput    int8
}

func NewTimer(channel Channel, mixer mixer) *Timer {
	t := &Timer{
		Channel: channel,
		mixer:   mixer,
	}
	t.Reset(false)
	return t
}

func (t *Timer) Reset(_ bool) {
	t.timer = 0
	t.period = 0
	t.previousCycle = 0
	t.lastOutput = 0
}

func (t *Timer) AddOutput(output int8) {
	if output != t.lastOutput {
		t.mixer.AddDelta(t.Channel, t.previousCycle, int16(output-t.lastOutput))
		t.lastOutput = output
	}
}

func (t *Timer) LastOutput() int8 {
	return t.lastOutput
}

func (t *Timer) Run(targetCycle uint32) bool {
	cyclesToRun := uint16(targetCycle - t.previousCycle)

	if cyclesToRun > t.timer {
		t.previousCycle += uint32(t.timer) + 1
		t.timer = t.period
		return true
	}

	t.timer -= cyclesToRun
	t.previousCycle = targetCycle
	return false
}

func (t *Timer) EndFrame() {
	t.previousCycle = 0
}

func (t *Timer) SetPeriod(period uint16) {
	t.period = period
}

func (t *Timer) Period() uint16 {
	return t.period
}

func (t *Timer) Timer() uint16 {
	return t.timer
}

func (t *Timer) SetTimer(timer uint16) {
	t.timer = timer
}

func (t *Timer) SaveState(state *snapshot.APUTimer) {
	state.PreviousCycle = t.previousCycle
	state.Timer = t.timer
	state.Period = t.period
	state.LastOutput = t.lastOutput
}

func (t *Timer) SetState(state *snapshot.APUTimer) {
	t.previousCycle = state.PreviousCycle
	t.timer = state.Timer
	t.period = state.Period
	t.lastOutput = state.LastOutput
}
