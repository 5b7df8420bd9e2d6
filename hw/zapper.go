package hw

// Zapper models the NES Zapper light gun. Unlike a standard controller, its
// light sensor and trigger aren't shifted out through the $4016/$4017 shift
// register: both are combinational, live reads of the gun's current state,
// wired onto D3 (trigger) and D4 (light-not-detected) of $4017.
//
// This doesn't model the ~26-PPU-dot window real hardware needs between a
// bright flash appearing on screen and the sensor reporting it, or the
// trigger's ~100ms mechanical release delay; both are left to the host
// (the caller of Aim), matching the per-frame zapper(x,y,trigger) contract.
type Zapper struct {
	ppu *PPU

	x, y    int
	trigger bool
}

// NewZapper creates a Zapper aimed off-screen with its trigger released,
// sensing light against ppu's frame buffer.
func NewZapper(ppu *PPU) *Zapper {
	return &Zapper{ppu: ppu, x: -1, y: -1}
}

// Aim updates the gun's screen position (in PPU pixel coordinates, origin
// top-left) and trigger state. Called by the host UI once per polled input
// frame, the way PlugInputDevice's input.Provider is polled for the
// standard controllers.
func (z *Zapper) Aim(x, y int, trigger bool) {
	z.x, z.y = x, y
	z.trigger = trigger
}

// zapperLightSum is the minimum R+G+B sum (each channel 0-255) a pixel must
// reach to count as "lit" for the light sensor.
const zapperLightSum = 384

// sensesLight reports whether the gun is pointed at a bright pixel.
//
// The PPU's frame buffer is overwritten in scanline order as the beam draws
// it, so a row the beam hasn't reached yet this frame still holds last
// frame's pixel there -- which is exactly the timing a real light gun sees,
// without needing a second buffer to model it. This doesn't model CRT
// phosphor decay or the gun's narrow field of view, both of which real
// light-gun games sometimes rely on; it's a brightness-threshold
// simplification adequate for the gun's emulator-facing contract.
func (z *Zapper) sensesLight() bool {
	if z.x < 0 || z.y < 0 || z.x >= 256 || z.y >= 240 {
		return false
	}
	c := z.ppu.screen.RGBAAt(z.x, z.y)
	return int(c.R)+int(c.G)+int(c.B) >= zapperLightSum
}

// readBits returns the Zapper's contribution to a $4017 read: D3 set while
// the trigger is held, D4 set when light is NOT sensed (clear when it is).
func (z *Zapper) readBits() uint8 {
	var v uint8
	if z.trigger {
		v |= 1 << 3
	}
	if !z.sensesLight() {
		v |= 1 << 4
	}
	return v
}
