package emu

import "testing"

func TestParseGenieCodeRejectsBadInput(t *testing.T) {
	cases := []string{"", "AAA", "AAAAA", "AAAAAAA", "AAAAA1", "ZZZZZZZZZ"}
	for _, c := range cases {
		if _, err := ParseGenieCode(c); err == nil {
			t.Errorf("ParseGenieCode(%q): expected error, got none", c)
		}
	}
}

func TestParseGenieCodeShape(t *testing.T) {
	six, err := ParseGenieCode("AAAAAA")
	if err != nil {
		t.Fatalf("ParseGenieCode(6-letter): %v", err)
	}
	if six.Compare != nil {
		t.Errorf("6-letter code should have no compare byte, got %v", *six.Compare)
	}
	if six.Addr < 0x8000 {
		t.Errorf("decoded address %#04x is outside cartridge space", six.Addr)
	}

	eight, err := ParseGenieCode("AAAAAAAA")
	if err != nil {
		t.Fatalf("ParseGenieCode(8-letter): %v", err)
	}
	if eight.Compare == nil {
		t.Error("8-letter code should carry a compare byte")
	}
}

func TestApplyGenieCodesPatchesReads(t *testing.T) {
	nes := newTestNES(t)

	unconditional := GenieCode{Code: "test-uncond", Addr: 0x8000, Data: 0x42}
	original := nes.CPU.Bus.Read8(0x8000, false)
	mismatchedCompare := original ^ 0xFF
	conditional := GenieCode{Code: "test-cond", Addr: 0x8001, Data: 0x7E, Compare: &mismatchedCompare}

	if err := ApplyGenieCodes(nes, []GenieCode{unconditional, conditional}); err != nil {
		t.Fatalf("ApplyGenieCodes: %v", err)
	}

	if got := nes.CPU.Bus.Read8(0x8000, false); got != 0x42 {
		t.Errorf("unconditional code: got %#02x, want 0x42", got)
	}
	if got, want := nes.CPU.Bus.Read8(0x8001, false), original; got != want {
		t.Errorf("conditional code with mismatched compare should leave the byte alone: got %#02x, want %#02x", got, want)
	}
}

func TestApplyGenieCodesRejectsUnmappedAddress(t *testing.T) {
	nes := newTestNES(t)
	if err := ApplyGenieCodes(nes, []GenieCode{{Code: "bogus", Addr: 0x4020}}); err == nil {
		t.Error("expected an error patching an address with nothing mapped underneath it")
	}
}
