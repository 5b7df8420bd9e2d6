package emu

import (
	"bytes"
	"flag"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"nestor/hw"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// TestingOutputConfig configures a TestingOutput.
type TestingOutputConfig struct {
	// SaveFrameNum is the frame number to save as a PNG file. Leave zero to
	// let the emulator run indefinitely without ever saving a frame.
	SaveFrameNum int64
	// SaveFrameFile is the filename (without extension) to save the PNG
	// file as.
	SaveFrameFile string
	// SaveFrameDir is the directory to save the PNG file to.
	SaveFrameDir string
}

// TestingOutput is a headless Output that records frames to disk on demand
// instead of presenting them to a window, for use in benchmarks and
// golden-file regression tests.
type TestingOutput struct {
	cfg          TestingOutputConfig
	framecounter int64
	last         *image.RGBA
}

func newTestingOutput(cfg TestingOutputConfig) *TestingOutput {
	if cfg.SaveFrameNum == 0 {
		cfg.SaveFrameNum = math.MaxInt64
	}
	return &TestingOutput{cfg: cfg}
}

func (to *TestingOutput) BeginFrame() {}

func (to *TestingOutput) framePath() string {
	return filepath.Join(to.cfg.SaveFrameDir, to.cfg.SaveFrameFile+".png")
}

func (to *TestingOutput) Screenshot() *image.RGBA { return to.last }

func (to *TestingOutput) EndFrame(picture *image.RGBA) {
	to.last = picture
	if to.framecounter == to.cfg.SaveFrameNum {
		if err := hw.SaveAsPNG(picture, to.framePath()); err != nil {
			panic("failed to save frame: " + err.Error())
		}
	}
	to.framecounter++
}

func (to *TestingOutput) Poll() bool { return to.framecounter <= to.cfg.SaveFrameNum }

func (to *TestingOutput) Close() {}

// compareWithGolden asserts that the PNG file at path matches path+".golden".
// With -update, it refreshes the golden file from the current output instead
// of comparing, and leaves the freshly produced file in place. Otherwise the
// produced file is removed once it matches.
func compareWithGolden(t *testing.T, path string) {
	t.Helper()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	goldenPath := path + ".golden"
	if *updateGolden {
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("frame %s differs from %s", path, goldenPath)
	}
	if err := os.Remove(path); err != nil {
		t.Logf("failed to remove %s: %v", path, err)
	}
}

func TestTestingOutputSavesSelectedFrame(t *testing.T) {
	dir := t.TempDir()
	to := newTestingOutput(TestingOutputConfig{
		SaveFrameNum:  1,
		SaveFrameFile: "frame",
		SaveFrameDir:  dir,
	})

	picture := image.NewRGBA(image.Rect(0, 0, hw.NTSCWidth, hw.NTSCHeight))

	to.BeginFrame()
	to.EndFrame(picture) // frame 0: not saved
	if !to.Poll() {
		t.Fatal("Poll() = false before the target frame was reached")
	}

	to.BeginFrame()
	to.EndFrame(picture) // frame 1: saved
	if to.Poll() {
		t.Error("Poll() = true after the target frame was reached")
	}

	path := filepath.Join(dir, "frame.png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected frame file at %s: %v", path, err)
	}
	if got := to.Screenshot(); got != picture {
		t.Error("Screenshot() did not return the last rendered picture")
	}
}

func TestCompareWithGolden(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	golden := path + ".golden"

	if err := os.WriteFile(path, []byte("pixels"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(golden, []byte("pixels"), 0644); err != nil {
		t.Fatal(err)
	}

	compareWithGolden(t, path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("compareWithGolden should remove the compared file on a match")
	}
}
