package firmware

import (
	"encoding/binary"
	"testing"

	"github.com/tyboard/tycore/board"
)

func modelStub(name string) *board.Model {
	return &board.Model{Name: name, CodeSize: 1}
}

func packMagic(dst []byte, offset int, magic uint64) {
	binary.BigEndian.PutUint64(dst[offset:offset+8], magic)
}

func TestScanSingleMatch(t *testing.T) {
	want := modelStub("teensy40")
	sigs := []Signature{{Magic: 0x1122334455667788, Model: want, Priority: 0}}

	image := make([]byte, 32)
	packMagic(image, 10, 0x1122334455667788)

	got := Scan(image, sigs, 3)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Scan() = %v, want [%v]", got, want)
	}
}

func TestScanHigherPriorityReplacesLower(t *testing.T) {
	low := modelStub("low")
	high := modelStub("high")
	sigs := []Signature{
		{Magic: 0xAAAAAAAAAAAAAAAA, Model: low, Priority: 0},
		{Magic: 0xBBBBBBBBBBBBBBBB, Model: high, Priority: 1},
	}

	image := make([]byte, 32)
	packMagic(image, 0, 0xAAAAAAAAAAAAAAAA)
	packMagic(image, 16, 0xBBBBBBBBBBBBBBBB)

	got := Scan(image, sigs, 3)
	if len(got) != 1 || got[0] != high {
		t.Fatalf("Scan() = %v, want [%v] (higher priority must displace the low-priority match)", got, high)
	}
}

func TestScanContinuesAfterBufferFull(t *testing.T) {
	a := modelStub("a")
	b := modelStub("b")
	winner := modelStub("winner")
	sigs := []Signature{
		{Magic: 0x1111111111111111, Model: a, Priority: 0},
		{Magic: 0x2222222222222222, Model: b, Priority: 0},
		{Magic: 0x3333333333333333, Model: winner, Priority: 1},
	}

	image := make([]byte, 64)
	packMagic(image, 0, 0x1111111111111111)
	packMagic(image, 16, 0x2222222222222222)
	packMagic(image, 32, 0x3333333333333333) // later, higher priority

	got := Scan(image, sigs, 1)
	if len(got) != 1 || got[0] != winner {
		t.Fatalf("Scan() = %v, want [%v] (a later higher-priority hit must still win after the buffer filled)", got, winner)
	}
}

func TestScanSamePriorityAppendsUpToMax(t *testing.T) {
	a := modelStub("a")
	b := modelStub("b")
	c := modelStub("c")
	sigs := []Signature{
		{Magic: 0x1111111111111111, Model: a, Priority: 0},
		{Magic: 0x2222222222222222, Model: b, Priority: 0},
		{Magic: 0x3333333333333333, Model: c, Priority: 0},
	}

	image := make([]byte, 64)
	packMagic(image, 0, 0x1111111111111111)
	packMagic(image, 16, 0x2222222222222222)
	packMagic(image, 32, 0x3333333333333333)

	got := Scan(image, sigs, 2)
	if len(got) != 2 {
		t.Fatalf("Scan() returned %d candidates, want 2 (max_guesses)", len(got))
	}
}

func TestScanNoMatch(t *testing.T) {
	sigs := []Signature{{Magic: 0xDEADBEEFDEADBEEF, Model: modelStub("x"), Priority: 0}}
	image := make([]byte, 32)

	if got := Scan(image, sigs, 3); got != nil {
		t.Fatalf("Scan() = %v, want nil", got)
	}
}

func TestScanImageShorterThanWindow(t *testing.T) {
	sigs := []Signature{{Magic: 0x1, Model: modelStub("x"), Priority: 0}}
	if got := Scan(make([]byte, 4), sigs, 3); got != nil {
		t.Fatalf("Scan() = %v, want nil for undersized image", got)
	}
}
