package bootloader

import (
	"errors"
	"testing"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// fakeOps is a minimal board.InterfaceOps double that records calls and
// reports progress without touching a real handle.
type fakeOps struct {
	uploadErr error
	resetErr  error
	rebootErr error

	uploadCalls int
	offsets     []int
}

func (o *fakeOps) OpenInterface(*board.Interface) error                 { return nil }
func (o *fakeOps) CloseInterface(*board.Interface) error                { return nil }
func (o *fakeOps) SerialRead(*board.Interface, []byte, int) (int, error) { return 0, nil }
func (o *fakeOps) SerialWrite(*board.Interface, []byte) (int, error)     { return 0, nil }

func (o *fakeOps) Upload(iface *board.Interface, image []byte, allowExperimental bool, progress board.UploadProgressFunc) error {
	o.uploadCalls++
	if o.uploadErr != nil {
		return o.uploadErr
	}
	if progress != nil {
		if err := progress(iface.Board, 0, len(image)); err != nil {
			return err
		}
		o.offsets = append(o.offsets, 0)
		if err := progress(iface.Board, len(image), len(image)); err != nil {
			return err
		}
		o.offsets = append(o.offsets, len(image))
	}
	return nil
}

func (o *fakeOps) Reset(*board.Interface) error  { return o.resetErr }
func (o *fakeOps) Reboot(*board.Interface) error { return o.rebootErr }

type fakeClassifier struct {
	scanResult []*board.Model
}

func (c fakeClassifier) ClassifyInterface(platform.Device, *board.Interface) (bool, error) {
	return false, nil
}
func (c fakeClassifier) UpdateBoard(*board.Interface, *board.Board) (bool, error) {
	return true, nil
}
func (c fakeClassifier) ScanFirmware(image []byte, max int) []*board.Model {
	return c.scanResult
}

// testBoard wires a one-model fake family (ops, classifier) and returns a
// board with a single interface exposing caps. model.Family is set to the
// fake family so Upload/Reset/Reboot can dispatch through it.
func testBoard(t *testing.T, ops *fakeOps, scanResult []*board.Model, caps board.Capability) (*board.Board, *board.Model) {
	t.Helper()

	family := &board.Family{Name: "Fake", Ops: ops, Classifier: fakeClassifier{scanResult: scanResult}}
	model := &board.Model{Name: "FakeModel", CodeSize: 4096, Family: family}
	family.Models = []*board.Model{model}

	b := board.New("loc", model, 42, 0x16C0, 0x483)
	iface := &board.Interface{Model: model, Capabilities: caps}
	b.AddInterface(iface)
	return b, model
}

func TestUploadSuccess(t *testing.T) {
	ops := &fakeOps{}
	b, _ := testBoard(t, ops, nil, board.CapUpload)

	up := New(b, WithVerifyFirmwareSignature(false))
	if err := up.Upload([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ops.uploadCalls != 1 {
		t.Fatalf("uploadCalls = %d, want 1", ops.uploadCalls)
	}
	if len(ops.offsets) != 2 || ops.offsets[0] != 0 || ops.offsets[1] != 4 {
		t.Errorf("offsets = %v, want [0 4]", ops.offsets)
	}
}

func TestUploadNoCapability(t *testing.T) {
	ops := &fakeOps{}
	b, _ := testBoard(t, ops, nil, board.CapRun)

	up := New(b)
	err := up.Upload([]byte{1})
	var capErr *NoCapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Upload error = %v, want *NoCapabilityError", err)
	}
}

func TestUploadFirmwareMismatch(t *testing.T) {
	ops := &fakeOps{}
	other := &board.Model{Name: "OtherModel", CodeSize: 2048}
	b, _ := testBoard(t, ops, []*board.Model{other}, board.CapUpload)

	up := New(b)
	err := up.Upload([]byte{1, 2, 3, 4})
	var mismatch *FirmwareMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Upload error = %v, want *FirmwareMismatchError", err)
	}
	if ops.uploadCalls != 0 {
		t.Errorf("uploadCalls = %d, want 0 (rejected before transfer)", ops.uploadCalls)
	}
}

func TestUploadMatchesSignature(t *testing.T) {
	ops := &fakeOps{}
	b, model := testBoard(t, ops, nil, board.CapUpload)
	model.Family.Classifier = fakeClassifier{scanResult: []*board.Model{model}}

	up := New(b)
	if err := up.Upload([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ops.uploadCalls != 1 {
		t.Errorf("uploadCalls = %d, want 1", ops.uploadCalls)
	}
}

func TestUploadPropagatesOpsError(t *testing.T) {
	wantErr := errors.New("boom")
	ops := &fakeOps{uploadErr: wantErr}
	b, _ := testBoard(t, ops, nil, board.CapUpload)

	up := New(b, WithVerifyFirmwareSignature(false))
	err := up.Upload([]byte{1})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Upload error = %v, want wrapping %v", err, wantErr)
	}
}

func TestResetAndReboot(t *testing.T) {
	ops := &fakeOps{}
	b, _ := testBoard(t, ops, nil, board.CapReset|board.CapReboot)

	up := New(b)
	if err := up.Reset(); err != nil {
		t.Errorf("Reset: %v", err)
	}
	if err := up.Reboot(); err != nil {
		t.Errorf("Reboot: %v", err)
	}
}

func TestResetNoCapability(t *testing.T) {
	ops := &fakeOps{}
	b, _ := testBoard(t, ops, nil, board.CapRun)

	up := New(b)
	var capErr *NoCapabilityError
	if err := up.Reset(); !errors.As(err, &capErr) {
		t.Fatalf("Reset error = %v, want *NoCapabilityError", err)
	}
}
