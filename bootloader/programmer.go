package bootloader

import (
	"fmt"
	"time"

	"github.com/tyboard/tycore/board"
)

// Uploader orchestrates firmware upload, reset and reboot for one board.
// It finds the capability-appropriate interface, validates the image
// against the board's firmware signatures, and delegates the transfer to
// the board's family Ops.
//
// Uploader is not safe for concurrent use; concurrent uploads to the same
// board are out of scope.
type Uploader struct {
	board  *board.Board
	config Config
}

// New creates an Uploader for b.
//
// Example:
//
//	up := bootloader.New(b,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithAllowExperimentalBoards(cfg.AllowExperimentalBoards),
//	)
func New(b *board.Board, opts ...Option) *Uploader {
	if b == nil {
		panic("board cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Uploader{board: b, config: cfg}
}

// Upload performs the complete firmware upload sequence:
//  1. find the board's HalfKay-capable interface
//  2. scan the image against the family's firmware signatures and reject
//     it if the board's model isn't among the winning candidates
//  3. stream the image to the bootloader, reporting progress
//
// Example:
//
//	image, _ := os.ReadFile("firmware.hex")
//	err := up.Upload(image)
func (u *Uploader) Upload(image []byte) error {
	startTime := time.Now()

	iface := u.board.InterfaceFor(board.CapUpload)
	if iface == nil {
		return &NoCapabilityError{BoardID: u.board.ID(), Capability: board.CapUpload.String()}
	}

	u.reportProgress(Progress{Phase: "scanning", Size: len(image), ElapsedTime: time.Since(startTime)})

	if u.config.VerifyFirmwareSignature {
		candidates := iface.Model.Family.Classifier.ScanFirmware(image, len(iface.Model.Family.Models))
		if !modelAmong(iface.Model, candidates) {
			names := make([]string, len(candidates))
			for i, m := range candidates {
				names[i] = m.Name
			}
			return &FirmwareMismatchError{BoardModel: iface.Model.Name, Candidates: names}
		}
	}

	u.logInfo("upload starting", "board", u.board.ID(), "model", iface.Model.Name, "size", len(image))

	progress := func(b *board.Board, offset, size int) error {
		u.reportProgress(Progress{Phase: "uploading", Offset: offset, Size: size, ElapsedTime: time.Since(startTime)})
		return nil
	}

	if err := iface.Model.Family.Ops.Upload(iface, image, u.config.AllowExperimentalBoards, progress); err != nil {
		u.logError("upload failed", "board", u.board.ID(), "err", err)
		return fmt.Errorf("upload: %w", err)
	}

	u.reportProgress(Progress{Phase: "complete", Offset: len(image), Size: len(image), ElapsedTime: time.Since(startTime)})
	u.logInfo("upload complete", "board", u.board.ID(), "elapsed", time.Since(startTime).String())

	return nil
}

// Reset asks the board's HalfKay interface to jump to the application.
func (u *Uploader) Reset() error {
	iface := u.board.InterfaceFor(board.CapReset)
	if iface == nil {
		return &NoCapabilityError{BoardID: u.board.ID(), Capability: board.CapReset.String()}
	}
	if err := iface.Model.Family.Ops.Reset(iface); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Reboot asks the board's running interface to reboot into the bootloader.
func (u *Uploader) Reboot() error {
	iface := u.board.InterfaceFor(board.CapReboot)
	if iface == nil {
		return &NoCapabilityError{BoardID: u.board.ID(), Capability: board.CapReboot.String()}
	}
	if err := iface.Model.Family.Ops.Reboot(iface); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}
	return nil
}

func modelAmong(model *board.Model, candidates []*board.Model) bool {
	for _, c := range candidates {
		if c == model {
			return true
		}
	}
	return false
}

func (u *Uploader) reportProgress(p Progress) {
	if u.config.ProgressCallback != nil {
		u.config.ProgressCallback(p)
	}
}

func (u *Uploader) logInfo(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Info(msg, keysAndValues...)
	}
}

func (u *Uploader) logError(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Error(msg, keysAndValues...)
	}
}
