// Package bootloader provides a high-level API for uploading firmware to a
// board sitting in its HalfKay bootloader.
//
// # Overview
//
// Uploader orchestrates the complete sequence: find the board's HalfKay
// interface, validate the image against the board's firmware signatures,
// stream it block by block, then optionally reset or reboot.
//
// # Basic Usage
//
//	up := bootloader.New(b)
//	if err := up.Upload(image); err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
//	up := bootloader.New(b,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %d/%d bytes\n", p.Phase, p.Offset, p.Size)
//	    }),
//	)
//
// # Configuration Options
//
//	up := bootloader.New(b,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithLogger(myLogger),
//	    bootloader.WithAllowExperimentalBoards(true),
//	    bootloader.WithVerifyFirmwareSignature(true),
//	)
//
// # Logging
//
// Integrate with any logging framework by implementing Logger:
//
//	type MyLogger struct {
//	    logger *log.Logger
//	}
//
//	func (l *MyLogger) Debug(msg string, kv ...interface{}) { l.logger.Println("DEBUG:", msg, kv) }
//	func (l *MyLogger) Info(msg string, kv ...interface{})  { l.logger.Println("INFO:", msg, kv) }
//	func (l *MyLogger) Error(msg string, kv ...interface{}) { l.logger.Println("ERROR:", msg, kv) }
//
// # Error Handling
//
// The package returns structured error types:
//   - FirmwareMismatchError: image signature doesn't match the board's model
//   - NoCapabilityError: no interface on the board offers the required capability
//
// Upload itself can also return *board.RangeError (image too large for the
// model) or *board.UnsupportedError (experimental model, flag not set).
//
// # Protocol Timing
//
// HalfKay's retry deadlines and erase/block delays are configured per
// family, not per Uploader; see teensy.SetTiming.
package bootloader
