package bootloader

import "time"

// Progress reports upload progress. Passed to ProgressCallback during
// Uploader.Upload.
type Progress struct {
	// Phase describes the current step:
	//   "scanning"  - validating the image against the board's firmware signatures
	//   "uploading" - streaming blocks to the HalfKay bootloader
	//   "complete"  - upload finished successfully
	Phase string

	// Offset is the number of bytes written so far.
	Offset int

	// Size is the total image size.
	Size int

	// ElapsedTime is the time elapsed since the upload started.
	ElapsedTime time.Duration
}

// ProgressCallback is called during Upload to report progress.
//
// Example:
//
//	up := bootloader.New(b,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %d/%d\n", p.Phase, p.Offset, p.Size)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface an Uploader reports through. It
// lets callers plug in whatever logging framework they already use.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}
