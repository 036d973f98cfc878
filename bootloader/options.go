package bootloader

// Config holds the uploader configuration.
type Config struct {
	// ProgressCallback is called during Upload to report progress (optional).
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional).
	Logger Logger

	// AllowExperimentalBoards gates uploads to models flagged experimental.
	AllowExperimentalBoards bool

	// VerifyFirmwareSignature rejects an image whose firmware-signature
	// scan doesn't include the target board's model among the
	// priority-winning candidates.
	VerifyFirmwareSignature bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		AllowExperimentalBoards: false,
		VerifyFirmwareSignature: true,
	}
}

// Option is a functional option for configuring an Uploader.
type Option func(*Config)

// WithProgressCallback sets a callback function to track upload progress.
//
// Example:
//
//	up := bootloader.New(b,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("%d/%d\n", p.Offset, p.Size)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the uploader's operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithAllowExperimentalBoards enables uploads to models flagged
// experimental. Mirrors the TY_EXPERIMENTAL_BOARDS environment variable.
func WithAllowExperimentalBoards(allow bool) Option {
	return func(c *Config) {
		c.AllowExperimentalBoards = allow
	}
}

// WithVerifyFirmwareSignature enables or disables the firmware-signature
// scan before upload. Default is true.
func WithVerifyFirmwareSignature(verify bool) Option {
	return func(c *Config) {
		c.VerifyFirmwareSignature = verify
	}
}
