// Package platform declares the contract this module consumes from the
// underlying USB/HID/CDC platform layer.
//
// Nothing in this package talks to real hardware. It exists so that
// board, teensy, halfkay and monitor can be written and tested against a
// narrow, host-independent surface: enumerate/refresh devices, open/close a
// handle, read/write bytes (serial and HID variants), HID feature reports,
// serial baud-rate control, a millisecond clock, sleep, and poll over a
// descriptor set. A real implementation (libusb/hidapi bindings, a
// platform-specific hotplug watcher, and so on) lives outside this module
// and is out of scope per the specification: this package is the seam.
package platform
