// Package teensy implements the one board family this module supports: the
// PJRC Teensy line. It provides the model table, HID/CDC device
// classification, serial-number parsing, board identity merging, and the
// board.InterfaceOps that delegate upload/reset/reboot to the halfkay
// package and firmware scanning to the firmware package.
//
// Importing this package for its side effect registers the family with the
// board package's process-wide registry; nothing else needs to reference it
// directly once registered.
package teensy
