// Package halfkay implements the HalfKay bootloader wire protocol: the
// three block-addressed packet layouts (v1/v2/v3), retry-within-deadline
// writes, erase-delay pacing during upload, the reset (jump-to-application)
// command, and the two reboot-into-bootloader mechanisms (serial baud
// magic, Seremu feature report).
//
// This package knows nothing about USB enumeration or board bookkeeping;
// it operates purely on a platform.Handle and a board.Model's protocol
// parameters, which is what lets it be shared by any family whose
// bootloader speaks HalfKay (in this module, only Teensy does).
package halfkay
