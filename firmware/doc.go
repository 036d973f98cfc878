// Package firmware implements the signature scanner: sliding an 8-byte
// big-endian window across a firmware image and matching it against a
// family's signature table to guess which model the image targets.
//
// Scanning is priority-arbitrated: a higher-priority match discards every
// lower-priority candidate collected so far, and scanning never stops early
// just because the guess buffer is full — a later higher-priority hit must
// still be able to win.
package firmware
