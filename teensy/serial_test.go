package teensy

import "testing"

func TestParseBootloaderSerial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint64
	}{
		{"absent means AVR", "", avrMarkerSerial},
		{"unprogrammed K66 beta quirk", "64", 0}, // hex 0x64 == 100
		{"hex with leading zeros, below ten million gets x10", "00000C81", 32010},
		{"value at or above ten million is not multiplied", "989680", 10_000_000},
		{"not valid hex", "zz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBootloaderSerial(tt.in); got != tt.want {
				t.Errorf("parseBootloaderSerial(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRuntimeSerial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint64
	}{
		{"plain decimal", "32010", 32010},
		{"no truncation workaround in runtime mode", "123", 123},
		{"not valid decimal", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRuntimeSerial(tt.in); got != tt.want {
				t.Errorf("parseRuntimeSerial(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
