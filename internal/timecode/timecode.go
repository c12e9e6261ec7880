// Package timecode converts between frame counts and hh:mm:ss:ff strings.
package timecode

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	Zero             = "00:00:00:00"
	DefaultFramerate = 25
)

var pattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}):(\d{2})$`)

// FromFrame renders a frame count as hh:mm:ss:ff. Negative frames clamp to Zero.
// Hours are not bounded, so 100h and above render with more than two digits.
func FromFrame(frame, framerate int) string {
	if frame < 0 {
		return Zero
	}
	framerate = sane(framerate)

	totalSeconds := frame / framerate
	frames := frame % framerate

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}

// ToFrame parses a strict hh:mm:ss:ff string. Anything else yields 0, so callers
// that care must check Valid first. Field ranges are not checked here.
func ToFrame(tc string, framerate int) int {
	h, m, s, f, ok := fields(tc)
	if !ok {
		return 0
	}
	framerate = sane(framerate)

	return h*3600*framerate + m*60*framerate + s*framerate + f
}

// Valid reports whether tc matches hh:mm:ss:ff with minutes and seconds below 60
// and frames below framerate. Hours are unchecked.
func Valid(tc string, framerate int) bool {
	_, m, s, f, ok := fields(tc)
	if !ok {
		return false
	}
	return m < 60 && s < 60 && f < framerate
}

// Complete pads partial operator input ("hh", "hh:mm", "hh:mm:ss") to a full
// timecode and validates the result.
func Complete(input string, framerate int) (string, bool) {
	switch len(input) {
	case 2:
		input += ":00:00:00"
	case 5:
		input += ":00:00"
	case 8:
		input += ":00"
	}
	if !Valid(input, framerate) {
		return "", false
	}
	return input, true
}

func fields(tc string) (h, m, s, f int, ok bool) {
	match := pattern.FindStringSubmatch(tc)
	if match == nil {
		return 0, 0, 0, 0, false
	}
	// two-digit groups always parse
	h, _ = strconv.Atoi(match[1])
	m, _ = strconv.Atoi(match[2])
	s, _ = strconv.Atoi(match[3])
	f, _ = strconv.Atoi(match[4])
	return h, m, s, f, true
}

func sane(framerate int) int {
	if framerate <= 0 {
		return DefaultFramerate
	}
	return framerate
}
