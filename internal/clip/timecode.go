package clip

import (
	"regexp"
	"strconv"
	"strings"
)

// timeFormatRe accepts H:MM:SS or HH:MM:SS with hours 0-23,
// minutes and seconds 0-59.
var timeFormatRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// ValidTimeFormat reports whether s is a well-formed H(H):MM:SS timecode.
func ValidTimeFormat(s string) bool {
	return timeFormatRe.MatchString(s)
}

// TimeToSeconds converts an H(H):MM:SS timecode to whole seconds.
// Input is assumed to have passed ValidTimeFormat; malformed components
// contribute zero.
func TimeToSeconds(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	sec, _ := strconv.Atoi(parts[2])
	return h*3600 + m*60 + sec
}
