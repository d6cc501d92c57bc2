package cameras

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/technosupport/site-safety/internal/data"
)

const (
	DefaultName = "New Zone"
	DefaultIP   = "192.168.0.x"
)

// NormalizeName lowercases name and drops everything outside [a-z0-9].
// "New Zone 1" -> "newzone1"
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StreamURL builds the RTSP address for the camera at 1-based stream index n.
func StreamURL(ip string, n int) string {
	return fmt.Sprintf("rtsp://%s/stream%d", ip, n)
}

// PlaybackURL returns playback/{normalized}{suffix}.mp4 with the smallest suffix
// ("", "1", "2", ...) not present in taken.
func PlaybackURL(name string, taken map[string]struct{}) string {
	base := NormalizeName(name)
	for i := 0; ; i++ {
		suffix := ""
		if i > 0 {
			suffix = strconv.Itoa(i)
		}
		candidate := "playback/" + base + suffix + ".mp4"
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

// ReplaceStreamHost swaps the host between "//" and the next "/" for ip,
// keeping the stream path. URLs without that shape are returned unchanged.
func ReplaceStreamHost(rtspURL, ip string) string {
	i := strings.Index(rtspURL, "//")
	if i < 0 {
		return rtspURL
	}
	hostStart := i + 2
	j := strings.Index(rtspURL[hostStart:], "/")
	if j < 0 {
		return rtspURL
	}
	return rtspURL[:hostStart] + ip + rtspURL[hostStart+j:]
}

func nextID(cams []data.Camera) int {
	maxID := 0
	for _, c := range cams {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

func playbackSet(cams []data.Camera) map[string]struct{} {
	taken := make(map[string]struct{}, len(cams))
	for _, c := range cams {
		taken[c.PlaybackURL] = struct{}{}
	}
	return taken
}
