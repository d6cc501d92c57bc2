package cameras_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/technosupport/site-safety/internal/cameras"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"New Zone":        "newzone",
		"New Zone 1":      "newzone1",
		"Zone A":          "zonea",
		"  Dock-7 / East": "dock7east",
		"Ünïcode Zone":    "ncodezone",
		"":                "",
		"!!!":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, cameras.NormalizeName(in), "input %q", in)
	}
}

func TestStreamURL(t *testing.T) {
	assert.Equal(t, "rtsp://10.0.0.1/stream1", cameras.StreamURL("10.0.0.1", 1))
	assert.Equal(t, "rtsp://192.168.0.x/stream7", cameras.StreamURL(cameras.DefaultIP, 7))
}

func TestPlaybackURL(t *testing.T) {
	taken := map[string]struct{}{}
	assert.Equal(t, "playback/zonea.mp4", cameras.PlaybackURL("Zone A", taken))

	taken["playback/zonea.mp4"] = struct{}{}
	assert.Equal(t, "playback/zonea1.mp4", cameras.PlaybackURL("Zone A", taken))

	taken["playback/zonea1.mp4"] = struct{}{}
	taken["playback/zonea3.mp4"] = struct{}{}
	assert.Equal(t, "playback/zonea2.mp4", cameras.PlaybackURL("zone-a", taken))

	assert.Equal(t, "playback/.mp4", cameras.PlaybackURL("***", map[string]struct{}{}))
}

func TestReplaceStreamHost(t *testing.T) {
	cases := []struct {
		url, ip, want string
	}{
		{"rtsp://10.0.0.1/stream4", "10.0.0.9", "rtsp://10.0.0.9/stream4"},
		{"rtsp://192.168.0.x/stream12", "cam.local:554", "rtsp://cam.local:554/stream12"},
		{"rtsp://10.0.0.1/a/stream2", "h", "rtsp://h/a/stream2"},
		{"rtsp://hostonly", "h", "rtsp://hostonly"},
		{"not-a-url", "h", "not-a-url"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cameras.ReplaceStreamHost(tc.url, tc.ip))
	}
}
