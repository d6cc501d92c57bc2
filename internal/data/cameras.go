package data

import (
	"context"
)

// Camera is one registry record. RTSPURL and PlaybackURL are derived at creation.
type Camera struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IP          string `json:"ip"`
	RTSPURL     string `json:"rtsp_url"`
	PlaybackURL string `json:"playback_url"`
	Zone        string `json:"zone"`
	Status      bool   `json:"status"`
}

// CameraModel persists the camera registry as one JSON array document.
type CameraModel struct {
	Path string
}

// LoadAll returns cameras in persisted order.
func (m CameraModel) LoadAll(ctx context.Context) ([]Camera, error) {
	return loadSnapshot[Camera](ctx, m.Path)
}

// SaveAll overwrites the whole collection.
func (m CameraModel) SaveAll(ctx context.Context, cams []Camera) error {
	return saveSnapshot(ctx, m.Path, cams)
}
