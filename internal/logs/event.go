package logs

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// DetectionEvent is one parsed detector line. It is rebuilt from the source on every query.
type DetectionEvent struct {
	Timestamp     string  `json:"timestamp"`
	Persons       int     `json:"persons"`
	Helmets       int     `json:"helmets"`
	Harnesses     int     `json:"harnesses"`
	InferenceTime float64 `json:"inference_time"`
}

// Page is a window over the newest-first event sequence.
type Page struct {
	Logs        []DetectionEvent `json:"logs"`
	TotalLogs   int              `json:"total_logs"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
}

func emptyPage() *Page {
	return &Page{Logs: []DetectionEvent{}, CurrentPage: 1}
}
