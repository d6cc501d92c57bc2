package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/metrics"
)

// Store serves pages over the append-only detection log.
// It keeps no state between calls; every Query re-reads the file.
type Store struct {
	path string
	log  *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, log: logger.Named("logs")}
}

func (s *Store) Path() string {
	return s.path
}

// Query returns page `page` of size `limit`, newest line first.
// A missing or unreadable source yields an empty first page, not an error.
func (s *Store) Query(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidArgument, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	events, dropped, err := s.readAll()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("detection log unreadable, serving empty page", zap.String("path", s.path), zap.Error(err))
		}
		metrics.RecordLogQuery("empty_source", time.Since(start), 0)
		return emptyPage(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(events)

	total := len(events)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// page and limit have no upper bound; offsets are computed only for in-range pages.
	out := []DetectionEvent{}
	if page-1 < totalPages {
		from := (page - 1) * limit
		n := min(limit, total-from)
		out = make([]DetectionEvent, n)
		copy(out, events[from:from+n])
	}

	metrics.RecordLogQuery("success", time.Since(start), dropped)
	s.log.Debug("detection log query",
		zap.Int("page", page),
		zap.Int("limit", limit),
		zap.Int("total", total),
		zap.Int("dropped", dropped))

	return &Page{
		Logs:        out,
		TotalLogs:   total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// readAll parses every line in source order. A partial trailing line (writer mid-append)
// is parsed like any other and usually dropped.
func (s *Store) readAll() ([]DetectionEvent, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var (
		events  []DetectionEvent
		dropped int
	)
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if ev, ok := ParseLine(line); ok {
				events = append(events, ev)
			} else if strings.TrimSpace(line) != "" {
				dropped++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return events, dropped, nil
}
