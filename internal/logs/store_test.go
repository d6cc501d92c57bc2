package logs_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technosupport/site-safety/internal/logs"
)

func line(i int) string {
	return fmt.Sprintf("2024-01-01T10:00:%02d - info: [cam%d] Detected %d persons, %d helmets, %d harnesses in %d.5ms", i%60, i, i, i, i, i)
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detection_logs.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestQuery_SingleLineScenario(t *testing.T) {
	path := writeLog(t, "2024-01-01T10:00:00 - info: [cam1] Detected 3 persons, 2 helmets, 1 harnesses in 12.5ms")
	store := logs.NewStore(path, nil)

	page, err := store.Query(context.Background(), 1, 50)
	require.NoError(t, err)

	require.Len(t, page.Logs, 1)
	assert.Equal(t, logs.DetectionEvent{Timestamp: "2024-01-01T10:00:00", Persons: 3, Helmets: 2, Harnesses: 1, InferenceTime: 12.5}, page.Logs[0])
	assert.Equal(t, 1, page.TotalLogs)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestQuery_NewestFirstAndMalformedDropped(t *testing.T) {
	path := writeLog(t,
		line(1),
		"garbage line",
		line(2),
		"",
		"2024 - info: [cam] Detected 1 persons, 1 helm", // mid-write
		line(3),
	)
	store := logs.NewStore(path, nil)

	page, err := store.Query(context.Background(), 1, 50)
	require.NoError(t, err)

	require.Equal(t, 3, page.TotalLogs)
	assert.Equal(t, []int{3, 2, 1}, []int{page.Logs[0].Persons, page.Logs[1].Persons, page.Logs[2].Persons})
	for _, ev := range page.Logs {
		assert.NotContains(t, ev.Timestamp, "garbage")
	}
}

func TestQuery_Pagination(t *testing.T) {
	var lines []string
	for i := 1; i <= 23; i++ {
		lines = append(lines, line(i))
	}
	store := logs.NewStore(writeLog(t, lines...), nil)
	ctx := context.Background()

	for _, limit := range []int{1, 5, 10, 23, 50} {
		wantPages := (23 + limit - 1) / limit
		seen := 0
		for p := 1; p <= wantPages+1; p++ {
			page, err := store.Query(ctx, p, limit)
			require.NoError(t, err)
			assert.Equal(t, 23, page.TotalLogs)
			assert.Equal(t, wantPages, page.TotalPages, "limit=%d", limit)
			assert.Equal(t, p, page.CurrentPage)
			assert.LessOrEqual(t, len(page.Logs), limit)
			if len(page.Logs) > 0 {
				// newest first: the first event of page p is line 23-(p-1)*limit
				assert.Equal(t, 23-(p-1)*limit, page.Logs[0].Persons)
			}
			seen += len(page.Logs)
		}
		assert.Equal(t, 23, seen, "limit=%d", limit)
	}

	page, err := store.Query(ctx, 99, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Logs)
	assert.Empty(t, page.Logs)
	assert.Equal(t, 99, page.CurrentPage)
}

func TestQuery_Idempotent(t *testing.T) {
	store := logs.NewStore(writeLog(t, line(1), "noise", line(2)), nil)

	first, err := store.Query(context.Background(), 1, 1)
	require.NoError(t, err)
	second, err := store.Query(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuery_SeesAppendsWithoutCaching(t *testing.T) {
	path := writeLog(t, line(1))
	store := logs.NewStore(path, nil)

	page, err := store.Query(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalLogs)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(line(2) + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	page, err = store.Query(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalLogs)
	assert.Equal(t, 2, page.Logs[0].Persons)
}

func TestQuery_MissingSource(t *testing.T) {
	store := logs.NewStore(filepath.Join(t.TempDir(), "absent.txt"), nil)

	page, err := store.Query(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, &logs.Page{Logs: []logs.DetectionEvent{}, TotalLogs: 0, CurrentPage: 1, TotalPages: 0}, page)
}

func TestQuery_DirectoryAsSourceIsEmpty(t *testing.T) {
	store := logs.NewStore(t.TempDir(), nil)

	page, err := store.Query(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalLogs)
	assert.Empty(t, page.Logs)
}

func TestQuery_InvalidArguments(t *testing.T) {
	store := logs.NewStore(writeLog(t, line(1)), nil)

	for _, tc := range []struct{ page, limit int }{{0, 10}, {-1, 10}, {1, 0}, {1, -5}} {
		_, err := store.Query(context.Background(), tc.page, tc.limit)
		assert.True(t, errors.Is(err, logs.ErrInvalidArgument), "page=%d limit=%d", tc.page, tc.limit)
	}
}

func TestQuery_CancelledContext(t *testing.T) {
	store := logs.NewStore(writeLog(t, line(1)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Query(ctx, 1, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuery_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	store := logs.NewStore(writeLog(t, long, line(4)), nil)

	page, err := store.Query(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalLogs)
}

func TestQuery_HugeArguments(t *testing.T) {
	store := logs.NewStore(writeLog(t, line(1), line(2)), nil)
	ctx := context.Background()

	page, err := store.Query(ctx, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Logs, 2)

	for _, tc := range []struct{ page, limit int }{
		{1 << 62, 4},
		{math.MaxInt, math.MaxInt},
		{2, math.MaxInt},
	} {
		page, err := store.Query(ctx, tc.page, tc.limit)
		require.NoError(t, err, "page=%d limit=%d", tc.page, tc.limit)
		assert.Empty(t, page.Logs)
		assert.NotNil(t, page.Logs)
		assert.Equal(t, tc.page, page.CurrentPage)
		assert.Equal(t, 2, page.TotalLogs)
		assert.Equal(t, 1, page.TotalPages)
	}
}
