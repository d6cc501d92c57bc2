package api_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWebFile(t *testing.T, env *testEnv, rel, content string) {
	t.Helper()
	p := filepath.Join(env.webRoot, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestPageHandler_IndexRedirects(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/", "")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/dashboard.html", rr.Header().Get("Location"))
}

func TestPageHandler_Pages(t *testing.T) {
	env := newTestEnv(t)
	writeWebFile(t, env, "templates/dashboard.html", "<h1>dashboard</h1>")
	writeWebFile(t, env, "templates/secret.html", "nope")

	rr := env.do(t, "GET", "/dashboard.html", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "dashboard")
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/secret.html", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/dashboard", "").Code)
	// known page whose template is absent
	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/settings.html", "").Code)
}

func TestPageHandler_Static(t *testing.T) {
	env := newTestEnv(t)
	writeWebFile(t, env, "static/js/app.js", "console.log(1)")

	rr := env.do(t, "GET", "/static/js/app.js", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log(1)", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/static/js/", "").Code)
}

func TestPageHandler_Playback(t *testing.T) {
	env := newTestEnv(t)
	writeWebFile(t, env, "static/playback/gatea.mp4", "fake-mp4")
	writeWebFile(t, env, "static/secret.mp4", "outside")

	rr := env.do(t, "GET", "/playback/gatea.mp4", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "video/mp4", rr.Header().Get("Content-Type"))
	assert.Equal(t, "fake-mp4", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/playback/missing.mp4", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, "GET", "/playback/notes.txt", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, "GET", "/playback/../secret.mp4", "").Code)
}
