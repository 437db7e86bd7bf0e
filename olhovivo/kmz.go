package olhovivo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const kmzContentType = "application/vnd.google-earth.kmz"

// Map routes accepted by ExportMap
const (
	MapAll        = ""
	MapCorridors  = "/Corredor"
	MapOtherRoads = "/OutrasVias"
)

// ExportMap downloads the KMZ map archive for route and writes it to the map path
// (mapa.kmz by default). It returns false without touching the file when the API
// answers with anything other than 200.
func (c *Client) ExportMap(ctx context.Context, route string) (bool, error) {
	if !c.authenticated {
		return false, ErrNotAuthenticated
	}

	if route != "" && !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	path := "KMZ" + route

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	// An explicit Accept-Encoding keeps the transport from decompressing the archive.
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Content-Type", kmzContentType)
	if c.opts.userAgent != "" {
		req.Header.Set("User-Agent", c.opts.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &NetworkError{URL: c.endpoint + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Map export failed")
		return false, nil
	}

	written, err := writeFileAtomic(c.opts.mapPath, resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to save map to %s: %w", c.opts.mapPath, err)
	}

	c.logger.Info().
		Str("file", c.opts.mapPath).
		Int64("bytes", written).
		Msg("Map exported")

	return true, nil
}

// MapPath returns the file ExportMap writes to
func (c *Client) MapPath() string {
	return c.opts.mapPath
}

// writeFileAtomic streams r into a temp file next to path and renames it into
// place, so a failed download never leaves a partial file behind.
func writeFileAtomic(path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	var written int64
	err = tmp.Chmod(0o644)
	if err == nil {
		written, err = io.Copy(tmp, r)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return 0, err
	}

	return written, nil
}
