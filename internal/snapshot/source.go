// Package snapshot loads the published JSON snapshot the pages read and
// keeps the current dataset in memory.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// MaxSnapshotSize limits a fetched document to 32MB
const MaxSnapshotSize = 32 << 20

// ErrNotPublished is returned when a source has no document yet.
var ErrNotPublished = errors.New("snapshot not published")

// Source fetches one raw snapshot document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// HTTPSource reads a statically hosted document. Every request carries a
// ts query parameter and no-store headers so intermediate caches never
// serve an old snapshot.
type HTTPSource struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewHTTPSource creates a source for rawURL.
func NewHTTPSource(rawURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url:    rawURL,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (s *HTTPSource) Name() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot url: %w", err)
	}
	q := u.Query()
	q.Set("ts", strconv.FormatInt(s.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", s.url, resp.StatusCode)
	}
	return readLimited(resp.Body)
}

// FileSource reads a document from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

// Querier is the part of a pgx pool PostgresSource needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads the latest document the pipeline published into
// the published_snapshots table.
type PostgresSource struct {
	db   Querier
	name string
}

// Document names in published_snapshots.
const (
	DocumentRecords   = "data"
	DocumentChallenge = "challenge"
)

// NewPostgresSource reads documents published under name.
func NewPostgresSource(db Querier, name string) *PostgresSource {
	return &PostgresSource{db: db, name: name}
}

func (s *PostgresSource) Name() string { return "postgres:" + s.name }

func (s *PostgresSource) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(ctx, `
		SELECT body
		FROM published_snapshots
		WHERE name = $1
		ORDER BY published_at DESC
		LIMIT 1
	`, s.name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", s.name, ErrNotPublished)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", s.name, err)
	}
	if len(body) > MaxSnapshotSize {
		return nil, fmt.Errorf("snapshot %s exceeds %d bytes", s.name, MaxSnapshotSize)
	}
	return body, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxSnapshotSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxSnapshotSize {
		return nil, fmt.Errorf("snapshot exceeds %d bytes", MaxSnapshotSize)
	}
	return body, nil
}
