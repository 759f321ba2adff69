package snapshot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/skyairrace/records-api/internal/logic"
)

// StoreConfig configures a Store. Challenge may be nil when the deployment
// publishes no challenge page.
type StoreConfig struct {
	Records   Source
	Challenge Source
	Location  *time.Location
	Logger    *zap.Logger
}

// Store holds the current dataset. Readers never see a partially loaded
// snapshot: a load either replaces the dataset whole or leaves it as it was.
type Store struct {
	records   Source
	challenge Source
	loc       *time.Location
	logger    *zap.SugaredLogger

	current atomic.Pointer[logic.Dataset]
	group   singleflight.Group
}

// NewStore creates an empty store. Call Reload to load the first snapshot.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Store{
		records:   cfg.Records,
		challenge: cfg.Challenge,
		loc:       cfg.Location,
		logger:    cfg.Logger.Sugar(),
	}
}

// Current returns the loaded dataset or logic.ErrSnapshotUnavailable.
func (s *Store) Current() (*logic.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, logic.ErrSnapshotUnavailable
	}
	return ds, nil
}

// Reload fetches and decodes both documents and swaps the dataset in.
// Concurrent calls share one fetch. On failure the previous dataset stays.
func (s *Store) Reload(ctx context.Context) (*logic.Dataset, error) {
	v, err, shared := s.group.Do("reload", func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debugw("Snapshot reload shared with concurrent caller")
	}
	return v.(*logic.Dataset), nil
}

func (s *Store) load(ctx context.Context) (*logic.Dataset, error) {
	start := time.Now()
	defer func() {
		snapshotLoadDuration.Observe(time.Since(start).Seconds())
	}()

	var recordsBody, challengeBody []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := s.records.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", s.records.Name(), err)
		}
		recordsBody = body
		return nil
	})
	if s.challenge != nil {
		g.Go(func() error {
			body, err := s.challenge.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", s.challenge.Name(), err)
			}
			challengeBody = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		snapshotLoads.WithLabelValues("fetch_error").Inc()
		s.logger.Errorw("Snapshot fetch failed", "error", err)
		return nil, err
	}

	ds, err := Decode(recordsBody, challengeBody, s.loc)
	if err != nil {
		snapshotLoads.WithLabelValues("decode_error").Inc()
		s.logger.Errorw("Snapshot decode failed", "error", err)
		return nil, err
	}

	previous := s.current.Swap(ds)
	snapshotLoads.WithLabelValues("success").Inc()
	snapshotLastSuccess.SetToCurrentTime()
	snapshotRows.WithLabelValues("records").Set(float64(ds.RecordCount()))
	snapshotRows.WithLabelValues("challenge_records").Set(float64(ds.ChallengeRecordCount()))

	fields := []interface{}{
		"generation", ds.Generation(),
		"records", ds.RecordCount(),
		"challengeRecords", ds.ChallengeRecordCount(),
		"duration", time.Since(start),
	}
	if previous != nil {
		fields = append(fields, "previousGeneration", previous.Generation())
	}
	s.logger.Infow("Snapshot loaded", fields...)
	return ds, nil
}
