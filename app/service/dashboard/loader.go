package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	models "school-dashboard/app/models/dashboard"
	"school-dashboard/app/repository/source"
)

// Loader issues the single load of a session. Screens with several
// datasets fetch them in parallel; any failure fails the screen.
type Loader struct {
	source  source.RecordSource
	timeout time.Duration
}

func NewLoader(src source.RecordSource, timeout time.Duration) *Loader {
	return &Loader{source: src, timeout: timeout}
}

func (l *Loader) Load(ctx context.Context, s *Session) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var mu sync.Mutex
	results := make(map[string][]models.Record, len(s.Screen.Datasets))

	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range s.Screen.Datasets {
		g.Go(func() error {
			records, err := l.source.Fetch(gctx, spec.Endpoint)
			if err != nil {
				log.Error().Err(err).
					Str("session", s.ID.String()).
					Str("screen", s.Screen.Name).
					Str("dataset", spec.Name).
					Msg("load failed")
				return err
			}
			mu.Lock()
			results[spec.Name] = records
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if !s.Fail(source.FailureMessage) {
			log.Debug().Str("session", s.ID.String()).Msg("late failure ignored")
		}
		return
	}

	if !s.Complete(results) {
		log.Debug().Str("session", s.ID.String()).Msg("late result ignored")
		return
	}
	log.Info().Str("session", s.ID.String()).Str("screen", s.Screen.Name).Msg("screen ready")
}
