package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/shieldsweeper/internal/handlers"
	"github.com/vancomm/shieldsweeper/internal/repository"
	"github.com/vancomm/shieldsweeper/internal/session"
)

const recordTimeout = 5 * time.Second

// recordStore reads through to the repository once Start has connected it.
type recordStore struct {
	a *App
}

func (s recordStore) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error) {
	if s.a.repo == nil {
		return nil, handlers.ErrNoStore
	}
	return s.a.repo.ListRecords(ctx, filter)
}

func (s recordStore) Highscores(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error) {
	if s.a.repo == nil {
		return nil, handlers.ErrNoStore
	}
	return s.a.repo.Highscores(ctx, filter)
}

func (a *App) recordResult(res session.Result) {
	if a.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	log := a.log.WithFields(logrus.Fields{
		"session_id": res.SessionID.String(),
		"game":       res.Game,
	})
	_, err := a.repo.CreateRecord(ctx, repository.CreateRecordParams{
		SessionID:      res.SessionID,
		GameNo:         res.Game,
		Layout:         res.Layout,
		Won:            res.Won,
		ElapsedSeconds: res.ElapsedSeconds,
		Revealed:       res.Revealed,
		Flagged:        res.Flagged,
		FinishedAt:     res.FinishedAt,
	})
	if errors.Is(err, repository.ErrDuplicateRecord) {
		log.Debug("record already stored")
		return
	}
	if err != nil {
		log.WithError(err).Error("unable to store record")
	}
}
