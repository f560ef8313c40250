package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/shieldsweeper/internal/repository"
)

var ErrNoStore = errors.New("records store is disabled")

type RecordStore interface {
	ListRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error)
	Highscores(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error)
}

type RecordsHandler struct {
	log   *logrus.Logger
	store RecordStore
}

// NewRecordsHandler serves finished games from store. A nil store answers
// every request with 503.
func NewRecordsHandler(log *logrus.Logger, store RecordStore) *RecordsHandler {
	return &RecordsHandler{log: log, store: store}
}

func (h RecordsHandler) filter(w http.ResponseWriter, r *http.Request) (repository.RecordFilter, bool) {
	var filter repository.RecordFilter
	if h.store == nil {
		sendError(w, h.log, http.StatusServiceUnavailable, ErrNoStore)
		return filter, false
	}
	dto, err := ParseRecordsQuery(r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return filter, false
	}
	filter.Limit = dto.Limit
	if dto.Outcome != "" {
		won := dto.Outcome == "won"
		filter.Won = &won
	}
	if dto.Layout != "" {
		filter.Layout = &dto.Layout
	}
	return filter, true
}

func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	records, err := h.store.ListRecords(r.Context(), filter)
	if errors.Is(err, ErrNoStore) {
		sendError(w, h.log, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to list records")
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	sendJSONOrLog(w, h.log, records)
}

func (h RecordsHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	records, err := h.store.Highscores(r.Context(), filter)
	if errors.Is(err, ErrNoStore) {
		sendError(w, h.log, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	sendJSONOrLog(w, h.log, records)
}
