package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateRecord = errors.New("record already stored")

// Record is one finished game. In-progress games are never stored.
type Record struct {
	RecordID       int64     `json:"record_id" db:"record_id"`
	SessionID      uuid.UUID `json:"session_id" db:"session_id"`
	GameNo         int       `json:"game_no" db:"game_no"`
	Layout         string    `json:"layout" db:"layout"`
	Won            bool      `json:"won" db:"won"`
	ElapsedSeconds int       `json:"elapsed_seconds" db:"elapsed_seconds"`
	Revealed       int       `json:"revealed" db:"revealed"`
	Flagged        int       `json:"flagged" db:"flagged"`
	FinishedAt     time.Time `json:"finished_at" db:"finished_at"`
}

type CreateRecordParams struct {
	SessionID      uuid.UUID
	GameNo         int
	Layout         string
	Won            bool
	ElapsedSeconds int
	Revealed       int
	Flagged        int
	FinishedAt     time.Time
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// CreateRecord stores a finished game. A second record for the same
// session game returns ErrDuplicateRecord.
func (q Queries) CreateRecord(ctx context.Context, params CreateRecordParams) (*Record, error) {
	rows, _ := q.db.Query(ctx, `
		INSERT INTO game_record (
			session_id, game_no, layout, won, elapsed_seconds, revealed, flagged, finished_at
		)
		VALUES (
			@session_id, @game_no, @layout, @won, @elapsed_seconds, @revealed, @flagged, @finished_at
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"session_id":      params.SessionID,
			"game_no":         params.GameNo,
			"layout":          params.Layout,
			"won":             params.Won,
			"elapsed_seconds": params.ElapsedSeconds,
			"revealed":        params.Revealed,
			"flagged":         params.Flagged,
			"finished_at":     params.FinishedAt,
		},
	)
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Record])
	if isUniqueViolation(err) {
		return nil, ErrDuplicateRecord
	}
	if err != nil {
		return nil, fmt.Errorf("unable to insert record: %w", err)
	}
	return record, nil
}

type RecordFilter struct {
	Won    *bool
	Layout *string
	Limit  int
}

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Won != nil {
		clauses = append(clauses, "won = @won")
		args["won"] = *f.Won
	}
	if f.Layout != nil {
		clauses = append(clauses, "layout = @layout")
		args["layout"] = *f.Layout
	}
	return strings.Join(clauses, " AND "), args
}

// ListRecords returns finished games, newest first.
func (q Queries) ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error) {
	query := "SELECT * FROM game_record"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY finished_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}

// Highscores returns wins ordered by elapsed time, fastest first.
func (q Queries) Highscores(ctx context.Context, filter RecordFilter) ([]Record, error) {
	won := true
	filter.Won = &won

	whereClause, args := filter.WhereClause()
	query := "SELECT * FROM game_record WHERE " + whereClause +
		" ORDER BY elapsed_seconds, finished_at"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
