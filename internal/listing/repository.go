package listing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendetucasa/intake/pkg/pagination"
	"github.com/vendetucasa/intake/pkg/query"
	"github.com/vendetucasa/intake/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewStore creates a PostgreSQL-backed listing store. The full
// aggregate is stored as a JSONB document; phone, id, and status are
// kept as columns for keying and filtering.
func NewStore(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Store {
	return &repo{
		db:         db,
		logger:     logger.With("system", "listings"),
		pagination: pagination,
	}
}

func (r *repo) Get(ctx context.Context, phone string) (*Listing, error) {
	phone = NormalizePhone(phone)

	q := `SELECT record FROM listings WHERE phone = $1`
	l, err := repository.QueryOne(ctx, r.db, q, []any{phone}, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &l, nil
}

func (r *repo) Put(ctx context.Context, l *Listing) error {
	phone := NormalizePhone(l.Client.Phone)
	l.UpdatedAt = time.Now().UTC()

	record, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}

	q := `UPDATE listings SET record = $1, status = $2, updated_at = $3 WHERE phone = $4`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, record, string(l.Process.Mode), l.UpdatedAt, phone)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Listing, error) {
	if !ValidPhone(cmd.Client.Phone) {
		return nil, ErrInvalidPhone
	}

	l := New(cmd)

	record, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode listing: %w", err)
	}

	q := `INSERT INTO listings(phone, id, status, record, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6)`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q,
			l.Client.Phone, l.ID, string(l.Process.Mode), record, l.CreatedAt, l.UpdatedAt,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("listing created", "id", l.ID, "phone", l.Client.Phone)
	return l, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Phone")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	summaries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}

	result := pagination.NewPageResult(summaries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) All(ctx context.Context) ([]Listing, error) {
	q := `SELECT record FROM listings ORDER BY updated_at DESC`
	return repository.QueryMany(ctx, r.db, q, nil, scanRecord)
}

func (r *repo) Delete(ctx context.Context, phone string) (bool, error) {
	phone = NormalizePhone(phone)

	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE phone = $1`, phone)
	if err != nil {
		return false, fmt.Errorf("delete listing: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete listing: %w", err)
	}

	if rows > 0 {
		r.logger.Info("listing deleted", "phone", phone)
	}
	return rows > 0, nil
}
