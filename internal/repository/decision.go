package repository

import (
	"context"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
)

var decisionColumns = []string{"id", "decision_date", "debt_amount", "fine_amount"}

type DecisionRepository interface {
	// Insert appends a row and returns its store-assigned id.
	Insert(ctx context.Context, decisionDate, debtAmount, fineAmount *string) (int64, error)
	// GetByID returns found == false with a nil error when id does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Decision, bool, error)
	// GetByIDs returns the subset of ids that exist, ordered by id.
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Decision, error)
	List(ctx context.Context) ([]*entity.Decision, error)
	Count(ctx context.Context) (int, error)
}

type decisionRepository struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewDecisionRepository(drv *entsql.Driver, logger *slog.Logger) DecisionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &decisionRepository{
		drv:    drv,
		logger: logger,
	}
}

func (r *decisionRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.drv.Dialect())
}

func (r *decisionRepository) Insert(ctx context.Context, decisionDate, debtAmount, fineAmount *string) (int64, error) {
	query, args := r.builder().
		Insert(decisionsTable).
		Columns("decision_date", "debt_amount", "fine_amount").
		Values(nullable(decisionDate), nullable(debtAmount), nullable(fineAmount)).
		Returning("id").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		r.logger.Error("failed to insert decision", "error", err)
		return 0, common.DatabaseError("insert decision", err)
	}
	defer rows.Close()

	var id int64
	if !rows.Next() {
		err := rows.Err()
		if err == nil {
			err = common.ErrNotFound
		}
		r.logger.Error("insert returned no id", "error", err)
		return 0, common.DatabaseError("insert decision", err)
	}
	if err := rows.Scan(&id); err != nil {
		return 0, common.DatabaseError("scan inserted id", err)
	}
	return id, nil
}

func (r *decisionRepository) GetByID(ctx context.Context, id int64) (*entity.Decision, bool, error) {
	b := r.builder()
	query, args := b.Select(decisionColumns...).
		From(b.Table(decisionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	recs, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to get decision", "id", id, "error", err)
		return nil, false, common.DatabaseError("get decision", err)
	}
	if len(recs) == 0 {
		return nil, false, nil
	}
	return recs[0], true, nil
}

func (r *decisionRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Decision, error) {
	if len(ids) == 0 {
		return []*entity.Decision{}, nil
	}
	in := make([]any, len(ids))
	for i, id := range ids {
		in[i] = id
	}

	b := r.builder()
	query, args := b.Select(decisionColumns...).
		From(b.Table(decisionsTable)).
		Where(entsql.In("id", in...)).
		OrderBy("id").
		Query()

	recs, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to get decisions", "ids", ids, "error", err)
		return nil, common.DatabaseError("get decisions", err)
	}
	return recs, nil
}

func (r *decisionRepository) List(ctx context.Context) ([]*entity.Decision, error) {
	b := r.builder()
	query, args := b.Select(decisionColumns...).
		From(b.Table(decisionsTable)).
		OrderBy("id").
		Query()

	recs, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to list decisions", "error", err)
		return nil, common.DatabaseError("list decisions", err)
	}
	return recs, nil
}

func (r *decisionRepository) Count(ctx context.Context) (int, error) {
	b := r.builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(decisionsTable)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, common.DatabaseError("count decisions", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, common.DatabaseError("scan count", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, common.DatabaseError("count decisions", err)
	}
	return n, nil
}

func (r *decisionRepository) query(ctx context.Context, query string, args []any) ([]*entity.Decision, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Decision, 0)
	for rows.Next() {
		var (
			d                entity.Decision
			date, debt, fine entsql.NullString
		)
		if err := rows.Scan(&d.ID, &date, &debt, &fine); err != nil {
			return nil, err
		}
		d.DecisionDate = fromNull(date)
		d.DebtAmount = fromNull(debt)
		d.FineAmount = fromNull(fine)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func nullable(s *string) entsql.NullString {
	if s == nil {
		return entsql.NullString{}
	}
	return entsql.NullString{String: *s, Valid: true}
}

func fromNull(ns entsql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
