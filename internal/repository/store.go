package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kagretirement/registry/api/internal/database"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate value for unique field")

// Store groups the entity repositories over one database handle and lets
// callers run several repository calls as a single unit of work.
type Store interface {
	Districts() DistrictRepository
	Sections() SectionRepository
	Pastors() PastorRepository

	// WithTx runs fn inside one transaction. The Store passed to fn is bound
	// to that transaction; calling WithTx on it again reuses the same one.
	// Any error returned by fn rolls back every write made through it.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// store is the concrete implementation of Store.
type store struct {
	db   *database.Database
	q    database.DBTX
	inTx bool
}

// NewStore creates a new Store backed by db.
func NewStore(db *database.Database) Store {
	return &store{
		db: db,
		q:  db.SQL,
	}
}

func (s *store) Districts() DistrictRepository {
	return &districtRepository{q: s.q, dialect: s.db.Dialect}
}

func (s *store) Sections() SectionRepository {
	return &sectionRepository{q: s.q, dialect: s.db.Dialect}
}

func (s *store) Pastors() PastorRepository {
	return &pastorRepository{q: s.q, dialect: s.db.Dialect}
}

func (s *store) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&store{db: s.db, q: tx, inTx: true})
	})
}
