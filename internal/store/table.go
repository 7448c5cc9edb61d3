// Package store issues the SQL behind every API route. Each operation checks
// out one pooled connection, runs its statements on it and hands it back on
// every exit path.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an id addresses no row.
var ErrNotFound = errors.New("record not found")

// Filter narrows a list to rows whose Column equals Value.
type Filter struct {
	Column string
	Value  any
}

// Order is the fixed sort applied to a table listing.
type Order struct {
	Column string
	Desc   bool
}

// Table is the generic CRUD accessor for one resource table.
type Table[T any] struct {
	db      *gorm.DB
	name    string
	order   Order
	columns []string
	prepare func(*T)
}

// NewTable describes a table by its name, list order and the columns an
// update replaces.
func NewTable[T any](db *gorm.DB, name string, order Order, columns ...string) *Table[T] {
	return &Table[T]{db: db, name: name, order: order, columns: columns}
}

// WithPrepare sets a hook applied to every row before it is inserted.
func (t *Table[T]) WithPrepare(fn func(*T)) *Table[T] {
	t.prepare = fn
	return t
}

// withConn runs fn on a single connection checked out of the pool. The
// connection goes back to the pool when fn returns, panics included.
func withConn(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{}))
	})
}

// List returns every row matching filters in the table's fixed order.
func (t *Table[T]) List(ctx context.Context, filters ...Filter) ([]T, error) {
	rows := make([]T, 0)
	err := withConn(ctx, t.db, func(tx *gorm.DB) error {
		q := tx.Model(new(T))
		for _, f := range filters {
			q = q.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
		}
		return q.
			Order(clause.OrderByColumn{Column: clause.Column{Name: t.order.Column}, Desc: t.order.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: t.order.Desc}).
			Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return rows, nil
}

// Get loads one row by id.
func (t *Table[T]) Get(ctx context.Context, id uint) (*T, error) {
	row := new(T)
	err := withConn(ctx, t.db, func(tx *gorm.DB) error {
		return tx.First(row, id).Error
	})
	if err != nil {
		return nil, t.wrap("get", err)
	}
	return row, nil
}

// Create inserts row and reloads it so database defaults are visible.
func (t *Table[T]) Create(ctx context.Context, row *T) error {
	err := withConn(ctx, t.db, func(tx *gorm.DB) error {
		return t.create(tx, row)
	})
	if err != nil {
		return t.wrap("create", err)
	}
	return nil
}

// Update replaces the editable columns of row id with the values in row,
// then reloads row from the database.
func (t *Table[T]) Update(ctx context.Context, id uint, row *T) error {
	err := withConn(ctx, t.db, func(tx *gorm.DB) error {
		return t.update(tx, id, row, t.columns)
	})
	if err != nil {
		return t.wrap("update", err)
	}
	return nil
}

// Delete removes row id.
func (t *Table[T]) Delete(ctx context.Context, id uint) error {
	err := withConn(ctx, t.db, func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return t.wrap("delete", err)
	}
	return nil
}

func (t *Table[T]) create(tx *gorm.DB, row *T) error {
	if t.prepare != nil {
		t.prepare(row)
	}
	if err := tx.Create(row).Error; err != nil {
		return err
	}
	// row now carries its primary key, which First uses as the condition.
	return tx.First(row).Error
}

func (t *Table[T]) update(tx *gorm.DB, id uint, row *T, columns []string) error {
	res := tx.Model(new(T)).Where("id = ?", id).Select(columns).Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	fresh := new(T)
	if err := tx.First(fresh, id).Error; err != nil {
		return err
	}
	*row = *fresh
	return nil
}

func (t *Table[T]) wrap(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, t.name, err)
}
