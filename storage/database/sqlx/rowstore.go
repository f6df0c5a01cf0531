package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
)

// RowStore keeps every table in the table_rows relation. A row's index is its rank when the
// table is ordered by row_pos; positions are never reused, so deletes leave gaps.
type RowStore struct {
	db *sqlx.DB
}

var _ core.RowStore = (*RowStore)(nil)

func NewRowStore(db *sqlx.DB) *RowStore {
	return &RowStore{db: db}
}

type rowRecord struct {
	Pos   int64  `db:"row_pos"`
	Cells string `db:"cells"`
}

func (s *RowStore) ReadTable(ctx context.Context, name string) ([]core.Row, error) {
	var records []rowRecord
	q := s.db.Rebind("SELECT row_pos, cells FROM table_rows WHERE table_name = ? ORDER BY row_pos")
	if err := s.db.SelectContext(ctx, &records, q, name); err != nil {
		return nil, errors.Wrapf(err, "selecting rows of %s", name)
	}

	rows := make([]core.Row, 0, len(records))
	for _, rec := range records {
		var row core.Row
		if err := sonic.UnmarshalString(rec.Cells, &row); err != nil {
			return nil, errors.Wrapf(err, "decoding %s row %d", name, rec.Pos)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRows inserts rows after the last one in a single transaction.
func (s *RowStore) AppendRows(ctx context.Context, name string, rows ...core.Row) (err error) {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var last int64
	q := tx.Rebind("SELECT COALESCE(MAX(row_pos), -1) FROM table_rows WHERE table_name = ?")
	if err = tx.GetContext(ctx, &last, q, name); err != nil {
		return errors.Wrapf(err, "reading last position of %s", name)
	}

	insert := tx.Rebind("INSERT INTO table_rows (table_name, row_pos, cells) VALUES (?, ?, ?)")
	var cells string
	for i, row := range rows {
		if cells, err = encodeCells(row); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, insert, name, last+1+int64(i), cells); err != nil {
			return errors.Wrapf(err, "inserting into %s", name)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing rows")
	}
	return nil
}

func (s *RowStore) UpdateRow(ctx context.Context, name string, index int, row core.Row) error {
	pos, err := s.position(ctx, name, index)
	if err != nil {
		return err
	}
	cells, err := encodeCells(row)
	if err != nil {
		return err
	}
	q := s.db.Rebind("UPDATE table_rows SET cells = ? WHERE table_name = ? AND row_pos = ?")
	if _, err := s.db.ExecContext(ctx, q, cells, name, pos); err != nil {
		return errors.Wrapf(err, "updating %s row %d", name, index)
	}
	return nil
}

func (s *RowStore) DeleteRow(ctx context.Context, name string, index int) error {
	pos, err := s.position(ctx, name, index)
	if err != nil {
		return err
	}
	q := s.db.Rebind("DELETE FROM table_rows WHERE table_name = ? AND row_pos = ?")
	if _, err := s.db.ExecContext(ctx, q, name, pos); err != nil {
		return errors.Wrapf(err, "deleting %s row %d", name, index)
	}
	return nil
}

// position maps a 0-based row index to its stored row_pos.
func (s *RowStore) position(ctx context.Context, name string, index int) (int64, error) {
	if index < 0 {
		return 0, core.ErrRowNotFound
	}
	var pos int64
	q := s.db.Rebind("SELECT row_pos FROM table_rows WHERE table_name = ? ORDER BY row_pos LIMIT 1 OFFSET ?")
	if err := s.db.GetContext(ctx, &pos, q, name, index); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, core.ErrRowNotFound
		}
		return 0, errors.Wrapf(err, "locating %s row %d", name, index)
	}
	return pos, nil
}

func encodeCells(row core.Row) (string, error) {
	if row == nil {
		row = core.Row{}
	}
	cells, err := sonic.MarshalString(row)
	if err != nil {
		return "", errors.Wrap(err, "encoding cells")
	}
	return cells, nil
}
