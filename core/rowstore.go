package core

import (
	"context"

	"github.com/pkg/errors"
)

// Table names.
const (
	TableCourses     = "Courses"
	TableClasses     = "Classes"
	TableSessions    = "ClassSessions"
	TableAttendance  = "Attendance"
	TableEnrollments = "Enrollments"
	TableTeachers    = "Teachers"
)

var ErrRowNotFound = errors.New("row index out of range")

// Row is one record of a table; cells are positional.
type Row []string

// Cell returns the i-th cell or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Column collects the i-th cell of every row.
func Column(rows []Row, i int) []string {
	col := make([]string, 0, len(rows))
	for _, r := range rows {
		col = append(col, r.Cell(i))
	}
	return col
}

// RowStore is the tabular store. Row indexes are 0-based positions in table order.
type RowStore interface {
	ReadTable(ctx context.Context, name string) ([]Row, error)
	// AppendRows writes all rows or none.
	AppendRows(ctx context.Context, name string, rows ...Row) error
	UpdateRow(ctx context.Context, name string, index int, row Row) error
	DeleteRow(ctx context.Context, name string, index int) error
}
