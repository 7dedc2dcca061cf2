package repository

import (
	"errors"

	"colorize/internal/model"
)

var (
	// ErrUnknownTable is returned for a table name the dataset file does not contain.
	ErrUnknownTable = errors.New("unknown table")
	// ErrSchemaMismatch is returned when appended columns do not match the table schema.
	ErrSchemaMismatch = errors.New("columns do not match table schema")
	// ErrCorruptBlock is returned when a stored block does not decode to its recorded size.
	ErrCorruptBlock = errors.New("corrupt block")
)

// TableRepository defines append-only access to the columnar dataset tables.
type TableRepository interface {
	// Append adds rows given column-wise (one slice per schema column, all the
	// same length) and returns the table's committed row count afterwards.
	Append(table string, columns [][]uint8) (int64, error)

	// Read operations
	Schema(table string) (model.TableSchema, error)
	RowCount(table string) (int64, error)
	ReadColumns(table string) ([][]uint8, error)
	Stats() ([]model.TableStats, error)
}
