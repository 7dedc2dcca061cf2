package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"colorize/internal/model"
	"colorize/internal/repository"
)

// BlockRows caps the number of rows compressed together in one block.
const BlockRows = 1 << 20

// TableRepository implements repository.TableRepository for SQLite.
type TableRepository struct {
	db        *DB
	codec     *blockCodec
	blockRows int
}

// NewTableRepository creates a columnar table repository over db.
func NewTableRepository(db *DB) (*TableRepository, error) {
	codec, err := newBlockCodec(CompressionLevel)
	if err != nil {
		return nil, err
	}
	return &TableRepository{db: db, codec: codec, blockRows: BlockRows}, nil
}

// Close releases the codec. The DB is owned by the caller.
func (r *TableRepository) Close() {
	r.codec.close()
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func loadSchema(q querier, table string) (model.TableSchema, int64, error) {
	var columns string
	var rows int64
	err := q.QueryRow(`SELECT columns, row_count FROM dataset_tables WHERE name = ?`, table).Scan(&columns, &rows)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TableSchema{}, 0, fmt.Errorf("%w: %s", repository.ErrUnknownTable, table)
	}
	if err != nil {
		return model.TableSchema{}, 0, fmt.Errorf("failed to load table %s: %w", table, err)
	}
	return model.TableSchema{Name: table, Columns: strings.Split(columns, ",")}, rows, nil
}

// Append writes all rows in one transaction: blocks and their column chunks
// first, then the table's committed row count is advanced.
func (r *TableRepository) Append(table string, columns [][]uint8) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	schema, committed, err := loadSchema(tx, table)
	if err != nil {
		return 0, err
	}
	if len(columns) != len(schema.Columns) {
		return 0, fmt.Errorf("%w: %s has %d columns, got %d", repository.ErrSchemaMismatch, table, len(schema.Columns), len(columns))
	}
	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return 0, fmt.Errorf("%w: column %s has %d values, expected %d", repository.ErrSchemaMismatch, schema.Columns[i], len(col), rows)
		}
	}
	if rows == 0 {
		return committed, nil
	}

	blockStmt, err := tx.Prepare(`
		INSERT INTO blocks (table_name, batch_id, first_row, row_count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer blockStmt.Close()

	chunkStmt, err := tx.Prepare(`INSERT INTO chunks (block_id, column_index, data) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer chunkStmt.Close()

	batchID := uuid.NewString()
	for start := 0; start < rows; start += r.blockRows {
		end := min(start+r.blockRows, rows)

		result, err := blockStmt.Exec(table, batchID, committed+int64(start), end-start)
		if err != nil {
			return 0, fmt.Errorf("failed to insert block: %w", err)
		}
		blockID, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get last insert id: %w", err)
		}

		for ci, col := range columns {
			if _, err := chunkStmt.Exec(blockID, ci, r.codec.encode(col[start:end])); err != nil {
				return 0, fmt.Errorf("failed to insert chunk: %w", err)
			}
		}
	}

	total := committed + int64(rows)
	if _, err := tx.Exec(`UPDATE dataset_tables SET row_count = ? WHERE name = ?`, total, table); err != nil {
		return 0, fmt.Errorf("failed to advance row count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return total, nil
}

// Schema returns the column layout of a table.
func (r *TableRepository) Schema(table string) (model.TableSchema, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	schema, _, err := loadSchema(r.db.Conn(), table)
	return schema, err
}

// RowCount returns the committed number of rows in a table.
func (r *TableRepository) RowCount(table string) (int64, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	_, rows, err := loadSchema(r.db.Conn(), table)
	return rows, err
}

// ReadColumns decompresses a whole table, one slice per column, in insertion order.
func (r *TableRepository) ReadColumns(table string) ([][]uint8, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	schema, total, err := loadSchema(r.db.Conn(), table)
	if err != nil {
		return nil, err
	}

	columns := make([][]uint8, len(schema.Columns))
	for i := range columns {
		columns[i] = make([]uint8, 0, total)
	}

	rows, err := r.db.Conn().Query(`
		SELECT b.id, b.row_count, c.column_index, c.data
		FROM blocks b JOIN chunks c ON c.block_id = b.id
		WHERE b.table_name = ?
		ORDER BY b.id, c.column_index
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blockID, rowCount int64
		var columnIndex int
		var data []byte
		if err := rows.Scan(&blockID, &rowCount, &columnIndex, &data); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if columnIndex < 0 || columnIndex >= len(columns) {
			return nil, fmt.Errorf("%w: block %d has column %d", repository.ErrCorruptBlock, blockID, columnIndex)
		}

		values, err := r.codec.decode(data, int(rowCount))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", blockID, err)
		}
		if int64(len(values)) != rowCount {
			return nil, fmt.Errorf("%w: block %d column %d has %d rows, expected %d", repository.ErrCorruptBlock, blockID, columnIndex, len(values), rowCount)
		}
		columns[columnIndex] = append(columns[columnIndex], values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	for i, col := range columns {
		if int64(len(col)) != total {
			return nil, fmt.Errorf("%w: column %s has %d rows, table records %d", repository.ErrCorruptBlock, schema.Columns[i], len(col), total)
		}
	}
	return columns, nil
}

// Stats summarises every table in the file.
func (r *TableRepository) Stats() ([]model.TableStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT t.name, t.columns, t.codec, t.level, t.row_count,
			(SELECT COUNT(*) FROM blocks b WHERE b.table_name = t.name),
			(SELECT COALESCE(SUM(LENGTH(c.data)), 0) FROM chunks c JOIN blocks b ON c.block_id = b.id WHERE b.table_name = t.name)
		FROM dataset_tables t
		ORDER BY t.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []model.TableStats
	for rows.Next() {
		var s model.TableStats
		var columns string
		if err := rows.Scan(&s.Name, &columns, &s.Codec, &s.Level, &s.Rows, &s.Blocks, &s.CompressedBytes); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		s.Columns = strings.Split(columns, ",")
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
