package model

// TableSchema describes one fixed-schema table of uint8 columns.
type TableSchema struct {
	Name    string
	Columns []string
}

var (
	// TrainTable holds color training frames as one row per pixel.
	TrainTable = TableSchema{Name: "Train", Columns: []string{"R", "G", "B"}}
	// TestTable holds grayscale test frames as one row per pixel.
	TestTable = TableSchema{Name: "Test", Columns: []string{"L"}}
)

// Tables lists every table the dataset file contains.
func Tables() []TableSchema {
	return []TableSchema{TrainTable, TestTable}
}

// TableStats summarises a stored table.
type TableStats struct {
	Name            string   `json:"name"`
	Columns         []string `json:"columns"`
	Rows            int64    `json:"rows"`
	Blocks          int      `json:"blocks"`
	CompressedBytes int64    `json:"compressed_bytes"`
	Codec           string   `json:"codec"`
	Level           int      `json:"level"`
}
