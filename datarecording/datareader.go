package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// QueryParams selects and pages the rows of one table.
type QueryParams struct {
	// Where is an SQL condition without the WHERE keyword, for example
	// "GameTicks > ? AND Paused = ?".
	Where string
	Args  []any

	// OrderBy is an SQL ordering without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero returns all rows and ignores
	// Offset.
	Limit  int
	Offset int
}

func (p QueryParams) where() string {
	if p.Where == "" {
		return ""
	}

	return " WHERE " + p.Where
}

// SampleQuery selects recorded timer samples.
type SampleQuery struct {
	// Timer keeps the samples of one timer. Empty keeps all.
	Timer string

	// PausedOnly keeps the samples taken while game ticks were frozen.
	PausedOnly bool

	Limit  int
	Offset int
}

func (q SampleQuery) params() QueryParams {
	var (
		conds []string
		args  []any
	)

	if q.Timer != "" {
		conds = append(conds, "Timer = ?")
		args = append(args, q.Timer)
	}

	if q.PausedOnly {
		conds = append(conds, "Paused = ?")
		args = append(args, true)
	}

	return QueryParams{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: "rowid",
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

// SampleSummary aggregates the samples of one timer.
type SampleSummary struct {
	Timer     string
	Samples   int
	Paused    int
	Frames    uint64
	GameTicks uint32
}

// SQLiteReader reads recordings written by SQLiteWriter.
type SQLiteReader struct {
	*sql.DB

	typeMap map[string]reflect.Type
}

// NewReader opens a recording file. The sample table is mapped already.
func NewReader(filename string) (*SQLiteReader, error) {
	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a reader on an open database.
func NewReaderWithDB(db *sql.DB) *SQLiteReader {
	r := &SQLiteReader{
		DB:      db,
		typeMap: make(map[string]reflect.Type),
	}
	r.MapTable(SampleTable, SampleRow{})

	return r
}

// MapTable sets the struct that the rows of a table are scanned into.
func (r *SQLiteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

// ListTables returns the tables stored in the file, in name order.
func (r *SQLiteReader) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string

		err = rows.Scan(&name)
		if err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// Query returns pointers to the mapped struct for the selected rows, and the
// number of rows matching the condition before paging.
func (r *SQLiteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", tableName)
	}

	var total int

	err := r.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+params.where(),
		params.Args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	var b strings.Builder

	b.WriteString("SELECT * FROM " + tableName + params.where())

	if params.OrderBy != "" {
		b.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	rows, err := r.QueryContext(ctx, b.String(), params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := scanStructs(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// Samples returns the selected samples in recording order, and the number of
// samples matching before paging.
func (r *SQLiteReader) Samples(
	ctx context.Context,
	q SampleQuery,
) ([]SampleRow, int, error) {
	results, total, err := r.Query(ctx, SampleTable, q.params())
	if err != nil {
		return nil, 0, err
	}

	samples := make([]SampleRow, len(results))
	for i, res := range results {
		samples[i] = *res.(*SampleRow)
	}

	return samples, total, nil
}

// Summarize aggregates the samples of every recorded timer, in name order.
// Frames sums the elapsed frames of all samples, paused or not.
func (r *SQLiteReader) Summarize(ctx context.Context) ([]SampleSummary, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT Timer, COUNT(*), SUM(Paused), SUM(Elapsed), MAX(GameTicks)
		FROM `+SampleTable+`
		GROUP BY Timer
		ORDER BY Timer`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []SampleSummary

	for rows.Next() {
		var s SampleSummary

		err = rows.Scan(&s.Timer, &s.Samples, &s.Paused, &s.Frames, &s.GameTicks)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// scanStructs scans every row into a new struct of the given type, matching
// columns to fields by name. Unknown columns are skipped.
func scanStructs(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		ptr := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			field := ptr.Elem().FieldByName(col)
			if field.IsValid() {
				targets[i] = field.Addr().Interface()
				continue
			}

			targets[i] = new(any)
		}

		err = rows.Scan(targets...)
		if err != nil {
			return nil, err
		}

		results = append(results, ptr.Interface())
	}

	return results, rows.Err()
}
