package datarecording

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseOptions locates a ClickHouse server.
type ClickHouseOptions struct {
	Addr     string
	Database string
	Username string
	Password string

	// BatchSize is the number of buffered rows that triggers a flush. Zero
	// uses the default.
	BatchSize int
}

// ClickHouseRecorder buffers sample rows and writes them to ClickHouse in
// bulk. It only stores SampleRow tables.
type ClickHouseRecorder struct {
	conn      driver.Conn
	mu        sync.Mutex
	batchSize int

	tables     map[string][]SampleRow
	entryCount int
}

// NewClickHouseRecorder connects to the server and checks that it answers.
func NewClickHouseRecorder(opts ClickHouseOptions) (*ClickHouseRecorder, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      10 * time.Second,
		MaxOpenConns:     2,
		MaxIdleConns:     2,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to ClickHouse: %w", err)
	}

	err = conn.Ping(context.Background())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging ClickHouse: %w", err)
	}

	return NewClickHouseRecorderWithConn(conn, opts.BatchSize), nil
}

// NewClickHouseRecorderWithConn creates a recorder on an open connection.
func NewClickHouseRecorderWithConn(
	conn driver.Conn,
	batchSize int,
) *ClickHouseRecorder {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &ClickHouseRecorder{
		conn:      conn,
		batchSize: batchSize,
		tables:    make(map[string][]SampleRow),
	}
}

func sampleTableSQL(tableName string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			Timer String,
			Frame UInt16,
			Coarse UInt32,
			Precise UInt32,
			GameTicks UInt32,
			Elapsed UInt32,
			Paused Bool
		) ENGINE = MergeTree()
		ORDER BY (Timer, Coarse)
	`, tableName)
}

// CreateTable creates a table for SampleRow entries.
func (r *ClickHouseRecorder) CreateTable(tableName string, sampleEntry any) {
	if _, ok := sampleEntry.(SampleRow); !ok {
		panic(fmt.Sprintf("unsupported entry type %T", sampleEntry))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.conn.Exec(context.Background(), sampleTableSQL(tableName))
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	if _, exists := r.tables[tableName]; !exists {
		r.tables[tableName] = nil
	}
}

// InsertData buffers a row and flushes once the batch is full.
func (r *ClickHouseRecorder) InsertData(tableName string, entry any) {
	row, ok := entry.(SampleRow)
	if !ok {
		panic(fmt.Sprintf("unsupported entry type %T", entry))
	}

	r.mu.Lock()

	rows, exists := r.tables[tableName]
	if !exists {
		r.mu.Unlock()
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	r.tables[tableName] = append(rows, row)
	r.entryCount++
	full := r.entryCount >= r.batchSize

	r.mu.Unlock()

	if full {
		r.Flush()
	}
}

// ListTables returns the created tables in name order.
func (r *ClickHouseRecorder) ListTables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}

	sort.Strings(tables)

	return tables
}

// Flush sends every buffered row, one batch per table.
func (r *ClickHouseRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryCount == 0 {
		return
	}

	ctx := context.Background()

	for tableName, rows := range r.tables {
		if len(rows) == 0 {
			continue
		}

		r.flushTable(ctx, tableName, rows)
		r.tables[tableName] = rows[:0]
	}

	r.entryCount = 0
}

func (r *ClickHouseRecorder) flushTable(
	ctx context.Context,
	tableName string,
	rows []SampleRow,
) {
	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
	}

	for _, row := range rows {
		err = batch.Append(
			row.Timer,
			row.Frame,
			row.Coarse,
			row.Precise,
			row.GameTicks,
			row.Elapsed,
			row.Paused,
		)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}
}

// Close flushes the buffered rows and closes the connection.
func (r *ClickHouseRecorder) Close() error {
	r.Flush()

	err := r.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}

	return nil
}
