// ABOUTME: SQLite-backed ingestion event log for the progress dashboard.
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support.

package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// Logger records file ingestion events for later stats queries.
type Logger struct {
	conn *sql.DB
	path string
}

// DefaultDBPath returns the analytics database path under the XDG data dir.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "studybuddy", "analytics.db")
}

// OpenLogger opens or creates the analytics database at the given path.
func OpenLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	l := &Logger{conn: conn, path: path}
	if err := l.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

// OpenLoggerInMemory creates an in-memory analytics database (for testing)
func OpenLoggerInMemory() (*Logger, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	l := &Logger{conn: conn, path: ":memory:"}
	if err := l.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

func (l *Logger) initSchema() error {
	_, err := l.conn.Exec(`
		CREATE TABLE IF NOT EXISTS ingestion_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT,
			file_type TEXT,
			file_size_bytes INTEGER,
			timestamp TEXT,
			status TEXT
		)
	`)
	return err
}

// Close closes the underlying database connection.
func (l *Logger) Close() error {
	return l.conn.Close()
}

// LogIngestion records one ingestion event. The file type is derived from
// the filename extension, lowercased without the leading dot.
func (l *Logger) LogIngestion(filename string, sizeBytes int64, status string) error {
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	_, err := l.conn.Exec(
		`INSERT INTO ingestion_logs (filename, file_type, file_size_bytes, timestamp, status)
		 VALUES (?, ?, ?, ?, ?)`,
		filename, fileType, sizeBytes, timestamp, status,
	)
	if err != nil {
		return fmt.Errorf("failed to log ingestion: %w", err)
	}
	return nil
}

// IngestionStats returns the count of successfully ingested files per file type.
func (l *Logger) IngestionStats() (map[string]int, error) {
	rows, err := l.conn.Query(
		`SELECT file_type, COUNT(*) FROM ingestion_logs WHERE status = 'success' GROUP BY file_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var fileType string
		var count int
		if err := rows.Scan(&fileType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[fileType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stats rows: %w", err)
	}
	return stats, nil
}

// Reset deletes all ingestion log rows.
func (l *Logger) Reset() error {
	if _, err := l.conn.Exec(`DELETE FROM ingestion_logs`); err != nil {
		return fmt.Errorf("failed to delete ingestion logs: %w", err)
	}
	return nil
}
