package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// LoadLog 一次加载的履历记录
type LoadLog struct {
	ID           int64    `json:"id"`
	TriggerType  string   `json:"triggerType"` // startup / reload
	FileCount    int      `json:"fileCount"`
	RowCount     int      `json:"rowCount"`
	FailedCount  int      `json:"failedCount"`
	FailedFiles  []string `json:"failedFiles"`
	DurationMs   int64    `json:"durationMs"`
	LatestPeriod string   `json:"latestPeriod"`
	CreatedAt    string   `json:"createdAt"`
}

// RecordLoad 写入一条加载履历
func (s *Store) RecordLoad(entry LoadLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO load_logs (trigger_type, file_count, row_count, failed_count, failed_files, duration_ms, latest_period)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.TriggerType, entry.FileCount, entry.RowCount, entry.FailedCount,
		strings.Join(entry.FailedFiles, ";"), entry.DurationMs, entry.LatestPeriod)
	if err != nil {
		return 0, fmt.Errorf("failed to record load log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get load log id: %w", err)
	}
	return id, nil
}

// LastLoad 取最近一次加载履历，无记录时返回 nil
func (s *Store) LastLoad() (*LoadLog, error) {
	row := s.db.QueryRow(`
		SELECT id, trigger_type, file_count, row_count, failed_count, failed_files, duration_ms, latest_period, created_at
		FROM load_logs ORDER BY id DESC LIMIT 1
	`)
	entry, err := scanLoadLog(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last load log: %w", err)
	}
	return entry, nil
}

// ListLoads 按时间倒序取加载履历
func (s *Store) ListLoads(limit int) ([]LoadLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, trigger_type, file_count, row_count, failed_count, failed_files, duration_ms, latest_period, created_at
		FROM load_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load logs: %w", err)
	}
	defer rows.Close()

	var result []LoadLog
	for rows.Next() {
		entry, err := scanLoadLog(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load log: %w", err)
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}

func scanLoadLog(scan func(dest ...interface{}) error) (*LoadLog, error) {
	var entry LoadLog
	var failedFiles string
	err := scan(&entry.ID, &entry.TriggerType, &entry.FileCount, &entry.RowCount,
		&entry.FailedCount, &failedFiles, &entry.DurationMs, &entry.LatestPeriod, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	if failedFiles != "" {
		entry.FailedFiles = strings.Split(failedFiles, ";")
	}
	return &entry, nil
}
