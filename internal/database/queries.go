package database

import (
	"database/sql"
	"time"

	"ping-tool/internal/models"
)

// SaveAnalysis records the summary of one analyzed file. The
// per-observation detail is deliberately not stored; the index exists so
// repeated runs can show history, not to replace the log files.
func (db *DB) SaveAnalysis(a *models.Analysis) error {
	query := `
        INSERT INTO analyses (analyzed_at, filename, target, total_pings, transmitted,
            packet_loss, min_rtt_ms, avg_rtt_ms, max_rtt_ms, missing_count, abnormal_count, has_timestamps)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := db.Exec(query,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		a.Filename,
		a.Target,
		a.Received,
		a.Transmitted,
		a.PacketLoss,
		a.Latency.Min,
		a.Latency.Avg,
		a.Latency.Max,
		len(a.MissingSeq),
		len(a.AbnormalIntervals),
		a.HasTimestamps,
	)
	return err
}

// GetRecent retrieves the most recent analysis records
func (db *DB) GetRecent(limit int) ([]models.AnalysisRecord, error) {
	query := `
        SELECT analyzed_at, filename, target, total_pings, transmitted, packet_loss,
            min_rtt_ms, avg_rtt_ms, max_rtt_ms, missing_count, abnormal_count, has_timestamps
        FROM analyses
        ORDER BY analyzed_at DESC, id DESC
        LIMIT ?
    `

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		var minRTT, avgRTT, maxRTT sql.NullFloat64
		err := rows.Scan(&r.AnalyzedAt, &r.Filename, &r.Target, &r.TotalPings, &r.Transmitted,
			&r.PacketLoss, &minRTT, &avgRTT, &maxRTT, &r.MissingCount, &r.AbnormalCount, &r.HasTimestamps)
		if err != nil {
			continue
		}
		if minRTT.Valid {
			r.MinRTT = minRTT.Float64
		}
		if avgRTT.Valid {
			r.AvgRTT = avgRTT.Float64
		}
		if maxRTT.Valid {
			r.MaxRTT = maxRTT.Float64
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
