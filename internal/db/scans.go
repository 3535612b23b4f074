package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/linda/internal/lidarsim"
	"github.com/banshee-data/linda/internal/regression"
)

// ErrScanNotFound is returned when a scan ID has no row.
var ErrScanNotFound = errors.New("scan not found")

// ScanRecord is a stored scan with the pose it was taken from.
type ScanRecord struct {
	ID         string
	Tick       int
	Pose       lidarsim.Pose
	NoiseSigma float64
	CreatedAt  time.Time
	Scan       lidarsim.Scan
}

// FitRecord is the posterior mean fitted to a window of a stored scan.
type FitRecord struct {
	ScanID string
	Window float64
	Mean   [3]float64
}

// RecordScan stores scan and its samples in one transaction and returns the
// new scan ID.
func (db *DB) RecordScan(tick int, pose lidarsim.Pose, noiseSigma float64, scan lidarsim.Scan) (string, error) {
	if len(scan.Angles) != len(scan.Distances) {
		return "", fmt.Errorf("scan has %d angles but %d distances", len(scan.Angles), len(scan.Distances))
	}

	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO scans (id, tick, pose_x, pose_y, pose_heading, noise_sigma, sample_count, created_unix_nanos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, tick, pose.X, pose.Y, pose.Heading, noiseSigma, scan.Len(), time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert scan: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO scan_samples (scan_id, idx, angle, distance) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i := range scan.Angles {
		if _, err := stmt.Exec(id, i, scan.Angles[i], scan.Distances[i]); err != nil {
			return "", fmt.Errorf("failed to insert sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit scan: %w", err)
	}
	return id, nil
}

// GetScan loads a scan and its samples in sampling order.
func (db *DB) GetScan(id string) (*ScanRecord, error) {
	rec := &ScanRecord{ID: id}
	var created int64

	err := db.QueryRow(`
		SELECT tick, pose_x, pose_y, pose_heading, noise_sigma, created_unix_nanos
		FROM scans WHERE id = ?`, id,
	).Scan(&rec.Tick, &rec.Pose.X, &rec.Pose.Y, &rec.Pose.Heading, &rec.NoiseSigma, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scan: %w", err)
	}
	rec.CreatedAt = time.Unix(0, created)

	rows, err := db.Query(`SELECT angle, distance FROM scan_samples WHERE scan_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var angle, dist float64
		if err := rows.Scan(&angle, &dist); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		rec.Scan.Angles = append(rec.Scan.Angles, angle)
		rec.Scan.Distances = append(rec.Scan.Distances, dist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate samples: %w", err)
	}

	return rec, nil
}

// ListScanIDs returns scan IDs ordered by tick, at most limit entries
// (limit <= 0 means all).
func (db *DB) ListScanIDs(limit int) ([]string, error) {
	query := `SELECT id FROM scans ORDER BY tick, created_unix_nanos`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecordFit stores (or replaces) the fit for a scan.
func (db *DB) RecordFit(scanID string, window float64, posterior regression.Gaussian) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO scan_fits (scan_id, fit_window, c0, c1, c2)
		VALUES (?, ?, ?, ?, ?)`,
		scanID, window, posterior.Mean[0], posterior.Mean[1], posterior.Mean[2],
	)
	if err != nil {
		return fmt.Errorf("failed to record fit for scan %s: %w", scanID, err)
	}
	return nil
}

// GetFit returns the stored fit for a scan.
func (db *DB) GetFit(scanID string) (*FitRecord, error) {
	fit := &FitRecord{ScanID: scanID}
	err := db.QueryRow(`SELECT fit_window, c0, c1, c2 FROM scan_fits WHERE scan_id = ?`, scanID).
		Scan(&fit.Window, &fit.Mean[0], &fit.Mean[1], &fit.Mean[2])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no fit for %s", ErrScanNotFound, scanID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fit: %w", err)
	}
	return fit, nil
}
