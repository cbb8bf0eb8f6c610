package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sheldcoop/aoi-app/domain/core"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// SnapshotRepository persists loaded datasets with their derived columns.
// Storing jitter alongside the records is what keeps marker positions
// identical when a restarted server restores the last snapshot.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Migrate creates the snapshot tables if they do not exist.
func (r *SnapshotRepository) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		panel_rows INTEGER NOT NULL,
		panel_cols INTEGER NOT NULL,
		gap_size INTEGER NOT NULL,
		loaded_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshot_records (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		row_index INTEGER NOT NULL,
		defect_type TEXT NOT NULL,
		unit_index_x INTEGER NOT NULL,
		unit_index_y INTEGER NOT NULL,
		quadrant TEXT NOT NULL,
		jitter_x DOUBLE PRECISION NOT NULL,
		jitter_y DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (snapshot_id, row_index)
	);`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save stores a dataset and its derived records in one transaction,
// replacing any previous snapshot for the same source.
func (r *SnapshotRepository) Save(ctx context.Context, d *defect.Dataset) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE source = $1`, d.Source); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, panel_rows, panel_cols, gap_size, loaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID.String(), d.Source, d.Geometry.Rows, d.Geometry.Cols, d.Geometry.Gap, d.LoadedAt,
	); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO snapshot_records
		 (snapshot_id, row_index, defect_type, unit_index_x, unit_index_y, quadrant, jitter_x, jitter_y)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range d.Records() {
		if _, err := stmt.ExecContext(ctx,
			d.ID.String(), i, rec.DefectType, rec.UnitX, rec.UnitY,
			rec.Quadrant.String(), rec.JitterX, rec.JitterY,
		); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.Printf("[SnapshotRepository] Saved snapshot %s (%d records)", d.ID, d.Len())
	return nil
}

// GetLatest restores the most recently loaded snapshot, jitter included.
func (r *SnapshotRepository) GetLatest(ctx context.Context) (*defect.Dataset, error) {
	var meta struct {
		ID       string    `db:"id"`
		Source   string    `db:"source"`
		Rows     int       `db:"panel_rows"`
		Cols     int       `db:"panel_cols"`
		Gap      int       `db:"gap_size"`
		LoadedAt time.Time `db:"loaded_at"`
	}
	err := r.db.GetContext(ctx, &meta,
		`SELECT id, source, panel_rows, panel_cols, gap_size, loaded_at
		 FROM snapshots ORDER BY loaded_at DESC LIMIT 1`)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var rows []struct {
		DefectType string  `db:"defect_type"`
		UnitX      int     `db:"unit_index_x"`
		UnitY      int     `db:"unit_index_y"`
		Quadrant   string  `db:"quadrant"`
		JitterX    float64 `db:"jitter_x"`
		JitterY    float64 `db:"jitter_y"`
	}
	err = r.db.SelectContext(ctx, &rows,
		`SELECT defect_type, unit_index_x, unit_index_y, quadrant, jitter_x, jitter_y
		 FROM snapshot_records WHERE snapshot_id = $1 ORDER BY row_index`,
		meta.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot records: %w", err)
	}

	records := make([]defect.Record, len(rows))
	for i, row := range rows {
		records[i] = defect.Record{
			DefectType: row.DefectType,
			UnitX:      row.UnitX,
			UnitY:      row.UnitY,
			Quadrant:   panel.Quadrant(row.Quadrant),
			JitterX:    row.JitterX,
			JitterY:    row.JitterY,
		}
	}

	id, err := core.ParseDatasetID(meta.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot row: %w", err)
	}

	g := panel.Geometry{Rows: meta.Rows, Cols: meta.Cols, Gap: meta.Gap}
	return defect.Restore(id, meta.Source, g, meta.LoadedAt, records), nil
}
