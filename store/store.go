// Package store persists centerline runs in SQLite.
//
// Each run gets a UUID; centerlines, least-cost paths and corridor polygons
// are stored per feature with their OLnFID/OLnSEG join keys and geometry
// as WKB. The schema is managed by embedded golang-migrate migrations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	_ "modernc.org/sqlite"

	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/seedline"
)

// ErrUnknownRun indicates a run id with no stored rows.
var ErrUnknownRun = errors.New("store: unknown run")

// Store wraps a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema. Use ":memory:" for a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pragma: %w", err)
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Row is one stored feature result.
type Row struct {
	Keys     seedline.Keys
	Status   centerline.Status
	Geometry orb.Geometry
}

// SaveRun stores every line under a new run id and returns it.
func (s *Store) SaveRun(ctx context.Context, label string, lines []*seedline.SeedLine) (uuid.UUID, error) {
	id := uuid.New()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (run_id, label) VALUES (?, ?)`, id.String(), label); err != nil {
		return uuid.Nil, fmt.Errorf("store: insert run: %w", err)
	}

	cl, err := tx.PrepareContext(ctx, `INSERT INTO centerlines (run_id, oln_fid, oln_seg, status, geom_wkb) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer cl.Close()
	lcp, err := tx.PrepareContext(ctx, `INSERT INTO lcpaths (run_id, oln_fid, oln_seg, geom_wkb) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer lcp.Close()
	cor, err := tx.PrepareContext(ctx, `INSERT INTO corridors (run_id, oln_fid, oln_seg, geom_wkb) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer cor.Close()

	for _, l := range lines {
		seg := segValue(l.Keys)
		g, err := encode(l.Centerline)
		if err != nil {
			return uuid.Nil, fmt.Errorf("store: encode centerline %d: %w", l.Keys.OLnFID, err)
		}
		if _, err := cl.ExecContext(ctx, id.String(), l.Keys.OLnFID, seg, int(l.Status), g); err != nil {
			return uuid.Nil, fmt.Errorf("store: insert centerline: %w", err)
		}
		if l.LCPath != nil {
			g, err := encode(l.LCPath)
			if err != nil {
				return uuid.Nil, err
			}
			if _, err := lcp.ExecContext(ctx, id.String(), l.Keys.OLnFID, seg, g); err != nil {
				return uuid.Nil, fmt.Errorf("store: insert path: %w", err)
			}
		}
		if poly := l.Corridor.Geometry(); poly != nil {
			g, err := encode(poly)
			if err != nil {
				return uuid.Nil, err
			}
			if _, err := cor.ExecContext(ctx, id.String(), l.Keys.OLnFID, seg, g); err != nil {
				return uuid.Nil, fmt.Errorf("store: insert corridor: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Centerlines returns the centerlines of a run ordered by OLnFID, OLnSEG.
func (s *Store) Centerlines(ctx context.Context, run uuid.UUID) ([]Row, error) {
	return s.query(ctx, run, `SELECT oln_fid, oln_seg, status, geom_wkb FROM centerlines
		WHERE run_id = ? ORDER BY oln_fid, oln_seg`)
}

// Corridors returns the corridor polygons of a run ordered by OLnFID, OLnSEG.
// Status is left zero.
func (s *Store) Corridors(ctx context.Context, run uuid.UUID) ([]Row, error) {
	return s.query(ctx, run, `SELECT oln_fid, oln_seg, 0, geom_wkb FROM corridors
		WHERE run_id = ? ORDER BY oln_fid, oln_seg`)
}

// Runs lists stored run ids, oldest first.
func (s *Store) Runs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY started_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("store: bad run id %q: %w", raw, err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *Store) query(ctx context.Context, run uuid.UUID, q string) ([]Row, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, run.String()).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, run)
	}

	rows, err := s.db.QueryContext(ctx, q, run.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r      Row
			seg    sql.NullInt64
			status int
			blob   []byte
		)
		if err := rows.Scan(&r.Keys.OLnFID, &seg, &status, &blob); err != nil {
			return nil, err
		}
		r.Keys.OLnSEG, r.Keys.HasSEG = seg.Int64, seg.Valid
		r.Status = centerline.Status(status)
		if len(blob) > 0 {
			if r.Geometry, err = wkb.Unmarshal(blob); err != nil {
				return nil, fmt.Errorf("store: decode geometry of %d: %w", r.Keys.OLnFID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func segValue(k seedline.Keys) sql.NullInt64 {
	return sql.NullInt64{Int64: k.OLnSEG, Valid: k.HasSEG}
}

func encode(g orb.Geometry) ([]byte, error) {
	if g == nil {
		return nil, nil
	}
	return wkb.Marshal(g)
}
