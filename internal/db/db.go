// Package db is harness-side persistence: it archives in-memory snapshots
// to a libSQL/SQLite database so benchmark runs can be inspected after the
// fact. The tool core never touches it.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	// Registers "libsql" with database/sql for remote URLs
	// (libsql://, https://, wss://).
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	// Pure-Go SQLite driver; libsql-client-go delegates file: URLs to it.
	_ "modernc.org/sqlite"

	"agentbench/internal/store"
)

// driverName is the database/sql driver to use. Package-level for tests;
// production always uses "libsql".
var driverName = "libsql"

// Connect opens a libSQL database connection and verifies it with a ping.
//
// Supported URL schemes:
//
//	Local file:  "file:path/to/archive.db"
//	Remote Turso: "libsql://[db-name].turso.io?authToken=[token]"
func Connect(dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL must not be empty")
	}

	conn, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open libsql: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return conn, nil
}

// ExportSnapshot writes every record of the snapshot into the archive under
// a run label. Records land in one relation keyed by (run, table, record id)
// with the record body as JSON; the export is all-or-nothing.
func ExportSnapshot(conn *sql.DB, run string, snap store.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot must not be nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("export begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`CREATE TABLE IF NOT EXISTS snapshot_records (
		run TEXT NOT NULL,
		table_name TEXT NOT NULL,
		record_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (run, table_name, record_id)
	)`)
	if err != nil {
		return fmt.Errorf("export schema: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO snapshot_records
		(run, table_name, record_id, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("export prepare: %w", err)
	}
	defer stmt.Close()

	for _, table := range sortedKeys(snap) {
		for _, id := range snap.IDs(table) {
			rec, _ := snap.Lookup(table, id)
			payload, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("export marshal %s/%s: %w", table, id, err)
			}
			if _, err := stmt.Exec(run, table, id, string(payload)); err != nil {
				return fmt.Errorf("export insert %s/%s: %w", table, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export commit: %w", err)
	}
	return nil
}

// CountRecords returns how many records an exported run holds.
func CountRecords(conn *sql.DB, run string) (int, error) {
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM snapshot_records WHERE run = ?`, run).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("export count: %w", err)
	}
	return n, nil
}

func sortedKeys(snap store.Snapshot) []string {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
