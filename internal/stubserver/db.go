package stubserver

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"taxdesk/internal/models"
)

// DB wraps the sqlite store behind the stub server.
type DB struct {
	conn *sql.DB
}

// OpenDB opens (and migrates) the stub store at path. Use ":memory:" for
// an ephemeral store.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// modernc's driver is not safe for concurrent writes over multiple
	// conns; a single conn also keeps :memory: databases coherent.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS countries (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS records (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			gender     TEXT NOT NULL,
			country    TEXT NOT NULL,
			country_id TEXT NOT NULL REFERENCES countries(id),
			created_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// seedCountries and seedNames feed Seed with a small demo data set.
var seedCountries = []models.Category{
	{ID: "c1", Name: "France"},
	{ID: "c2", Name: "Spain"},
	{ID: "c3", Name: "Germany"},
	{ID: "c4", Name: "Italy"},
	{ID: "c5", Name: "Portugal"},
}

var seedNames = []struct {
	name   string
	gender models.Gender
	cat    int // index into seedCountries
}{
	{"amelie laurent", models.GenderFemale, 0},
	{"carlos mendez", models.GenderMale, 1},
	{"greta fischer", models.GenderFemale, 2},
	{"marco rossi", models.GenderMale, 3},
	{"ines almeida", models.GenderFemale, 4},
	{"julien moreau", models.GenderMale, 0},
	{"lucia navarro", models.GenderFemale, 1},
	{"stefan weber", models.GenderMale, 2},
}

// Seed populates demo data. Idempotent: an already-seeded store is left
// untouched.
func (db *DB) Seed() error {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM countries`).Scan(&n); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCountries {
		if _, err := tx.Exec(`INSERT INTO countries (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("seed country %s: %w", c.ID, err)
		}
	}

	base := time.Now().UTC().AddDate(0, -6, 0)
	for i, s := range seedNames {
		cat := seedCountries[s.cat]
		created := base.AddDate(0, 0, i*11)
		_, err := tx.Exec(
			`INSERT INTO records (id, name, gender, country, country_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			fmt.Sprintf("%d", i+1), s.name, string(s.gender), cat.Name, cat.ID,
			created.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("seed record %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// ListCountries returns all countries ordered by id.
func (db *DB) ListCountries() ([]models.Category, error) {
	rows, err := db.conn.Query(`SELECT id, name FROM countries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListRecords returns all records in insertion order.
func (db *DB) ListRecords() ([]recordRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, gender, country, country_id, created_at FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []recordRow
	for rows.Next() {
		var r recordRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Gender, &r.Country, &r.CountryID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRecord returns one record by id; sql.ErrNoRows when absent.
func (db *DB) GetRecord(id string) (recordRow, error) {
	var r recordRow
	err := db.conn.QueryRow(
		`SELECT id, name, gender, country, country_id, created_at FROM records WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Gender, &r.Country, &r.CountryID, &r.CreatedAt)
	return r, err
}

// PutRecord full-replaces a record. Returns sql.ErrNoRows for an unknown
// id; the stub store never creates records through PUT.
func (db *DB) PutRecord(r recordRow) error {
	res, err := db.conn.Exec(
		`UPDATE records SET name=?, gender=?, country=?, country_id=?, created_at=? WHERE id=?`,
		r.Name, r.Gender, r.Country, r.CountryID, r.CreatedAt, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update record %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// recordRow is a record in the wire/storage shape (created_at as string).
type recordRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Country   string `json:"country"`
	CountryID string `json:"countryId"`
	CreatedAt string `json:"createdAt,omitempty"`
}
