package storage

import (
	"database/sql"
	"fmt"

	"expense-ledger/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore is an embedded-database backend holding both record sets.
// It keeps the same whole-set Load/Save contract as the JSON files: Save
// replaces the full record set inside one transaction.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &SQLiteStore{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			username TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL,
			category TEXT NOT NULL,
			date TEXT NOT NULL,
			currency TEXT NOT NULL,
			PRIMARY KEY (username, position)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Users returns the credential record set view of the database.
func (db *SQLiteStore) Users() UserStore {
	return &sqliteUserStore{conn: db.conn}
}

// Expenses returns the expense record set view of the database.
func (db *SQLiteStore) Expenses() ExpenseStore {
	return &sqliteExpenseStore{conn: db.conn}
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	return db.conn.Close()
}

type sqliteUserStore struct {
	conn *sql.DB
}

func (s *sqliteUserStore) Load() (map[string]string, error) {
	rows, err := s.conn.Query("SELECT username, password_hash FROM users")
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]string)
	for rows.Next() {
		var username, hash string
		if err := rows.Scan(&username, &hash); err != nil {
			return nil, fmt.Errorf("load users: %w", err)
		}
		users[username] = hash
	}
	return users, rows.Err()
}

func (s *sqliteUserStore) Save(users map[string]string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	for username, hash := range users {
		if _, err := tx.Exec(
			"INSERT INTO users (username, password_hash) VALUES (?, ?)",
			username, hash,
		); err != nil {
			return fmt.Errorf("save users: %w", err)
		}
	}
	return tx.Commit()
}

type sqliteExpenseStore struct {
	conn *sql.DB
}

func (s *sqliteExpenseStore) Load() (map[string][]models.Expense, error) {
	rows, err := s.conn.Query(
		"SELECT username, id, amount, category, date, currency FROM expenses ORDER BY username, position",
	)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	defer rows.Close()

	expenses := make(map[string][]models.Expense)
	for rows.Next() {
		var username, dateStr string
		var e models.Expense
		if err := rows.Scan(&username, &e.ID, &e.Amount, &e.Category, &dateStr, &e.Currency); err != nil {
			return nil, fmt.Errorf("load expenses: %w", err)
		}
		date, err := models.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: expense date %q: %v", ErrCorrupt, dateStr, err)
		}
		e.Date = date
		expenses[username] = append(expenses[username], e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if RepairMissingIDs(expenses) {
		if err := s.Save(expenses); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *sqliteExpenseStore) Save(expenses map[string][]models.Expense) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	for username, records := range expenses {
		for i, e := range records {
			if _, err := tx.Exec(
				"INSERT INTO expenses (username, position, id, amount, category, date, currency) VALUES (?, ?, ?, ?, ?, ?, ?)",
				username, i, e.ID, e.Amount, string(e.Category), e.Date.String(), string(e.Currency),
			); err != nil {
				return fmt.Errorf("save expenses: %w", err)
			}
		}
	}
	return tx.Commit()
}
