package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by id lookups that match no record. Every screen
// renders a fallback for it instead of failing.
var ErrNotFound = errors.New("not found")

// AvailabilityFilter selects books by copy availability in catalogue search.
type AvailabilityFilter string

const (
	AvailabilityAll        AvailabilityFilter = "all"
	AvailabilityAvailable  AvailabilityFilter = "available"
	AvailabilityCheckedOut AvailabilityFilter = "checked-out"
)

// CategoryAll is the category selector sentinel that disables filtering.
const CategoryAll = "all"

// Database holds the library records in an in-memory SQLite store. The store
// is filled once by the seeder; every exported helper is a read.
type Database struct {
	db *sql.DB
}

// NewDatabase opens a fresh in-memory store and applies the schema. The pool
// is pinned to a single connection so every query sees the same :memory:
// database.
func NewDatabase() (*Database, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Database{db: db}, nil
}

// Close closes the store, discarding its contents.
func (d *Database) Close() error { return d.db.Close() }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applySchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE books (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            category TEXT NOT NULL,
            isbn TEXT NOT NULL,
            year INTEGER NOT NULL,
            description TEXT NOT NULL,
            cover_url TEXT NOT NULL,
            total_copies INTEGER NOT NULL,
            available_copies INTEGER NOT NULL
                CHECK (available_copies BETWEEN 0 AND total_copies),
            location TEXT NOT NULL
        );`,
		`CREATE TABLE users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            role TEXT NOT NULL CHECK (role IN ('student','staff')),
            student_id TEXT,
            avatar TEXT NOT NULL
        );`,
		`CREATE TABLE loans (
            id TEXT PRIMARY KEY,
            book_id TEXT NOT NULL REFERENCES books(id),
            user_id TEXT NOT NULL REFERENCES users(id),
            borrow_date TEXT NOT NULL,
            due_date TEXT NOT NULL,
            return_date TEXT,
            status TEXT NOT NULL CHECK (status IN ('active','overdue','returned'))
        );`,
		`CREATE TABLE fines (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            amount REAL NOT NULL,
            reason TEXT NOT NULL,
            status TEXT NOT NULL CHECK (status IN ('unpaid','paid'))
        );`,
		`CREATE TABLE activity (
            id TEXT PRIMARY KEY,
            type TEXT NOT NULL CHECK (type IN ('borrow','return')),
            book TEXT NOT NULL,
            date TEXT NOT NULL,
            user_name TEXT NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

const bookColumns = `id,title,author,category,isbn,year,description,cover_url,total_copies,available_copies,location`

func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.ISBN, &b.Year,
		&b.Description, &b.CoverURL, &b.TotalCopies, &b.AvailableCopies, &b.Location)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBook fetches a single book by id.
func (d *Database) GetBook(id string) (*Book, error) {
	b, err := scanBook(d.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id=?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetAllBooks returns the whole catalogue in seed order.
func (d *Database) GetAllBooks() ([]*Book, error) {
	return d.queryBooks(`SELECT ` + bookColumns + ` FROM books ORDER BY rowid`)
}

// SearchBooks applies the catalogue filter: a book passes when the query is
// empty or matches title/author case-insensitively or the ISBN literally, AND
// the category matches (or is the all sentinel), AND the availability filter
// matches. Results keep seed order; the UI's sort selector is decorative.
func (d *Database) SearchBooks(query, category string, avail AvailabilityFilter) ([]*Book, error) {
	return d.queryBooks(`
        SELECT `+bookColumns+` FROM books
        WHERE (?1 = ''
               OR instr(lower(title), ?1) > 0
               OR instr(lower(author), ?1) > 0
               OR instr(isbn, ?2) > 0)
          AND (?3 = 'all' OR category = ?3)
          AND (?4 = 'all'
               OR (?4 = 'available' AND available_copies > 0)
               OR (?4 = 'checked-out' AND available_copies = 0))
        ORDER BY rowid`,
		strings.ToLower(query), query, category, string(avail))
}

// SimilarBooks returns up to limit books sharing the category of book,
// excluding book itself, in seed order.
func (d *Database) SimilarBooks(book *Book, limit int) ([]*Book, error) {
	return d.queryBooks(`
        SELECT `+bookColumns+` FROM books
        WHERE category = ? AND id <> ?
        ORDER BY rowid LIMIT ?`, book.Category, book.ID, limit)
}

// AvailableBooks returns up to limit books with copies on the shelf.
func (d *Database) AvailableBooks(limit int) ([]*Book, error) {
	return d.queryBooks(`
        SELECT `+bookColumns+` FROM books
        WHERE available_copies > 0
        ORDER BY rowid LIMIT ?`, limit)
}

// Categories lists the distinct categories in order of first appearance.
func (d *Database) Categories() ([]string, error) {
	rows, err := d.db.Query(`SELECT category FROM books GROUP BY category ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (d *Database) queryBooks(query string, args ...any) ([]*Book, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.StudentID, &u.Avatar); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a single user by id.
func (d *Database) GetUser(id string) (*User, error) {
	u, err := scanUser(d.db.QueryRow(
		`SELECT id,name,email,role,COALESCE(student_id,''),avatar FROM users WHERE id=?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetAllUsers returns the directory in seed order.
func (d *Database) GetAllUsers() ([]*User, error) {
	rows, err := d.db.Query(
		`SELECT id,name,email,role,COALESCE(student_id,''),avatar FROM users ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FirstUserByRole resolves a login: the first seeded user with the role.
func (d *Database) FirstUserByRole(role Role) (*User, error) {
	u, err := scanUser(d.db.QueryRow(
		`SELECT id,name,email,role,COALESCE(student_id,''),avatar FROM users WHERE role=? ORDER BY rowid LIMIT 1`,
		string(role)))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %s: %w", role, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserCount returns the number of directory entries.
func (d *Database) UserCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// ---------------------------------------------------------------------------
// Loans
// ---------------------------------------------------------------------------

func scanLoan(row interface{ Scan(...any) error }) (*Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.BookID, &l.UserID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const loanColumns = `id,book_id,user_id,borrow_date,due_date,COALESCE(return_date,''),status`

// LoansByUser returns every loan of a user in seed order.
func (d *Database) LoansByUser(userID string) ([]*Loan, error) {
	return d.queryLoans(`SELECT `+loanColumns+` FROM loans WHERE user_id=? ORDER BY rowid`, userID)
}

// ActiveLoans returns all loans not yet returned, across all users.
func (d *Database) ActiveLoans() ([]*Loan, error) {
	return d.queryLoans(`SELECT ` + loanColumns + ` FROM loans WHERE status <> 'returned' ORDER BY rowid`)
}

// ActiveLoanCount counts loans not yet returned.
func (d *Database) ActiveLoanCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM loans WHERE status <> 'returned'`).Scan(&n)
	return n, err
}

func (d *Database) queryLoans(query string, args ...any) ([]*Loan, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// ---------------------------------------------------------------------------
// Fines
// ---------------------------------------------------------------------------

// FinesByUser returns every fine of a user in seed order.
func (d *Database) FinesByUser(userID string) ([]*Fine, error) {
	rows, err := d.db.Query(
		`SELECT id,user_id,amount,reason,status FROM fines WHERE user_id=? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []*Fine
	for rows.Next() {
		var f Fine
		if err := rows.Scan(&f.ID, &f.UserID, &f.Amount, &f.Reason, &f.Status); err != nil {
			return nil, err
		}
		fines = append(fines, &f)
	}
	return fines, rows.Err()
}

// UnpaidFineTotal sums the unpaid fines of a user.
func (d *Database) UnpaidFineTotal(userID string) (float64, error) {
	var total float64
	err := d.db.QueryRow(
		`SELECT COALESCE(SUM(amount),0) FROM fines WHERE user_id=? AND status='unpaid'`, userID).
		Scan(&total)
	return total, err
}

// ---------------------------------------------------------------------------
// Aggregates and activity
// ---------------------------------------------------------------------------

// CopyTotals sums copies across the whole catalogue.
func (d *Database) CopyTotals() (total, available int, err error) {
	err = d.db.QueryRow(
		`SELECT COALESCE(SUM(total_copies),0), COALESCE(SUM(available_copies),0) FROM books`).
		Scan(&total, &available)
	return total, available, err
}

// Activity returns the global activity feed in seed order.
func (d *Database) Activity() ([]ActivityEntry, error) {
	rows, err := d.db.Query(`SELECT id,type,book,date,user_name FROM activity ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Book, &e.Date, &e.User); err != nil {
			return nil, err
		}
		feed = append(feed, e)
	}
	return feed, rows.Err()
}
