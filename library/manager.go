package library

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// LibraryManager is a thin façade over the Database, keeping screen code
// simple. All methods derive projections; none of them writes.
type LibraryManager struct {
	db *Database
}

// NewLibraryManager opens an in-memory store and loads the seed collections.
func NewLibraryManager() (*LibraryManager, error) {
	db, err := NewDatabase()
	if err != nil {
		return nil, err
	}
	if err := db.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed library: %w", err)
	}
	return &LibraryManager{db: db}, nil
}

// Close closes the underlying store.
func (lm *LibraryManager) Close() error { return lm.db.Close() }

// ------------------ Catalogue ------------------

func (lm *LibraryManager) GetBook(id string) (*Book, error) { return lm.db.GetBook(id) }
func (lm *LibraryManager) GetAllBooks() ([]*Book, error)    { return lm.db.GetAllBooks() }

// SearchBooks filters the catalogue per the search screen's three inputs.
func (lm *LibraryManager) SearchBooks(query, category string, avail AvailabilityFilter) ([]*Book, error) {
	return lm.db.SearchBooks(query, category, avail)
}

// Categories returns the category selector options: the all sentinel
// followed by every distinct category in the catalogue.
func (lm *LibraryManager) Categories() ([]string, error) {
	cats, err := lm.db.Categories()
	if err != nil {
		return nil, err
	}
	return append([]string{CategoryAll}, cats...), nil
}

// ------------------ Directory ------------------

func (lm *LibraryManager) GetUser(id string) (*User, error) { return lm.db.GetUser(id) }
func (lm *LibraryManager) GetAllUsers() ([]*User, error)    { return lm.db.GetAllUsers() }

// ------------------ Book detail ------------------

// BookDetail is the projection behind the book detail screen.
type BookDetail struct {
	Book    *Book
	Similar []*Book // same category, excluding the book itself, at most 4
	// CanBorrow gates the Borrow affordance; Reserve is always offered.
	CanBorrow bool
}

const similarBooksCap = 4

// BookDetail looks up a book and computes its similar-books shelf.
// A miss yields ErrNotFound; the screen renders a terminal fallback.
func (lm *LibraryManager) BookDetail(id string) (*BookDetail, error) {
	book, err := lm.db.GetBook(id)
	if err != nil {
		return nil, err
	}
	similar, err := lm.db.SimilarBooks(book, similarBooksCap)
	if err != nil {
		return nil, err
	}
	return &BookDetail{
		Book:      book,
		Similar:   similar,
		CanBorrow: book.AvailableCopies > 0,
	}, nil
}

// ------------------ Dashboard ------------------

// DashboardSummary aggregates the logged-in user's standing plus the global
// shelves shown on the dashboard.
type DashboardSummary struct {
	BorrowedCount int     // loans not yet returned
	OverdueCount  int     // loans flagged overdue
	UnpaidFines   float64 // sum of unpaid fine amounts
	Recommended   []*Book // first 4 books with copies available
	Activity      []ActivityEntry
}

const recommendedCap = 4

func (lm *LibraryManager) DashboardSummary(userID string) (*DashboardSummary, error) {
	loans, err := lm.db.LoansByUser(userID)
	if err != nil {
		return nil, err
	}
	sum := &DashboardSummary{}
	for _, l := range loans {
		if l.Status != LoanReturned {
			sum.BorrowedCount++
		}
		if l.Status == LoanOverdue {
			sum.OverdueCount++
		}
	}

	if sum.UnpaidFines, err = lm.db.UnpaidFineTotal(userID); err != nil {
		return nil, err
	}
	if sum.Recommended, err = lm.db.AvailableBooks(recommendedCap); err != nil {
		return nil, err
	}
	// The feed is global, not per-user. Quirk of the source data, kept as-is.
	if sum.Activity, err = lm.db.Activity(); err != nil {
		return nil, err
	}
	return sum, nil
}

// ------------------ Account ------------------

// LoanBadge classifies a loan for display on the account screen.
type LoanBadge int

const (
	BadgeActive LoanBadge = iota
	BadgeDueSoon
	BadgeOverdue
	BadgeReturned
)

// dueSoonDays is the inclusive due-soon boundary: due in 3 days still counts.
const dueSoonDays = 3

// LoanDetail joins a loan with its book and display classification.
// Book is nil when the loan references a book id missing from the catalogue;
// screens must guard for that.
type LoanDetail struct {
	Loan  *Loan
	Book  *Book
	Badge LoanBadge
	// Days is days until due for active loans and days elapsed past the due
	// date for overdue ones. Zero for returned loans.
	Days int
}

// AccountView partitions a user's loans into current and history and lists
// the user's fines. The partition is total and disjoint.
type AccountView struct {
	User       *User
	Active     []LoanDetail // status != returned
	History    []LoanDetail // status == returned
	Fines      []*Fine
	HasOverdue bool
}

func (lm *LibraryManager) AccountView(userID string, now time.Time) (*AccountView, error) {
	user, err := lm.db.GetUser(userID)
	if err != nil {
		return nil, err
	}
	loans, err := lm.db.LoansByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &AccountView{User: user}
	for _, l := range loans {
		detail := LoanDetail{Loan: l}
		// Missing book ids render as a gap, never as a failed screen.
		if book, err := lm.db.GetBook(l.BookID); err == nil {
			detail.Book = book
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		if l.Status == LoanReturned {
			detail.Badge = BadgeReturned
			view.History = append(view.History, detail)
			continue
		}

		detail.Badge, detail.Days = ClassifyLoan(l, now)
		if l.Status == LoanOverdue {
			view.HasOverdue = true
		}
		view.Active = append(view.Active, detail)
	}

	if view.Fines, err = lm.db.FinesByUser(userID); err != nil {
		return nil, err
	}
	return view, nil
}

// DaysUntilDue computes the calendar-day distance from now's date to dueDate:
// ceil((due - today) / 1 day). Negative when the due date has passed.
func DaysUntilDue(dueDate string, now time.Time) (int, error) {
	due, err := time.ParseInLocation("2006-01-02", dueDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("parse due date %q: %w", dueDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(due.Sub(today).Hours() / 24)), nil
}

// ClassifyLoan maps an unreturned loan to its account-screen badge. Overdue
// status wins and reports elapsed days; otherwise a due date within
// dueSoonDays flags due-soon. An unparseable due date falls back to active.
func ClassifyLoan(l *Loan, now time.Time) (LoanBadge, int) {
	days, err := DaysUntilDue(l.DueDate, now)
	if err != nil {
		return BadgeActive, 0
	}
	if l.Status == LoanOverdue {
		if days < 0 {
			days = -days
		}
		return BadgeOverdue, days
	}
	if days <= dueSoonDays {
		return BadgeDueSoon, days
	}
	return BadgeActive, days
}

// ------------------ Admin ------------------

// AdminStats carries the staff panel's global totals.
type AdminStats struct {
	TotalCopies     int
	AvailableCopies int
	UserCount       int
	ActiveLoanCount int
}

func (lm *LibraryManager) AdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	var err error
	if stats.TotalCopies, stats.AvailableCopies, err = lm.db.CopyTotals(); err != nil {
		return nil, err
	}
	if stats.UserCount, err = lm.db.UserCount(); err != nil {
		return nil, err
	}
	if stats.ActiveLoanCount, err = lm.db.ActiveLoanCount(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ActiveLoanRow joins an active loan with its book and borrower for the
// admin loans table. Either join may be nil on a dangling id.
type ActiveLoanRow struct {
	Loan *Loan
	Book *Book
	User *User
}

func (lm *LibraryManager) ActiveLoanRows() ([]ActiveLoanRow, error) {
	loans, err := lm.db.ActiveLoans()
	if err != nil {
		return nil, err
	}

	rows := make([]ActiveLoanRow, 0, len(loans))
	for _, l := range loans {
		row := ActiveLoanRow{Loan: l}
		if book, err := lm.db.GetBook(l.BookID); err == nil {
			row.Book = book
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if user, err := lm.db.GetUser(l.UserID); err == nil {
			row.User = user
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
