package library

import (
	"errors"
	"testing"
)

func seededDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase()
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestSearchByTitle(t *testing.T) {
	db := seededDB(t)

	books, err := db.SearchBooks("1984", CategoryAll, AvailabilityAll)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("want 1 result, got %d", len(books))
	}
	if books[0].Title != "1984" || books[0].Year != 1949 {
		t.Fatalf("wrong book: %q (%d)", books[0].Title, books[0].Year)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := seededDB(t)

	for _, q := range []string{"orwell", "ORWELL", "oRwElL"} {
		books, err := db.SearchBooks(q, CategoryAll, AvailabilityAll)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(books) != 1 || books[0].Author != "George Orwell" {
			t.Fatalf("query %q: want the Orwell book, got %d results", q, len(books))
		}
	}
}

func TestSearchByISBNSubstring(t *testing.T) {
	db := seededDB(t)

	books, err := db.SearchBooks("978-0-452", CategoryAll, AvailabilityAll)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(books) != 1 || books[0].ID != "2" {
		t.Fatalf("want book 2 by ISBN prefix, got %d results", len(books))
	}
}

func TestSearchEmptyQueryReturnsCatalogueOrder(t *testing.T) {
	db := seededDB(t)

	books, err := db.SearchBooks("", CategoryAll, AvailabilityAll)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(books) != len(seedBooks) {
		t.Fatalf("want %d books, got %d", len(seedBooks), len(books))
	}
	for i, b := range books {
		if b.ID != seedBooks[i].ID {
			t.Fatalf("position %d: want id %s, got %s", i, seedBooks[i].ID, b.ID)
		}
	}
}

func TestSearchAvailabilityFilter(t *testing.T) {
	db := seededDB(t)

	available, err := db.SearchBooks("", CategoryAll, AvailabilityAvailable)
	if err != nil {
		t.Fatalf("search available: %v", err)
	}
	for _, b := range available {
		if b.AvailableCopies == 0 {
			t.Fatalf("book %s has no copies but passed the available filter", b.ID)
		}
	}

	checkedOut, err := db.SearchBooks("", CategoryAll, AvailabilityCheckedOut)
	if err != nil {
		t.Fatalf("search checked-out: %v", err)
	}
	if len(checkedOut) != 1 || checkedOut[0].ID != "2" {
		t.Fatalf("want only book 2 checked out, got %d results", len(checkedOut))
	}
	if len(available)+len(checkedOut) != len(seedBooks) {
		t.Fatalf("availability split is not a partition: %d + %d != %d",
			len(available), len(checkedOut), len(seedBooks))
	}
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	db := seededDB(t)

	// "the" in the title, Fiction, with copies available: Gatsby and Catcher.
	books, err := db.SearchBooks("the", "Fiction", AvailabilityAvailable)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(books) != 2 || books[0].ID != "3" || books[1].ID != "7" {
		t.Fatalf("want books 3 and 7 in order, got %d results", len(books))
	}
}

func TestCategoriesFirstAppearanceOrder(t *testing.T) {
	db := seededDB(t)

	cats, err := db.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"Fiction", "Computer Science", "Science", "History"}
	if len(cats) != len(want) {
		t.Fatalf("want %d categories, got %d", len(want), len(cats))
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q", i, want[i], cats[i])
		}
	}
}

func TestGetBookNotFound(t *testing.T) {
	db := seededDB(t)

	// The miss is stable: repeated lookups keep yielding not-found.
	for i := 0; i < 2; i++ {
		if _, err := db.GetBook("404"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("lookup %d: want ErrNotFound, got %v", i, err)
		}
	}
}

func TestSimilarBooks(t *testing.T) {
	db := seededDB(t)

	book, err := db.GetBook("1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	similar, err := db.SimilarBooks(book, 4)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	// Five Fiction titles in the seed, so the cap kicks in.
	if len(similar) != 4 {
		t.Fatalf("want 4 similar books, got %d", len(similar))
	}
	for _, s := range similar {
		if s.ID == book.ID {
			t.Fatalf("similar set contains the book itself")
		}
		if s.Category != book.Category {
			t.Fatalf("book %s has category %q, want %q", s.ID, s.Category, book.Category)
		}
	}

	// A category with a single title has no similar books.
	sapiens, err := db.GetBook("8")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	similar, err = db.SimilarBooks(sapiens, 4)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if len(similar) != 0 {
		t.Fatalf("want no similar books for a lone category, got %d", len(similar))
	}
}

func TestCopyTotals(t *testing.T) {
	db := seededDB(t)

	total, available, err := db.CopyTotals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if total != 36 || available != 20 {
		t.Fatalf("want 36/20 copies, got %d/%d", total, available)
	}
}

func TestDirectoryAndLedgerCounts(t *testing.T) {
	db := seededDB(t)

	users, err := db.UserCount()
	if err != nil {
		t.Fatalf("user count: %v", err)
	}
	if users != 3 {
		t.Fatalf("want 3 users, got %d", users)
	}

	loans, err := db.ActiveLoanCount()
	if err != nil {
		t.Fatalf("loan count: %v", err)
	}
	if loans != 3 {
		t.Fatalf("want 3 active loans, got %d", loans)
	}
}

func TestUnpaidFineTotal(t *testing.T) {
	db := seededDB(t)

	total, err := db.UnpaidFineTotal("1")
	if err != nil {
		t.Fatalf("fine total: %v", err)
	}
	if total != 5.00 {
		t.Fatalf("want $5.00, got $%.2f", total)
	}

	total, err = db.UnpaidFineTotal("2")
	if err != nil {
		t.Fatalf("fine total: %v", err)
	}
	if total != 0 {
		t.Fatalf("want $0.00 for a user without fines, got $%.2f", total)
	}
}

func TestFirstUserByRole(t *testing.T) {
	db := seededDB(t)

	student, err := db.FirstUserByRole(RoleStudent)
	if err != nil {
		t.Fatalf("student: %v", err)
	}
	if student.ID != "1" || student.Name != "John Smith" {
		t.Fatalf("want John Smith, got %s", student.Name)
	}

	staff, err := db.FirstUserByRole(RoleStaff)
	if err != nil {
		t.Fatalf("staff: %v", err)
	}
	if staff.ID != "2" || staff.Role != RoleStaff {
		t.Fatalf("want the seeded staff account, got %s", staff.Name)
	}
}

func TestAvailableBooksCap(t *testing.T) {
	db := seededDB(t)

	books, err := db.AvailableBooks(4)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	wantIDs := []string{"1", "3", "4", "5"}
	if len(books) != len(wantIDs) {
		t.Fatalf("want %d books, got %d", len(wantIDs), len(books))
	}
	for i, id := range wantIDs {
		if books[i].ID != id {
			t.Fatalf("position %d: want id %s, got %s", i, id, books[i].ID)
		}
	}
}
