package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-library/library"
)

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func handleDashboard(mgr *library.LibraryManager, sess *library.Session) {
	sum, err := mgr.DashboardSummary(sess.User().ID)
	if err != nil {
		fmt.Printf("Error loading dashboard: %v\n", err)
		return
	}

	fmt.Println("\nHere's your library overview")
	fmt.Printf("  Books Borrowed  %d   (currently checked out)\n", sum.BorrowedCount)
	fmt.Printf("  Due Soon        %d   (books overdue)\n", sum.OverdueCount)
	fmt.Printf("  Fines           $%.2f (outstanding balance)\n", sum.UnpaidFines)

	fmt.Println("\nRecommended Books (popular books available for borrowing)")
	if len(sum.Recommended) == 0 {
		fmt.Println("  Nothing available right now.")
	} else {
		fmt.Printf("  %-4s %-40s %-25s %s\n", "ID", "Title", "Author", "Available")
		fmt.Println("  " + strings.Repeat("-", 80))
		for _, b := range sum.Recommended {
			fmt.Printf("  %-4s %-40s %-25s %d\n",
				b.ID, truncateString(b.Title, 40), truncateString(b.Author, 25), b.AvailableCopies)
		}
	}

	fmt.Println("\nRecent Activity (latest library transactions)")
	for _, e := range sum.Activity {
		verb := "Borrowed"
		if e.Type == "return" {
			verb = "Returned"
		}
		fmt.Printf("  %s: %s — %s • %s\n", verb, e.Book, e.User, e.Date)
	}
}

// ---------------------------------------------------------------------------
// Catalogue search
// ---------------------------------------------------------------------------

func handleSearch(sc *bufio.Scanner, mgr *library.LibraryManager) {
	fmt.Println("\nSearch Catalogue — find and borrow books from our collection")

	fmt.Print("Search by title, author, ISBN (Enter for all): ")
	if !sc.Scan() {
		return
	}
	query := strings.TrimSpace(sc.Text())

	cats, err := mgr.Categories()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Category [%s] (Enter for all): ", strings.Join(cats, ", "))
	if !sc.Scan() {
		return
	}
	category := strings.TrimSpace(sc.Text())
	if category == "" {
		category = library.CategoryAll
	}

	fmt.Print("Availability [all, available, checked-out] (Enter for all): ")
	if !sc.Scan() {
		return
	}
	avail := library.AvailabilityFilter(strings.TrimSpace(sc.Text()))
	switch avail {
	case library.AvailabilityAvailable, library.AvailabilityCheckedOut:
	default:
		avail = library.AvailabilityAll
	}

	books, err := mgr.SearchBooks(query, category, avail)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// TODO: wire the sort selector; results currently keep catalogue order.
	fmt.Printf("\nShowing %d results • Sort by: Title (A-Z)\n", len(books))
	if len(books) == 0 {
		fmt.Println("No books match your search.")
		return
	}
	renderBookTable(books)
	fmt.Println("Type 'view <id>' to see details.")
}

func renderBookTable(books []*library.Book) {
	fmt.Printf("%-4s %-40s %-25s %-17s %s\n", "ID", "Title", "Author", "Category", "Status")
	fmt.Println(strings.Repeat("-", 105))
	for _, b := range books {
		fmt.Printf("%-4s %-40s %-25s %-17s %s\n",
			b.ID,
			truncateString(b.Title, 40),
			truncateString(b.Author, 25),
			truncateString(b.Category, 17),
			availabilityBadge(b))
	}
}

func availabilityBadge(b *library.Book) string {
	if b.AvailableCopies > 0 {
		return fmt.Sprintf("%d Available", b.AvailableCopies)
	}
	return "Checked Out"
}

// ---------------------------------------------------------------------------
// Book detail
// ---------------------------------------------------------------------------

func handleBookDetail(sc *bufio.Scanner, mgr *library.LibraryManager, sess *library.Session) {
	detail, err := mgr.BookDetail(sess.SelectedBook())
	if errors.Is(err, library.ErrNotFound) {
		fmt.Println("\nBook not found")
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	b := detail.Book
	fmt.Printf("\n%s\n", b.Title)
	fmt.Printf("by %s\n", b.Author)
	fmt.Printf("%s • Published %d\n\n", b.Category, b.Year)
	fmt.Printf("  ISBN:     %s\n", b.ISBN)
	fmt.Printf("  Location: %s\n", b.Location)
	fmt.Printf("  Cover:    %s\n\n", b.CoverURL)
	fmt.Println(b.Description)

	if b.AvailableCopies > 0 {
		fmt.Printf("\n%d of %d Available\n", b.AvailableCopies, b.TotalCopies)
	} else {
		fmt.Println("\nAll Copies Checked Out")
	}

	fmt.Println("\nBorrowing Information")
	fmt.Println("  Loan Period:     30 days from checkout date")
	fmt.Println("  Borrowing Limit: Maximum 5 books at a time")
	fmt.Println("  Late Fees:       $0.50 per day after due date")

	if len(detail.Similar) > 0 {
		fmt.Println("\nSimilar Books")
		for _, s := range detail.Similar {
			fmt.Printf("  %-4s %-40s %s\n", s.ID, truncateString(s.Title, 40), s.Author)
		}
	}

	if detail.CanBorrow {
		fmt.Print("\n[b]orrow, [r]eserve, or Enter to go back: ")
	} else {
		fmt.Print("\n[r]eserve, or Enter to go back: ")
	}
	if !sc.Scan() {
		return
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "b", "borrow":
		// Presentation-only acknowledgement; no loan record is created.
		if detail.CanBorrow {
			fmt.Printf("Borrowing %q. This would create a new loan record in a real system.\n", b.Title)
		} else {
			fmt.Println("All copies are checked out.")
		}
	case "r", "reserve":
		fmt.Printf("Reserving %q. You will be notified when it becomes available.\n", b.Title)
	}
}

// ---------------------------------------------------------------------------
// Account
// ---------------------------------------------------------------------------

func handleAccount(mgr *library.LibraryManager, sess *library.Session) {
	view, err := mgr.AccountView(sess.User().ID, time.Now())
	if err != nil {
		fmt.Printf("Error loading account: %v\n", err)
		return
	}

	u := view.User
	fmt.Printf("\n%s\n%s\n", u.Name, u.Email)
	if u.StudentID != "" {
		fmt.Printf("Student ID: %s • %s\n", u.StudentID, u.Role)
	} else {
		fmt.Printf("Role: %s\n", u.Role)
	}

	if view.HasOverdue {
		fmt.Println("\n! You have overdue items")
		fmt.Println("  Please return your overdue books to avoid additional late fees.")
	}

	fmt.Println("\nCurrent Loans")
	if len(view.Active) == 0 {
		fmt.Println("  No active loans")
	} else {
		fmt.Printf("  %-42s %-12s %-12s %s\n", "Book", "Borrowed", "Due", "Status")
		fmt.Println("  " + strings.Repeat("-", 90))
		for _, d := range view.Active {
			fmt.Printf("  %-42s %-12s %-12s %s\n",
				truncateString(loanBookLabel(d), 42),
				d.Loan.BorrowDate, d.Loan.DueDate, loanBadgeLabel(d))
		}
	}

	fmt.Println("\nBorrowing History")
	if len(view.History) == 0 {
		fmt.Println("  No borrowing history")
	} else {
		for _, d := range view.History {
			fmt.Printf("  %-42s Borrowed: %s • Returned: %s\n",
				truncateString(loanBookLabel(d), 42), d.Loan.BorrowDate, d.Loan.ReturnDate)
		}
	}

	fmt.Println("\nFines & Payments")
	if len(view.Fines) == 0 {
		fmt.Println("  No fines or payments")
	} else {
		for _, f := range view.Fines {
			status := "Paid"
			action := ""
			if f.Status == library.FineUnpaid {
				status = "Unpaid"
				action = "  [Pay Now]"
			}
			fmt.Printf("  $%.2f  %-45s %s%s\n", f.Amount, truncateString(f.Reason, 45), status, action)
		}
	}
}

func loanBookLabel(d library.LoanDetail) string {
	if d.Book == nil {
		return "(unknown book)"
	}
	return d.Book.Title + " — " + d.Book.Author
}

func loanBadgeLabel(d library.LoanDetail) string {
	switch d.Badge {
	case library.BadgeOverdue:
		return fmt.Sprintf("Overdue by %d days", d.Days)
	case library.BadgeDueSoon:
		return fmt.Sprintf("Due in %d days", d.Days)
	default:
		return "Active"
	}
}

// ---------------------------------------------------------------------------
// Admin panel
// ---------------------------------------------------------------------------

func handleAdmin(mgr *library.LibraryManager) {
	stats, err := mgr.AdminStats()
	if err != nil {
		fmt.Printf("Error loading admin panel: %v\n", err)
		return
	}

	fmt.Println("\nAdmin Panel — Staff Only • Manage library resources")
	fmt.Printf("  Total Books: %d   Available: %d   Total Users: %d   Active Loans: %d\n",
		stats.TotalCopies, stats.AvailableCopies, stats.UserCount, stats.ActiveLoanCount)

	books, err := mgr.GetAllBooks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("\nBook Management (add, edit, or remove books from the catalogue)")
	fmt.Printf("  %-40s %-25s %-17s %-6s %-6s %-9s %s\n",
		"Title", "Author", "Category", "Total", "Avail", "Status", "Actions")
	fmt.Println("  " + strings.Repeat("-", 115))
	for _, b := range books {
		stock := "In Stock"
		if b.AvailableCopies == 0 {
			stock = "All Out"
		}
		fmt.Printf("  %-40s %-25s %-17s %-6d %-6d %-9s [edit] [delete]\n",
			truncateString(b.Title, 40), truncateString(b.Author, 25),
			truncateString(b.Category, 17), b.TotalCopies, b.AvailableCopies, stock)
	}

	users, err := mgr.GetAllUsers()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("\nUser Management (view and manage library users)")
	fmt.Printf("  %-22s %-28s %-9s %-11s %s\n", "Name", "Email", "Role", "Student ID", "Actions")
	fmt.Println("  " + strings.Repeat("-", 90))
	for _, u := range users {
		studentID := u.StudentID
		if studentID == "" {
			studentID = "—"
		}
		fmt.Printf("  %-22s %-28s %-9s %-11s [edit] [delete]\n",
			truncateString(u.Name, 22), truncateString(u.Email, 28), u.Role, studentID)
	}

	rows, err := mgr.ActiveLoanRows()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("\nActive Loans (monitor and manage current book loans)")
	fmt.Printf("  %-40s %-22s %-12s %-12s %-9s %s\n",
		"Book", "Borrower", "Borrowed", "Due", "Status", "Actions")
	fmt.Println("  " + strings.Repeat("-", 110))
	for _, r := range rows {
		title, borrower := "(unknown book)", "(unknown user)"
		if r.Book != nil {
			title = r.Book.Title
		}
		if r.User != nil {
			borrower = r.User.Name
		}
		status := "Active"
		if r.Loan.Status == library.LoanOverdue {
			status = "Overdue"
		}
		fmt.Printf("  %-40s %-22s %-12s %-12s %-9s [process return]\n",
			truncateString(title, 40), truncateString(borrower, 22),
			r.Loan.BorrowDate, r.Loan.DueDate, status)
	}
	fmt.Println("\nManagement actions are placeholders; changes are made at the circulation desk.")
}

// ---------------------------------------------------------------------------
// Placeholder screens
// ---------------------------------------------------------------------------

func renderBorrowStub() {
	fmt.Println("\nBorrow a Book")
	fmt.Println("Use the Search Books section to find and borrow books.")
	fmt.Println("Type 'search' to go there.")
}

func renderReturnStub() {
	fmt.Println("\nReturn a Book")
	fmt.Println("Visit the library desk to return your borrowed books.")
	fmt.Println("Type 'account' to view your loans.")
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
