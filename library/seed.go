package library

import "fmt"

// Seed data for the school library demo. The records are fixed historical
// facts: nothing in the application creates, transitions, or deletes them.

var seedBooks = []*Book{
	{
		ID: "1", Title: "To Kill a Mockingbird", Author: "Harper Lee",
		Category: "Fiction", ISBN: "978-0-06-112008-4", Year: 1960,
		Description: "A gripping tale of racial injustice and childhood innocence in the American South.",
		CoverURL:    "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300&h=400&fit=crop",
		TotalCopies: 5, AvailableCopies: 2, Location: "Shelf A3 – Fiction",
	},
	{
		ID: "2", Title: "1984", Author: "George Orwell",
		Category: "Fiction", ISBN: "978-0-452-28423-4", Year: 1949,
		Description: "A dystopian social science fiction novel and cautionary tale about totalitarianism.",
		CoverURL:    "https://images.unsplash.com/photo-1495446815901-a7297e633e8d?w=300&h=400&fit=crop",
		TotalCopies: 4, AvailableCopies: 0, Location: "Shelf A3 – Fiction",
	},
	{
		ID: "3", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald",
		Category: "Fiction", ISBN: "978-0-7432-7356-5", Year: 1925,
		Description: "A critique of the American Dream set in the Jazz Age.",
		CoverURL:    "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=300&h=400&fit=crop",
		TotalCopies: 3, AvailableCopies: 3, Location: "Shelf A2 – Fiction",
	},
	{
		ID: "4", Title: "Introduction to Algorithms", Author: "Thomas H. Cormen",
		Category: "Computer Science", ISBN: "978-0-262-03384-8", Year: 2009,
		Description: "Comprehensive text on computer algorithms and data structures.",
		CoverURL:    "https://images.unsplash.com/photo-1532012197267-da84d127e765?w=300&h=400&fit=crop",
		TotalCopies: 6, AvailableCopies: 4, Location: "Shelf C5 – Technology",
	},
	{
		ID: "5", Title: "A Brief History of Time", Author: "Stephen Hawking",
		Category: "Science", ISBN: "978-0-553-10953-5", Year: 1988,
		Description: "An exploration of cosmology and the nature of time and the universe.",
		CoverURL:    "https://images.unsplash.com/photo-1589998059171-988d887df646?w=300&h=400&fit=crop",
		TotalCopies: 4, AvailableCopies: 2, Location: "Shelf B7 – Science",
	},
	{
		ID: "6", Title: "Pride and Prejudice", Author: "Jane Austen",
		Category: "Fiction", ISBN: "978-0-14-143951-8", Year: 1813,
		Description: "A romantic novel of manners set in Georgian England.",
		CoverURL:    "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=300&h=400&fit=crop",
		TotalCopies: 5, AvailableCopies: 3, Location: "Shelf A1 – Fiction",
	},
	{
		ID: "7", Title: "The Catcher in the Rye", Author: "J.D. Salinger",
		Category: "Fiction", ISBN: "978-0-316-76948-0", Year: 1951,
		Description: "A story about teenage rebellion and alienation.",
		CoverURL:    "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=400&fit=crop",
		TotalCopies: 4, AvailableCopies: 1, Location: "Shelf A4 – Fiction",
	},
	{
		ID: "8", Title: "Sapiens", Author: "Yuval Noah Harari",
		Category: "History", ISBN: "978-0-062-31609-1", Year: 2011,
		Description: "A brief history of humankind from the Stone Age to modern times.",
		CoverURL:    "https://images.unsplash.com/photo-1457369804613-52c61a468e7d?w=300&h=400&fit=crop",
		TotalCopies: 5, AvailableCopies: 5, Location: "Shelf D2 – History",
	},
}

var seedUsers = []*User{
	{
		ID: "1", Name: "John Smith", Email: "john.smith@school.edu",
		Role: RoleStudent, StudentID: "S2023001",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=John",
	},
	{
		ID: "2", Name: "Sarah Johnson", Email: "sarah.j@school.edu",
		Role:   RoleStaff,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah",
	},
	{
		ID: "3", Name: "Emily Davis", Email: "emily.d@school.edu",
		Role: RoleStudent, StudentID: "S2023002",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Emily",
	},
}

var seedLoans = []*Loan{
	{ID: "1", BookID: "2", UserID: "1", BorrowDate: "2024-11-15", DueDate: "2024-12-15", Status: LoanActive},
	{ID: "2", BookID: "5", UserID: "1", BorrowDate: "2024-12-01", DueDate: "2025-01-01", Status: LoanActive},
	{ID: "3", BookID: "7", UserID: "1", BorrowDate: "2024-11-01", DueDate: "2024-12-01", Status: LoanOverdue},
}

var seedFines = []*Fine{
	{ID: "1", UserID: "1", Amount: 5.00, Reason: "Late return - The Catcher in the Rye", Status: FineUnpaid},
}

var seedActivity = []ActivityEntry{
	{ID: "1", Type: "borrow", Book: "A Brief History of Time", Date: "2024-12-01", User: "John Smith"},
	{ID: "2", Type: "return", Book: "Pride and Prejudice", Date: "2024-11-30", User: "Emily Davis"},
	{ID: "3", Type: "borrow", Book: "1984", Date: "2024-11-15", User: "John Smith"},
}

// seed loads the sample collections in one transaction. It runs exactly once,
// right after the schema is applied; afterwards the store is read-only.
func (d *Database) seed() error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range seedBooks {
		_, err := tx.Exec(
			`INSERT INTO books(id,title,author,category,isbn,year,description,cover_url,total_copies,available_copies,location)
             VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
			b.ID, b.Title, b.Author, b.Category, b.ISBN, b.Year,
			b.Description, b.CoverURL, b.TotalCopies, b.AvailableCopies, b.Location)
		if err != nil {
			return fmt.Errorf("seed book %s: %w", b.ID, err)
		}
	}

	for _, u := range seedUsers {
		var studentID any
		if u.StudentID != "" {
			studentID = u.StudentID
		}
		_, err := tx.Exec(
			`INSERT INTO users(id,name,email,role,student_id,avatar) VALUES(?,?,?,?,?,?)`,
			u.ID, u.Name, u.Email, string(u.Role), studentID, u.Avatar)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, l := range seedLoans {
		var returnDate any
		if l.ReturnDate != "" {
			returnDate = l.ReturnDate
		}
		_, err := tx.Exec(
			`INSERT INTO loans(id,book_id,user_id,borrow_date,due_date,return_date,status) VALUES(?,?,?,?,?,?,?)`,
			l.ID, l.BookID, l.UserID, l.BorrowDate, l.DueDate, returnDate, string(l.Status))
		if err != nil {
			return fmt.Errorf("seed loan %s: %w", l.ID, err)
		}
	}

	for _, f := range seedFines {
		_, err := tx.Exec(
			`INSERT INTO fines(id,user_id,amount,reason,status) VALUES(?,?,?,?,?)`,
			f.ID, f.UserID, f.Amount, f.Reason, string(f.Status))
		if err != nil {
			return fmt.Errorf("seed fine %s: %w", f.ID, err)
		}
	}

	for _, e := range seedActivity {
		_, err := tx.Exec(
			`INSERT INTO activity(id,type,book,date,user_name) VALUES(?,?,?,?,?)`,
			e.ID, e.Type, e.Book, e.Date, e.User)
		if err != nil {
			return fmt.Errorf("seed activity %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}
