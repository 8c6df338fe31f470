package library

// Role distinguishes the two kinds of library accounts.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

// LoanStatus tracks a loan from checkout to return.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanOverdue  LoanStatus = "overdue"
	LoanReturned LoanStatus = "returned"
)

// FineStatus marks whether a fine has been settled.
type FineStatus string

const (
	FineUnpaid FineStatus = "unpaid"
	FinePaid   FineStatus = "paid"
)

// Book represents one title in the catalogue with its availability counts.
// Invariant (authored into the seed data): 0 <= AvailableCopies <= TotalCopies.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	ISBN            string `json:"isbn"`
	Year            int    `json:"year"`
	Description     string `json:"description"`
	CoverURL        string `json:"cover_url"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Location        string `json:"location"`
}

// User represents a registered library account.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	StudentID string `json:"student_id,omitempty"` // empty for staff
	Avatar    string `json:"avatar"`
}

// Loan links a user to a book. Dates are calendar dates (YYYY-MM-DD);
// ReturnDate is empty until the loan is returned.
type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	UserID     string     `json:"user_id"`
	BorrowDate string     `json:"borrow_date"`
	DueDate    string     `json:"due_date"`
	ReturnDate string     `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
}

// Fine is a monetary penalty tied to a user.
type Fine struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Amount float64    `json:"amount"`
	Reason string     `json:"reason"`
	Status FineStatus `json:"status"`
}

// ActivityEntry is one row of the global activity feed on the dashboard.
// The feed is not scoped to the logged-in user.
type ActivityEntry struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "borrow" or "return"
	Book string `json:"book"`
	Date string `json:"date"`
	User string `json:"user"`
}
