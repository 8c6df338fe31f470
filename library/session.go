package library

// Screen selects which view the session loop renders.
type Screen string

const (
	ScreenDashboard  Screen = "dashboard"
	ScreenSearch     Screen = "search"
	ScreenBorrow     Screen = "borrow"
	ScreenReturn     Screen = "return"
	ScreenAccount    Screen = "account"
	ScreenAdmin      Screen = "admin"
	ScreenBookDetail Screen = "book-detail"
)

// Session owns the login state and the active screen. It is the only mutable
// state in the program and is passed explicitly to the renderers; the stores
// themselves stay read-only.
type Session struct {
	lm           *LibraryManager
	user         *User
	screen       Screen
	selectedBook string
}

// NewSession starts a logged-out session on the dashboard screen.
func NewSession(lm *LibraryManager) *Session {
	return &Session{lm: lm, screen: ScreenDashboard}
}

// Login selects the first seeded user with the given role and lands on the
// dashboard. When no such user exists the session is left untouched and
// Login reports false.
func (s *Session) Login(role Role) bool {
	user, err := s.lm.db.FirstUserByRole(role)
	if err != nil {
		return false
	}
	s.user = user
	s.screen = ScreenDashboard
	return true
}

// Logout clears the login and resets navigation.
func (s *Session) Logout() {
	s.user = nil
	s.screen = ScreenDashboard
	s.selectedBook = ""
}

// Navigate switches screens. A book id, when given, becomes the selection
// for the book detail screen.
func (s *Session) Navigate(screen Screen, bookID ...string) {
	s.screen = screen
	if len(bookID) > 0 && bookID[0] != "" {
		s.selectedBook = bookID[0]
	}
}

// User returns the logged-in user, or nil.
func (s *Session) User() *User { return s.user }

// LoggedIn reports whether a user is present.
func (s *Session) LoggedIn() bool { return s.user != nil }

// Screen returns the active screen.
func (s *Session) Screen() Screen { return s.screen }

// SelectedBook returns the book id chosen for the detail screen.
func (s *Session) SelectedBook() string { return s.selectedBook }

// CanViewAdmin is the render guard for the staff panel: the screen shows
// nothing at all for everyone else, with no error surfaced.
func (s *Session) CanViewAdmin() bool {
	return s.user != nil && s.user.Role == RoleStaff
}
