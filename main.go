package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"school-library/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var asRole string

	root := &cobra.Command{
		Use:           "school-library",
		Short:         "Interactive front-end for the school library",
		Long:          "A terminal front-end for the school library: search the catalogue, review your loans and fines, and browse the staff panel. All data is a fixed in-memory sample set.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(asRole)
		},
	}
	root.Flags().StringVar(&asRole, "as", "", `skip the login prompt and sign in as "student" or "staff"`)
	root.AddCommand(catalogueCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// catalogueCmd dumps the full search table without entering the session loop.
func catalogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "Print the full catalogue and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := library.NewLibraryManager()
			if err != nil {
				return err
			}
			defer mgr.Close()

			books, err := mgr.GetAllBooks()
			if err != nil {
				return err
			}
			renderBookTable(books)
			return nil
		},
	}
}

func runApp(asRole string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	mgr, err := library.NewLibraryManager()
	if err != nil {
		return fmt.Errorf("start library: %w", err)
	}
	defer mgr.Close()

	if stats, err := mgr.AdminStats(); err == nil {
		slog.Info("library seeded",
			"copies", stats.TotalCopies, "users", stats.UserCount, "loans", stats.ActiveLoanCount)
	}

	sess := library.NewSession(mgr)
	scanner := bufio.NewScanner(os.Stdin)

	switch asRole {
	case "":
		if !promptLogin(scanner, sess) {
			return nil
		}
	case string(library.RoleStudent), string(library.RoleStaff):
		if !sess.Login(library.Role(asRole)) {
			return fmt.Errorf("no seeded account with role %q", asRole)
		}
	default:
		return fmt.Errorf("unknown role %q (want student or staff)", asRole)
	}

	fmt.Printf("\nWelcome, %s!\n", sess.User().Name)
	printCommands(sess)
	renderScreen(scanner, mgr, sess)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "dashboard":
			sess.Navigate(library.ScreenDashboard)
		case "search":
			sess.Navigate(library.ScreenSearch)
		case "borrow":
			sess.Navigate(library.ScreenBorrow)
		case "return":
			sess.Navigate(library.ScreenReturn)
		case "account":
			sess.Navigate(library.ScreenAccount)
		case "admin":
			sess.Navigate(library.ScreenAdmin)
		case "view":
			if len(fields) < 2 {
				fmt.Println("Usage: view <book id>")
				continue
			}
			sess.Navigate(library.ScreenBookDetail, fields[1])
		case "help":
			printCommands(sess)
			continue
		case "logout":
			slog.Info("logged out", "user", sess.User().Name)
			sess.Logout()
			if !promptLogin(scanner, sess) {
				return nil
			}
			fmt.Printf("\nWelcome, %s!\n", sess.User().Name)
			printCommands(sess)
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Unknown command. Type 'help' for the command list.")
			continue
		}

		renderScreen(scanner, mgr, sess)
	}
	return nil
}

// renderScreen dispatches to the renderer for the session's active screen.
// The admin screen has a render guard: anyone without staff access gets no
// output at all, not an error.
func renderScreen(sc *bufio.Scanner, mgr *library.LibraryManager, sess *library.Session) {
	switch sess.Screen() {
	case library.ScreenDashboard:
		handleDashboard(mgr, sess)
	case library.ScreenSearch:
		handleSearch(sc, mgr)
	case library.ScreenBorrow:
		renderBorrowStub()
	case library.ScreenReturn:
		renderReturnStub()
	case library.ScreenAccount:
		handleAccount(mgr, sess)
	case library.ScreenAdmin:
		if sess.CanViewAdmin() {
			handleAdmin(mgr)
		}
	case library.ScreenBookDetail:
		handleBookDetail(sc, mgr, sess)
	}
}

// promptLogin shows the sign-in form until a login succeeds. The password is
// read masked but never validated, and the role comes from the email text:
// addresses containing "staff" sign in as staff, everyone else as a student.
func promptLogin(sc *bufio.Scanner, sess *library.Session) bool {
	fmt.Println("School Library System")
	fmt.Println("Sign in to manage your library account")
	fmt.Println(`(demo: "john@school.edu" for student, "sarah@staff.school.edu" for staff)`)

	for {
		fmt.Print("\nEmail: ")
		if !sc.Scan() {
			return false
		}
		email := strings.TrimSpace(sc.Text())
		if email == "" {
			continue
		}

		readPassword("Password: ")

		role := library.RoleStudent
		if strings.Contains(email, "staff") {
			role = library.RoleStaff
		}
		if !sess.Login(role) {
			// No seeded account for the role: the session stays untouched.
			continue
		}
		slog.Info("logged in", "user", sess.User().Name, "role", role)
		return true
	}
}

// readPassword reads a masked password. The value is decorative: the demo
// never validates credentials, so errors and the input itself are discarded.
func readPassword(prompt string) {
	fmt.Print(prompt)
	_, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return
	}
	fmt.Println()
}

func printCommands(sess *library.Session) {
	fmt.Println("Commands: dashboard, search, view <book id>, borrow, return, account, logout, exit")
	if sess.CanViewAdmin() {
		fmt.Println("Staff:    admin")
	}
}
