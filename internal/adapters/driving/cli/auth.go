package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	Long: `Sign in with your MineGuard email and password.

The token is stored in the config directory and used by every other
command. A running 'mineguard tui' picks it up automatically.

Examples:
  mineguard login
  mineguard login --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

// loginEmail is a flag for the login command.
var loginEmail string

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Auth == nil {
		return errNotConfigured
	}

	in := bufio.NewReader(cmd.InOrStdin())
	email := strings.TrimSpace(loginEmail)
	if email == "" {
		cmd.Print("Email: ")
		line, err := readLine(in)
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	cmd.Print("Password: ")
	password, err := readPassword(cmd.InOrStdin(), in)
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	session, err := services.Auth.Login(cmd.Context(), domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		if domain.Classify(err) == domain.FailureAuth {
			return fmt.Errorf("invalid email or password: %w", err)
		}
		return err
	}

	user := session.User
	if user == "" {
		user = email
	}
	cmd.Printf("Signed in as %s\n", user)
	return nil
}

// readPassword reads without echo from a terminal and falls back to a
// plain line for piped input.
func readPassword(src io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := src.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	return readLine(buffered)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Auth == nil {
		return errNotConfigured
	}
	if err := services.Auth.Logout(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Auth == nil {
		return errNotConfigured
	}
	if !services.Auth.Authenticated() {
		cmd.Println("Not signed in.")
		return nil
	}
	account := services.Auth.Account()
	if account == "" {
		account = "(unknown account)"
	}
	cmd.Printf("Signed in as %s\n", account)
	return nil
}
