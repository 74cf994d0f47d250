// Command shopctl is a small storefront client for the Shopmate auth API.
// The session survives between invocations: login stores the user and token
// under the state directory, and every later command attaches that token.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/shopmate/shopmate-go/internal/client"
	"github.com/shopmate/shopmate-go/internal/model"
	"github.com/shopmate/shopmate-go/internal/session"
)

const usage = `usage: shopctl <command>

commands:
  register         create an account
  login            sign in and store the session
  whoami           show the signed-in user
  update           update profile fields
  reset-password   reset a forgotten password via the security answer
  logout           discard the stored session
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sessions := session.NewStore(stateDir())
	if err := sessions.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not restore session:", err)
	}

	api := client.New(apiBaseURL(), sessions)
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	var err error
	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, api, reader)
	case "login":
		err = runLogin(ctx, api, reader)
	case "whoami":
		err = runWhoami(ctx, api, sessions)
	case "update":
		err = runUpdate(ctx, api, sessions, reader)
	case "reset-password":
		err = runResetPassword(ctx, api, reader)
	case "logout":
		err = api.Logout()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runRegister(ctx context.Context, api *client.Client, reader *bufio.Reader) error {
	req := model.RegisterRequest{
		Name:    prompt(reader, "Name"),
		Email:   prompt(reader, "Email"),
		Phone:   prompt(reader, "Phone"),
		Address: prompt(reader, "Address"),
		Answer:  prompt(reader, "Security answer"),
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	req.Password = password

	user, err := api.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s <%s>, you can now log in\n", user.Name, user.Email)
	return nil
}

func runLogin(ctx context.Context, api *client.Client, reader *bufio.Reader) error {
	email := prompt(reader, "Email")
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	user, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runWhoami(ctx context.Context, api *client.Client, sessions *session.Store) error {
	if !sessions.Current().Authenticated() {
		return fmt.Errorf("not signed in")
	}

	user, err := api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s phone=%s address=%s\n",
		user.Name, user.Email, user.Role, user.Phone, user.Address)
	return nil
}

func runUpdate(ctx context.Context, api *client.Client, sessions *session.Store, reader *bufio.Reader) error {
	fmt.Println("Leave a field empty to keep its current value.")
	req := model.UpdateProfileRequest{
		Name:    prompt(reader, "Name"),
		Phone:   prompt(reader, "Phone"),
		Address: prompt(reader, "Address"),
	}

	// The server requires a name on every update; fall back to the stored one.
	if req.Name == "" {
		if sess := sessions.Current(); sess.User != nil {
			req.Name = sess.User.Name
		}
	}

	oldPassword, err := promptPassword("Current password")
	if err != nil {
		return err
	}
	req.OldPassword = oldPassword

	newPassword, err := promptPassword("New password (empty to keep)")
	if err != nil {
		return err
	}
	if newPassword != "" {
		confirm, err := promptPassword("Confirm new password")
		if err != nil {
			return err
		}
		req.NewPassword = newPassword
		req.ConfirmPassword = confirm
	}

	user, err := api.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("profile updated for %s <%s>\n", user.Name, user.Email)
	return nil
}

func runResetPassword(ctx context.Context, api *client.Client, reader *bufio.Reader) error {
	req := model.ForgotPasswordRequest{
		Email:  prompt(reader, "Email"),
		Answer: prompt(reader, "Security answer"),
	}

	newPassword, err := promptPassword("New password")
	if err != nil {
		return err
	}
	req.NewPassword = newPassword

	if err := api.ForgotPassword(ctx, req); err != nil {
		return err
	}
	fmt.Println("password reset, log in with the new password")
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func apiBaseURL() string {
	if v := os.Getenv("SHOPMATE_API"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func stateDir() string {
	if v := os.Getenv("SHOPMATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopmate"
	}
	return filepath.Join(home, ".shopmate")
}
