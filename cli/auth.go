package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

func newLoginCommand() *cobra.Command {
	var email string
	var register bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if register {
				err = rt.session.Register(ctx, email, password)
			} else {
				err = rt.session.Login(ctx, email, password)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", rt.session.CurrentUser().Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	cmd.Flags().BoolVar(&register, "register", false, "create the account before signing in")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			if err := rt.session.Restore(ctx); err != nil {
				return err
			}
			if !rt.session.IsAuthenticated() {
				fmt.Println("Not signed in.")
				return nil
			}
			rt.session.Logout(ctx)
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.restore(cmd.Context()); err != nil {
				return err
			}
			u := rt.session.CurrentUser()
			fmt.Printf("%s (user %d)\n", u.Email, u.ID)
			return nil
		},
	}
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo on a terminal and falls back to a plain
// line read when stdin is piped.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}
	fmt.Print(label)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
