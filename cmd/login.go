package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/simonvc/trackit/internal/session"
	"github.com/simonvc/trackit/internal/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

var (
	authName     string
	authEmail    string
	authPassword string
)

// prompt asks for value on stdin when the flag was left empty.
func prompt(label string, value *string) error {
	if *value != "" {
		return nil
	}
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	*value = strings.TrimSpace(line)
	return nil
}

// promptPassword reads the password without echo when stdin is a terminal.
func promptPassword(value *string) error {
	fd := int(os.Stdin.Fd())
	if *value != "" || !term.IsTerminal(fd) {
		return prompt("Password", value)
	}
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	*value = string(pw)
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := prompt("Email", &authEmail); err != nil {
			return err
		}
		if err := promptPassword(&authPassword); err != nil {
			return err
		}

		sess, err := session.Load(cfg.SessionFile)
		if err != nil {
			return err
		}
		if err := tracker.Login(cmd.Context(), newClient(), sess, authEmail, authPassword); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", strings.TrimSpace(authEmail))
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := prompt("Name", &authName); err != nil {
			return err
		}
		if err := prompt("Email", &authEmail); err != nil {
			return err
		}
		if err := promptPassword(&authPassword); err != nil {
			return err
		}

		if err := tracker.Signup(cmd.Context(), newClient(), authName, authEmail, authPassword); err != nil {
			return err
		}
		fmt.Println("Account created. Run \"trackit login\" to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Load(cfg.SessionFile)
		if err != nil {
			return err
		}
		if err := tracker.Logout(sess); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
}
