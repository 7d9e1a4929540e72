package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/canva/internal/config"
	"github.com/jonathan/canva/internal/courses"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save your school URL and access token",
	Long: `Prompt for the school base URL and an access token, verify them against the
course listing, and save them to the credentials file. The token is read
without echo when stdin is a terminal.`,
	Args: cobra.ExactArgs(0),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

//nolint:errcheck // prompts go to stdout; errors are not recoverable
func runLogin(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	if s.settings.BaseURL != "" {
		fmt.Fprintf(out, "School base URL [%s]: ", s.settings.BaseURL)
	} else {
		fmt.Fprint(out, "School base URL: ")
	}
	rawURL, err := readLine(reader)
	if err != nil {
		return fmt.Errorf("failed to read base URL: %w", err)
	}
	if rawURL == "" {
		rawURL = s.settings.BaseURL
	}
	baseURL, err := config.NormalizeBaseURL(rawURL)
	if err != nil {
		return &InputError{Message: err.Error(), Cause: err}
	}

	fmt.Fprint(out, "Access token: ")
	token, err := readSecret(in, reader, out)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}

	creds := &config.Credentials{Token: token, BaseURL: baseURL}
	if err := creds.Validate(); err != nil {
		return &InputError{Message: "base URL and access token are required", Cause: err}
	}

	// Only save credentials the server accepts.
	fetcher := courses.NewFetcher(s.newClient(creds), s.logger)
	if _, err := fetcher.Courses(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.SaveCredentials(s.stateDir, creds); err != nil {
		return err
	}
	fmt.Fprintln(out, "Successfully logged in!")
	return nil
}

// readLine reads one trimmed line. A final line without a newline is accepted.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads the token without echo when in is a terminal and falls
// back to a plain line read otherwise.
//
//nolint:errcheck // prompts go to stdout; errors are not recoverable
func readSecret(in io.Reader, reader *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return readLine(reader)
}
