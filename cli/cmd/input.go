package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"
)

func noCompletion(prompt.Document) []prompt.Suggest {
	return nil
}

func promptLine(label string) string {
	return strings.TrimSpace(prompt.Input(label, noCompletion))
}

// readPassword reads a line without echoing it. On a non-terminal stdin
// it falls back to an empty string; rooms without passwords are the
// common case anyway.
func readPassword(label string) string {
	fmt.Print(label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(pw)
}

// resolveUsername prefers the --name flag / config value and prompts as
// a last resort.
func resolveUsername() string {
	if displayName != "" {
		return displayName
	}
	return promptLine("username ❯ ")
}
