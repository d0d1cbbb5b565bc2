package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/alnah/go-pdf2md/internal/config"
)

// runAuthCmd handles the auth subcommands: set, show, path.
func runAuthCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printAuthUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "set":
		return runAuthSet(args[1:], env)
	case "show":
		return runAuthShow(env)
	case "path":
		return runAuthPath(env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown auth subcommand: %s\n", args[0])
		printAuthUsage(env.Stderr)
		return ExitUsage
	}
}

// runAuthSet stores the API key in the credentials file. The key comes from
// the argument or, when absent, from a stdin prompt so it stays out of shell
// history.
func runAuthSet(args []string, env *Environment) int {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		fmt.Fprint(env.Stderr, "API key: ")
		scanner := bufio.NewScanner(env.Stdin)
		if scanner.Scan() {
			key = strings.TrimSpace(scanner.Text())
		}
	}

	if key == "" {
		fmt.Fprintln(env.Stderr, "no API key provided")
		return ExitUsage
	}

	path, err := config.DefaultCredentialsPath()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}

	if err := config.SaveCredentials(path, &config.Credentials{APIKey: key}); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitIO
	}

	fmt.Fprintf(env.Stdout, "API key saved to %s\n", path)
	return ExitSuccess
}

// runAuthShow prints the masked stored key and where it came from.
func runAuthShow(env *Environment) int {
	path, err := config.DefaultCredentialsPath()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}

	creds, err := config.LoadCredentials(path)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}

	if creds.APIKey == "" {
		fmt.Fprintln(env.Stdout, "No API key stored. Run 'pdf2md auth set' to store one.")
		return ExitSuccess
	}

	fmt.Fprintf(env.Stdout, "API key: %s (from %s)\n", maskKey(creds.APIKey), path)
	return ExitSuccess
}

// runAuthPath prints the credentials file location.
func runAuthPath(env *Environment) int {
	path, err := config.DefaultCredentialsPath()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	fmt.Fprintln(env.Stdout, path)
	return ExitSuccess
}

// maskKey shows enough of the key to recognize it without exposing it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
