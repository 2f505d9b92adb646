package utils

import (
	"flag"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// HandleCLIInputs parses the minicask-cli flags.
func HandleCLIInputs() (*string, *string) {
	dataFile := flag.String("file", "", "Data file to use for this session (overrides the config file)")
	configPath := flag.String("config", "", "Path to an optional yaml config file")
	flag.Parse()

	return dataFile, configPath
}

// SplitStringIntoCommandAndArguments splits one REPL line into the
// command word and its arguments, honouring shell style quoting so
// keys and values can contain spaces.
func SplitStringIntoCommandAndArguments(line string) (string, []string, error) {
	words, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if len(words) == 0 {
		return "", nil, nil
	}

	return strings.ToLower(words[0]), words[1:], nil
}
