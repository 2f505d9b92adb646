package main

import (
	"bufio"
	"expvar"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/0xRadioAc7iv/minicask/internal"
	"github.com/0xRadioAc7iv/minicask/internal/utils"
	"github.com/0xRadioAc7iv/minicask/minicask"
)

func main() {
	dataFile, configPath := utils.HandleCLIInputs()

	cfg := internal.DefaultConfig()
	if *configPath != "" {
		loaded, err := internal.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	opts := []minicask.Option{
		minicask.WithDataFile(cfg.DataFile),
		minicask.WithLogger(logger),
	}

	var bytesWritten, recordsWritten *expvar.Int
	if cfg.Metrics {
		bytesWritten = new(expvar.Int)
		recordsWritten = new(expvar.Int)
		opts = append(opts, minicask.WithMetrics(bytesWritten, recordsWritten))
	}

	db, err := minicask.Open(opts...)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Using data file %s\n", cfg.DataFile)
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Println("input error:", err)
			break
		}

		command, arguments, err := utils.SplitStringIntoCommandAndArguments(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		if command == "" {
			continue
		}
		if command == "exit" {
			break
		}

		runCommand(db, command, arguments)
	}

	if err := db.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close warning:", err)
	}

	if cfg.Metrics {
		fmt.Printf("Session wrote %d records (%d bytes)\n", recordsWritten.Value(), bytesWritten.Value())
	}
}

func runCommand(db *minicask.DB, command string, arguments []string) {
	switch command {
	case "set":
		if len(arguments) != 2 {
			fmt.Println("usage: set <key> <value>")
			return
		}
		if err := db.Set(arguments[0], arguments[1]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("ok")

	case "get":
		if len(arguments) != 1 {
			fmt.Println("usage: get <key>")
			return
		}
		value, err := db.Get(arguments[0])
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(value)

	case "has":
		if len(arguments) != 1 {
			fmt.Println("usage: has <key>")
			return
		}
		fmt.Println(db.Has(arguments[0]))

	case "keys":
		for _, key := range db.Keys() {
			fmt.Println(key)
		}

	case "count":
		fmt.Println(db.Len())

	case "help":
		printHelp()

	default:
		fmt.Printf("unknown command %q, try 'help'\n", command)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  set <key> <value>   store a value (quote values containing spaces)
  get <key>           print the value for a key, an empty line if absent
  has <key>           print whether a key is present
  keys                print every key, one per line
  count               print the number of keys
  help                show this help
  exit                sync the data file and quit`)
}
