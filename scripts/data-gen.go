/*
	Basic script that churns a store with overwrite-heavy load, to help
	produce data files full of superseded records for testing.
*/

package main

import (
	"expvar"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/0xRadioAc7iv/minicask/minicask"
)

const (
	dataFile = "churn.db"

	// Fixed universe
	totalKeys   = 100
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite = 20
	totalCycles       = 5000

	progressEvery = 500
)

func main() {
	start := time.Now()
	fmt.Println("Starting minicask churn-heavy load generator")

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	bytesWritten := new(expvar.Int)
	recordsWritten := new(expvar.Int)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	db, err := minicask.Open(
		minicask.WithDataFile(dataFile),
		minicask.WithLogger(logger),
		minicask.WithMetrics(bytesWritten, recordsWritten),
	)
	if err != nil {
		fmt.Printf("open error: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for cycle := 1; cycle <= totalCycles; cycle++ {

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := db.Set(key, val); err != nil {
				fmt.Printf("SET error: %v\n", err)
				os.Exit(1)
			}
		}

		// ---- REWRITE PHASE (forces overwrite garbage) ----
		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := db.Set(key, val); err != nil {
				fmt.Printf("REWRITE error: %v\n", err)
				os.Exit(1)
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("completed %d cycles: %d records, %d bytes\n",
				cycle, recordsWritten.Value(), bytesWritten.Value())
		}
	}

	if err := db.Close(); err != nil {
		fmt.Printf("close error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Load finished in %v: %d live keys, %d records, %d bytes on disk\n",
		time.Since(start), db.Len(), recordsWritten.Value(), bytesWritten.Value())
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
