//go:build ignore

package main

import (
	"fmt"
	"os"

	"SnapVoter/internal/state"
	"SnapVoter/internal/statesync"
	"SnapVoter/internal/storage"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <db1_path> <db2_path>\n", os.Args[0])
		os.Exit(1)
	}

	db1Path := os.Args[1]
	db2Path := os.Args[2]

	db1, err := storage.New(db1Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db1: %v\n", err)
		os.Exit(1)
	}
	defer db1.Close()

	db2, err := storage.New(db2Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db2: %v\n", err)
		os.Exit(1)
	}
	defer db2.Close()

	d, err := statesync.CompareStores(state.NewStore(db1), state.NewStore(db2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compare: %v\n", err)
		os.Exit(1)
	}

	if d.Empty() {
		fmt.Println("States are identical")
		return
	}

	fmt.Println("States differ:")
	printKeys(fmt.Sprintf("Records in %s only", db1Path), d.OnlyLeft)
	printKeys(fmt.Sprintf("Records in %s only", db2Path), d.OnlyRight)
	printKeys("Records with different content", d.Changed)

	os.Exit(1)
}

func printKeys(title string, keys [][]byte) {
	if len(keys) == 0 {
		return
	}

	fmt.Printf("  - %s: %d\n", title, len(keys))
	for _, k := range keys {
		fmt.Printf("      %s\n", state.DescribeKey(k))
	}
}
