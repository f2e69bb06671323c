package main

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/stest/stest/cli"
)

// stest-man writes the stest man page into the directory given as the only
// argument, or the current directory.
func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	path, err := cli.WriteManPageFile(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}
