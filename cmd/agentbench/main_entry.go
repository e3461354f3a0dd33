//go:build !excludemain

package main

import "os"

// exitFunc indirects os.Exit so the test suite can observe the process
// exit code instead of dying with it.
var exitFunc = os.Exit

func main() {
	exitFunc(runApp(os.Args))
}
