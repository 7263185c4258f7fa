// Command picker binds custom checkbox and radio controls to the native
// inputs of an HTML document and prints the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-drift/picker/cmd/picker/cmd"
)

func main() {
	if err := cmd.Execute(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
