// Command stubgen generates unit test stubs for JavaScript and TypeScript
// modules.
//
// Usage:
//
//	stubgen generate src/user.service.ts
//	stubgen exports src/user.service.ts --json
//	stubgen scan ./src --workers 8
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
