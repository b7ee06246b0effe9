// Package main provides the bootstrap of the token-monitor Lambda function. Configuration is read from the environment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/isometry/token-monitor/cmd"
)

func main() {
	c := cmd.New()
	c.SetArgs([]string{"lambda"})
	if err := c.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
