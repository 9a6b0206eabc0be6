package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pingcheck/pingcheck/internal/config"
	"github.com/pingcheck/pingcheck/internal/logging"
	"github.com/pingcheck/pingcheck/internal/pingfederate"
)

// runCheck validates a single token and prints the resolved principal.
// The token is taken from the first positional argument, or from stdin when
// no argument is given. Exits non-zero on any failure.
func runCheck() {
	flags := config.ParseFlags()

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	token := flag.Arg(0)
	if token == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			token = strings.TrimSpace(scanner.Text())
		}
	}
	if token == "" {
		fmt.Fprintln(os.Stderr, "usage: pingcheckd check [flags] <token>")
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	client, err := pingfederate.NewClient(
		cfg.Provider.Endpoint,
		cfg.Provider.ClientID,
		cfg.Provider.ClientSecret,
		pingfederate.WithTimeout(cfg.Provider.RequestTimeout()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating introspection client: %v\n", err)
		os.Exit(1)
	}

	validator := pingfederate.NewValidator(client, nil, logger)

	auth, err := validator.Validate(context.Background(), token)
	if err != nil {
		var invalid *pingfederate.InvalidTokenError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "token rejected: %s\n", invalid.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("principal: %s\n", auth.Principal)
	fmt.Printf("authorities: %s\n", strings.Join(auth.Authorities.Values(), " "))
}
