// Package main provides the pagepilot command: a line-oriented harness
// over the browser action surface. Each input line is one action
// invocation, "<action> <payload>", and each result is printed to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pagepilot/pagepilot/pkg/actions"
	"github.com/pagepilot/pagepilot/pkg/config"
	"github.com/pagepilot/pagepilot/pkg/logging"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "pagepilot.yaml", "Path to configuration file (YAML)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pagepilot - browser automation controller\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pagepilot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nInput protocol (one action per line on stdin):\n")
		fmt.Fprintf(os.Stderr, "  help\n")
		fmt.Fprintf(os.Stderr, "  init\n")
		fmt.Fprintf(os.Stderr, "  navigate example.com\n")
		fmt.Fprintf(os.Stderr, "  list_interactive\n")
		fmt.Fprintf(os.Stderr, "  click 3\n")
		fmt.Fprintf(os.Stderr, "  fill 5||jane@example.com\n")
		fmt.Fprintf(os.Stderr, "  close\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagepilot v%s\n", version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pagepilot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logErr := logging.NewLogger("main")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "pagepilot: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	controller, err := actions.NewController(cfg, logger)
	if err != nil {
		return err
	}
	registry := actions.DefaultRegistry(controller)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Whatever happens, the browser must not outlive the process.
	defer func() {
		if controller.Session().Started() {
			if closeErr := controller.Session().Close(); closeErr != nil {
				logger.Errorf("shutdown: %v", closeErr)
			}
		}
	}()

	logger.Infof("pagepilot v%s started (config=%s log=%s)", version, configPath, logger.LogPath())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, payload, _ := strings.Cut(line, " ")
		if name == "help" {
			printMenu(registry)
			continue
		}
		logger.Debugf("dispatch %s", name)

		result, err := registry.Dispatch(ctx, name, payload)
		if err != nil {
			logger.Errorf("action %s: %v", name, err)
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(result)
	}

	return scanner.Err()
}

// printMenu lists every registered action with its payload documentation.
func printMenu(registry *actions.Registry) {
	fmt.Println("Actions (one per line, \"<action> <payload>\"):")
	for _, action := range registry.List() {
		fmt.Printf("  %-20s %s\n", action.Name(), action.Description())
	}
}
