package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	ctx := context.Background()
	app, shutdown, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "citefix: %v\n", err)
		return 1
	}
	defer shutdown(ctx)

	command := os.Args[1]
	args := os.Args[2:]

	var cmdErr error
	switch command {
	case "auth":
		cmdErr = app.handleAuth(ctx, args)
	case "signalements":
		cmdErr = app.handleSignalements(ctx, args)
	case "admin":
		cmdErr = app.handleAdmin(ctx, args)
	case "profile":
		cmdErr = app.handleProfile(ctx, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		return 1
	}

	// Let the best-effort backend logout finish before the process exits.
	app.session.Wait()

	if cmdErr != nil {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Print(`CitéFix CLI

Usage:
  citefix <command> [options]

Commands:
  auth           Authentication (login, logout, signup, whoami, refresh)
  signalements   Signalements (list, show, create, delete, validate)
  admin          Administration (users, role, status, stats) - admin access required
  profile        Profile (show, update)
  help           Show this help message

Environment Variables:
  CITEFIX_API_BASEURL           Backend API base URL (default: http://localhost:3000/api)
  CITEFIX_LOGLEVEL              Log level (default: info)
  OTEL_EXPORTER_OTLP_ENDPOINT   Enable request tracing

Examples:
  citefix auth login -email jean@exemple.bj -password secret
  citefix signalements list -search "nid de poule" -category infrastructure
  citefix signalements create -title "Nid de poule" -description "..." -category infrastructure -address "Avenue des Martyrs"
  citefix admin users -role admin
`)
}
