// Package httpserver wraps net/http with graceful shutdown.
//
// The server stops on context cancellation or on SIGINT/SIGTERM, draining
// in-flight requests within a configurable shutdown timeout. Construction
// uses functional options; invalid option input panics so a misconfigured
// process fails at startup.
package httpserver
