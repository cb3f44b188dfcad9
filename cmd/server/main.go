// Package main implements the entry point for the library catalog API
// server, which manages the book inventory and authenticates the users that
// maintain it.
package main

import (
	"context"
	"log"
)

// main is the entry point for the server. It initializes configuration,
// logging, the database connection and all application components, then
// starts the HTTP server and blocks until shutdown.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}
