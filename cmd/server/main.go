// Command server runs the box packer as a local HTTP server, the same
// single-handler shape the Cloud Function uses without the functions
// framework's runtime wrapping.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/palletize/cargopack/internal/httpapi"
	"github.com/palletize/cargopack/internal/packerlog"
)

func main() {
	logger, base, err := packerlog.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = base.Sync() }()

	handler := httpapi.New(logger)
	http.HandleFunc("/", httpapi.RapidAPIMiddleware(handler.ServeHTTP))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("cargopack server listening on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
