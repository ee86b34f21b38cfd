// Command function deploys the box packer as a Google Cloud Function,
// registering the same httpapi.Handler the local server uses with the
// functions framework.
package main

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/palletize/cargopack/internal/httpapi"
	"github.com/palletize/cargopack/internal/packerlog"
)

func init() {
	logger, _, err := packerlog.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	handler := httpapi.New(logger)
	functions.HTTP("Packer", httpapi.RapidAPIMiddleware(handler.ServeHTTP))
}

func main() {
	if err := funcframework.Start(os.Getenv("FUNCTION_TARGET")); err != nil {
		log.Fatalf("funcframework.Start: %v", err)
	}
}
