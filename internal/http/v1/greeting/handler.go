package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/secure-hello/internal/platform/logging"
)

// Register wires the greeting route into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Get the service greeting",
		Tags:        []string{"Greeting"},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "greeting get", zap.String("path", "/"))
	return &GetOutput{Body: Data{Message: Message}}, nil
}
