package welcome

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/mamaai/mamaai-backend/internal/platform/logging"
)

// Register wires the root route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-welcome",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service greeting",
		Description: "Returns a fixed greeting confirming the backend is up. Stateless and idempotent.",
		Tags:        []string{"Welcome"},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "welcome")
	return &GetOutput{Body: Data{Msg: Message}}, nil
}
