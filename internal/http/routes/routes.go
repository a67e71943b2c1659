package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/mamaai/mamaai-backend/internal/http/welcome"
)

// Register wires all API routes into the provided API.
func Register(api huma.API) {
	welcome.Register(api)
}
