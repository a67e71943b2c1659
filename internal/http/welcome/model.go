package welcome

// Message is the fixed greeting served at the root path.
const Message = "MamaAI backend pronto!"

// Data is the root route payload. It has exactly one field.
type Data struct {
	Msg string `json:"msg" doc:"Readiness greeting" example:"MamaAI backend pronto!"`
}

// GetOutput is the response wrapper for the root route.
type GetOutput struct {
	Body Data
}
