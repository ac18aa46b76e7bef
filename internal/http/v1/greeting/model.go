package greeting

// Message is the fixed greeting served at the API root.
const Message = "Hello from secure Node.js app!"

// Data models the greeting payload.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello from secure Node.js app!"`
}

// GetOutput is the response wrapper for the greeting endpoint.
type GetOutput struct {
	Body Data
}
