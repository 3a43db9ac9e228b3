package models

// Model identifiers used when the caller does not pick one.
const (
	DefaultNameModel = "gemini-3-flash-preview"
	DefaultLogoModel = "black-forest-labs/FLUX.1-schnell"
)

// NameModels are the Gemini models offered for name generation.
var NameModels = []string{
	"gemini-3-flash-preview",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
}

// GenerateNamesRequest is the body of POST /api/generate-names.
type GenerateNamesRequest struct {
	Description string `json:"description"`
	Model       string `json:"model"`
}

// GenerateNamesResponse is the success body of POST /api/generate-names.
type GenerateNamesResponse struct {
	Names []string `json:"names"`
}

// GenerateLogoRequest is the body of POST /api/generate-logo.
type GenerateLogoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model"`
}

// GenerateLogoResponse is the success body of POST /api/generate-logo.
// Image is a data URI usable directly as an image source.
type GenerateLogoResponse struct {
	Image string `json:"image"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerationKind classifies a history entry.
type GenerationKind string

const (
	GenerationKindNames GenerationKind = "names"
	GenerationKindLogo  GenerationKind = "logo"
)

func (k GenerationKind) IsValid() bool {
	return k == GenerationKindNames || k == GenerationKindLogo
}

// Generation is one recorded backend generation.
type Generation struct {
	ID          string         `json:"id"`
	Kind        GenerationKind `json:"kind"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description"`
	Model       string         `json:"model"`
	Result      string         `json:"result"`
	CreatedAt   int64          `json:"createdAt"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Generations []Generation `json:"generations"`
}

// ServiceCheck reports the state of one dependency.
type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string       `json:"status"`
	DB     ServiceCheck `json:"db"`
	Names  ServiceCheck `json:"names"`
	Logos  ServiceCheck `json:"logos"`
}
