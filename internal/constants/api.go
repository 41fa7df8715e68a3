package constants

// API Endpoints
const (
	// Search job endpoints
	EndpointSearchJobs       = "/services/search/jobs"
	EndpointSearchJob        = "/services/search/jobs/%s"
	EndpointSearchJobResults = "/services/search/jobs/%s/results"

	// Authentication endpoints
	EndpointAuthLogin = "/services/auth/login"

	// Metadata endpoints
	EndpointIndexes       = "/services/data/indexes"
	EndpointSavedSearches = "/services/saved/searches"
)

// HTTP Headers
const (
	HeaderAccept          = "Accept"
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderUserAgent       = "User-Agent"
	HeaderContentTypeJSON = "application/json"
	HeaderContentTypeForm = "application/x-www-form-urlencoded"
)

// Authorization scheme prefixes
const (
	BearerPrefix     = "Bearer "
	SessionKeyPrefix = "Splunk "
)

// User Agent
const UserAgentLoghoundMCP = "Loghound-MCP-Server/1.0"

// EnvMaskPII is the environment variable controlling PII masking of tool
// output. Any value other than an explicit falsy one enables masking.
const EnvMaskPII = "LOGHOUND_MASK_PII"
