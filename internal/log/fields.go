package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldUserKey   = "user_key"
	FieldRole      = "role"
	FieldEntryKey  = "entry_key"
	FieldOwnerKey  = "owner_key"
	FieldDate      = "date"
	FieldHours     = "hours"
	FieldCategory  = "main_category"
	FieldCount     = "count"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAuth    = "auth"
	ComponentEntries = "entries"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentCache   = "cache"
)
