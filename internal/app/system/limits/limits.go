// internal/app/system/limits/limits.go
package limits

// Request body caps. Handlers wrap r.Body with http.MaxBytesReader before
// parsing so an oversized post fails fast instead of filling memory.
const (
	// MaxFormSize covers the plain forms with free text: memo bodies and
	// SMS messages.
	MaxFormSize = 1 << 20 // 1 MB

	// MaxUploadSize caps a document upload. Only the file's metadata is
	// kept, but the body still has to be read.
	MaxUploadSize = 50 << 20 // 50 MB

	// MaxUploadMemory is how much of a multipart body is held in memory
	// before spilling to temp files.
	MaxUploadMemory = 8 << 20 // 8 MB
)
