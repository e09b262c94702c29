package config

const (
	// MaxTitleLength is the maximum length for entry titles.
	// Matches the journal's title column and keeps the heading line short.
	MaxTitleLength = 255

	// MaxContentLength is the maximum length of a single entry body in bytes.
	// Pasted screenshots are stored inline as data URIs, so this is generous.
	MaxContentLength = 5 << 20

	// MaxReportEntries caps the number of entries in one report request.
	MaxReportEntries = 5000

	// DefaultMaxRequestBytes is the default request body cap (MAX_REQUEST_BYTES).
	DefaultMaxRequestBytes = 10 << 20
)
