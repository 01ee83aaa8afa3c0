package objpath

import (
	"mime"
	"path"
	"strings"
)

// Common MIME types
const (
	MIMETypeTextPlain       = "text/plain"
	MIMETypeApplicationJSON = "application/json"
	MIMETypeApplicationGzip = "application/gzip"
	MIMETypeOctetStream     = "application/octet-stream"
)

// Extensions seen constantly in object stores that the platform mime
// database does not always know
var extensionToMIME = map[string]string{
	".txt":     MIMETypeTextPlain,
	".log":     MIMETypeTextPlain,
	".json":    MIMETypeApplicationJSON,
	".jsonl":   "application/x-ndjson",
	".ndjson":  "application/x-ndjson",
	".csv":     "text/csv",
	".tsv":     "text/tab-separated-values",
	".md":      "text/markdown",
	".gz":      MIMETypeApplicationGzip,
	".bz2":     "application/x-bzip2",
	".zst":     "application/zstd",
	".tar":     "application/x-tar",
	".zip":     "application/zip",
	".parquet": "application/vnd.apache.parquet",
	".avro":    "application/avro",
	".pdf":     "application/pdf",
}

// GuessContentType determines a content type for an object key from its
// extension. Falls back to application/octet-stream when nothing matches.
func GuessContentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return MIMETypeOctetStream
}
