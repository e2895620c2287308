package gateway

import "strings"

// mimeTypes maps lowercase file extensions to content types for the media
// the album actually stores: photos, video, audio notes, and vault
// documents.
var mimeTypes = map[string]string{
	// Images
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
	"heic": "image/heic",
	"svg":  "image/svg+xml",

	// Video
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"webm": "video/webm",

	// Audio
	"mp3": "audio/mpeg",
	"m4a": "audio/mp4",
	"wav": "audio/wav",
	"ogg": "audio/ogg",

	// Documents
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"json": "application/json",
}

// octetStream is the fallback for unknown or missing extensions.
const octetStream = "application/octet-stream"

// ContentTypeByExt returns the content type for a file extension (without
// the dot), case-insensitively. Unknown extensions map to
// application/octet-stream.
func ContentTypeByExt(ext string) string {
	if ct, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return octetStream
}

// isMediaType reports whether a content type is rendered inline by
// browsers rather than downloaded.
func isMediaType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") ||
		strings.HasPrefix(contentType, "video/") ||
		strings.HasPrefix(contentType, "audio/")
}
