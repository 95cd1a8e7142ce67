package storage

import (
	"crypto/rand"
	"encoding/binary"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"
)

// SanitizeFilename strips directory components and replaces characters that
// are unsafe in object keys. An empty or fully-stripped name becomes "file".
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name = strings.Trim(b.String(), "._")
	if name == "" {
		return "file"
	}
	return name
}

// Extension returns the filename's extension lowercased and without the
// leading dot, or "" when there is none.
func Extension(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// ContentTypeByExtension resolves a content type from the filename's
// extension, falling back to application/octet-stream.
func ContentTypeByExtension(filename string) string {
	ext := Extension(filename)
	if ext == "" {
		return "application/octet-stream"
	}
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// UploadPath builds a collision-free object key under dir, keeping the
// original file's extension: dir/<millis>-<random>.<ext>.
func UploadPath(dir, filename string) string {
	key := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + randomSuffix()
	if ext := Extension(filename); ext != "" {
		key += "." + ext
	}

	dir = strings.Trim(dir, "/")
	if dir == "" {
		return key
	}
	return dir + "/" + key
}

// randomSuffix returns a short base36 string from crypto/rand.
func randomSuffix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock rather than panic in an upload path.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
}
