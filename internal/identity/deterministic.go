package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "go-better-i18n:"

// UUID derives a deterministic UUID from a stable key using go-hashid,
// falling back to a SHA1 name based UUID when hashing fails.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID identifies the record stored under slug in collection. Imports
// rely on it to upsert the same row on every run.
func RecordUUID(collection, slug string) uuid.UUID {
	collection = strings.ToLower(strings.TrimSpace(collection))
	slug = strings.ToLower(strings.TrimSpace(slug))
	if collection == "" || slug == "" {
		return uuid.Nil
	}
	return UUID(keyPrefix + "record:" + collection + ":" + slug)
}
