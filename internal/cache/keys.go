package cache

import "strings"

const (
	GlobalKeyPrefix = "triviaharvester"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SnapshotKey holds the JSON array of the latest harvest.
func SnapshotKey() string {
	return GenerateCacheKey("harvest", "snapshot", "latest")
}

// RunMetaKey holds a hash describing the run that produced the latest snapshot.
func RunMetaKey() string {
	return GenerateCacheKey("harvest", "run", "latest")
}
