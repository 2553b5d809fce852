package kvstore

// KeyValueStore is the durable local key/value state used by the season
// tracker (past-seasons archive, current week number). Values are opaque
// strings; callers handle their own JSON encoding.
type KeyValueStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Clear removes all keys.
	Clear() error
}
