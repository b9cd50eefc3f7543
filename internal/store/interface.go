package store

// Repository is a device-local key/value store. Values are opaque strings;
// expiry is the caller's concern.
type Repository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	DeletePrefix(prefix string) (int64, error)
	Keys(prefix string) ([]string, error)

	Path() string
	Close() error
}
