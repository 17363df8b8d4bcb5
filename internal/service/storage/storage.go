package storage

// Storage defines the interface for dirty-tracked object storage, scoped
// to what the analysis service consumes. MemoryStorage carries a few
// extra container methods beyond it.
type Storage[K comparable, V any] interface {
	Set(key K, value V)
	SetClean(key K, value V)
	Get(key K) (V, bool)
	GetAllValues() []V
	GetDirty() map[K]V
	ClearDirty(keys []K)
}
