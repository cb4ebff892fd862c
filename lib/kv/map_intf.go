package kv

// Map is the capability shared by the ordered map and the bidirectional map.
// Lookups report absence with the found flag. Every key-accepting method
// fails with an invalid argument error when the key is absent (nil or NaN),
// except ContainsKey which reports false.
//
// Implementations are not safe for concurrent use.
type Map[K any, V any] interface {
	Put(key K, val V) error
	Get(key K) (val V, found bool, err error)
	Remove(key K) (val V, found bool, err error)
	ContainsKey(key K) bool
	Len() int64
	IsEmpty() bool
	Clear()

	// Keys, Values and Entries are in-order snapshots taken at call time.
	Keys() []K
	Values() []V
	Entries() []Entry[K, V]
	// Foreach stops when action returns false. A structural modification
	// made by action ends the traversal with a concurrent modification error.
	Foreach(action func(idx int64, key K, val V) bool) error
	Iterator() Iterator[K, V]
}

type NavigableMap[K any, V any] interface {
	Map[K, V]
	FirstKey() (K, bool)
	LastKey() (K, bool)
	FirstEntry() (Entry[K, V], bool)
	LastEntry() (Entry[K, V], bool)
	// LowerKey returns the greatest key strictly less than key.
	LowerKey(key K) (K, bool, error)
	// FloorKey returns the greatest key less than or equal to key.
	FloorKey(key K) (K, bool, error)
	// CeilingKey returns the least key greater than or equal to key.
	CeilingKey(key K) (K, bool, error)
	// HigherKey returns the least key strictly greater than key.
	HigherKey(key K) (K, bool, error)
}

type BidiMap[K any, V any] interface {
	Map[K, V]
	GetKey(val V) (key K, found bool, err error)
	RemoveValue(val V) (key K, found bool, err error)
	ContainsValue(val V) bool
}

// Iterator is a cursor over an in-order traversal.
//
//	it := m.Iterator()
//	for it.Next() {
//		use(it.Key(), it.Val())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[K any, V any] interface {
	Next() bool
	Key() K
	Val() V
	Entry() Entry[K, V]
	Err() error
}
