// Package bimap keeps an invertible key <-> value relation by composing
// two red-black trees, forward (K -> V) and inverse (V -> K).
package bimap

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/kv"
	"github.com/benz9527/xnavmap/lib/tree"
	"github.com/benz9527/xnavmap/xlog"
)

var (
	ErrInvalidArgument        = tree.ErrInvalidArgument
	ErrConcurrentModification = tree.ErrConcurrentModification
)

var _ kv.BidiMap[int, string] = (*BiMap[int, string])(nil)

// BiMap is a bijection between keys and values. Neither side accepts
// absent (nil or NaN) elements because values are keys of the inverse tree.
//
// Put is "last write wins": the new pair evicts both the stale value of
// the key and the stale key of the value.
//
// BiMap is not safe for concurrent use.
type BiMap[K any, V any] struct {
	forward tree.RBTree[K, V]
	inverse tree.RBTree[V, K]
	kcmp    infra.KeyComparator[K]
	vcmp    infra.KeyComparator[V]
	logger  xlog.XLogger
	version uint64
}

type Option[K any, V any] func(*BiMap[K, V])

// WithLogger reports the evicted pairs at debug level.
func WithLogger[K any, V any](logger xlog.XLogger) Option[K, V] {
	return func(m *BiMap[K, V]) {
		m.logger = logger
	}
}

func New[K infra.OrderedKey, V infra.OrderedKey](opts ...Option[K, V]) *BiMap[K, V] {
	return NewFunc[K, V](
		infra.NaturalOrderComparator[K](),
		infra.NaturalOrderComparator[V](),
		opts...,
	)
}

func NewFunc[K any, V any](
	kcmp infra.KeyComparator[K],
	vcmp infra.KeyComparator[V],
	opts ...Option[K, V],
) *BiMap[K, V] {
	m := &BiMap[K, V]{
		forward: tree.NewRBTreeFunc[K, V](kcmp),
		inverse: tree.NewRBTreeFunc[V, K](vcmp),
		kcmp:    kcmp,
		vcmp:    vcmp,
	}
	for _, o := range opts {
		if o != nil {
			o(m)
		}
	}
	return m
}

func (m *BiMap[K, V]) debug(msg string, fields ...zap.Field) {
	if m.logger != nil {
		m.logger.Debug(msg, fields...)
	}
}

func (m *BiMap[K, V]) Put(key K, val V) (err error) {
	if infra.IsAbsentKey[K](key) {
		return infra.WrapErrorStackWithMessage(ErrInvalidArgument, "[bimap] put with absent key")
	}
	if infra.IsAbsentValue[V](val) {
		return infra.WrapErrorStackWithMessage(ErrInvalidArgument, "[bimap] put with absent value")
	}

	oldVal, hasOldVal, _ := m.forward.Get(key)
	oldKey, hasOldKey, _ := m.inverse.Get(val)
	sameVal := hasOldVal && m.vcmp(oldVal, val) == 0
	sameKey := hasOldKey && m.kcmp(oldKey, key) == 0
	if sameVal && sameKey {
		return nil
	}

	if hasOldVal && !sameVal {
		_, _, rmErr := m.inverse.Remove(oldVal)
		err = multierr.Append(err, rmErr)
		m.debug("[bimap] key reassigned, stale value evicted",
			zap.Any("key", key), zap.Any("staleValue", oldVal))
	}
	if hasOldKey && !sameKey {
		_, _, rmErr := m.forward.Remove(oldKey)
		err = multierr.Append(err, rmErr)
		m.debug("[bimap] value reassigned, stale key evicted",
			zap.Any("value", val), zap.Any("staleKey", oldKey))
	}

	err = multierr.Append(err, m.forward.Put(key, val))
	err = multierr.Append(err, m.inverse.Put(val, key))
	m.version++
	return err
}

func (m *BiMap[K, V]) Get(key K) (V, bool, error) {
	return m.forward.Get(key)
}

func (m *BiMap[K, V]) GetKey(val V) (K, bool, error) {
	return m.inverse.Get(val)
}

func (m *BiMap[K, V]) Remove(key K) (V, bool, error) {
	val, ok, err := m.forward.Remove(key)
	if err != nil || !ok {
		return val, ok, err
	}
	_, _, err = m.inverse.Remove(val)
	m.version++
	return val, true, err
}

func (m *BiMap[K, V]) RemoveValue(val V) (K, bool, error) {
	key, ok, err := m.inverse.Remove(val)
	if err != nil || !ok {
		return key, ok, err
	}
	_, _, err = m.forward.Remove(key)
	m.version++
	return key, true, err
}

func (m *BiMap[K, V]) ContainsKey(key K) bool {
	return m.forward.ContainsKey(key)
}

func (m *BiMap[K, V]) ContainsValue(val V) bool {
	return m.inverse.ContainsKey(val)
}

func (m *BiMap[K, V]) Len() int64 {
	return m.forward.Len()
}

func (m *BiMap[K, V]) IsEmpty() bool {
	return m.forward.IsEmpty()
}

func (m *BiMap[K, V]) Clear() {
	m.forward.Clear()
	m.inverse.Clear()
	m.version++
}

func (m *BiMap[K, V]) Keys() []K {
	return m.forward.Keys()
}

func (m *BiMap[K, V]) Values() []V {
	return m.forward.Values()
}

func (m *BiMap[K, V]) Entries() []kv.Entry[K, V] {
	return m.forward.Entries()
}

func (m *BiMap[K, V]) String() string {
	return m.forward.String()
}

func (m *BiMap[K, V]) Foreach(action func(idx int64, key K, val V) bool) error {
	it := m.newIterator()
	for idx := int64(0); it.Next(); idx++ {
		if !action(idx, it.Key(), it.Val()) {
			break
		}
	}
	if it.err == nil {
		it.checkVersion()
	}
	return it.Err()
}

func (m *BiMap[K, V]) Iterator() kv.Iterator[K, V] {
	return m.newIterator()
}

// biIterator walks the forward tree. The forward tree may only see a value
// replacement when a key is reassigned, so the bimap version is checked too.
type biIterator[K any, V any] struct {
	kv.Iterator[K, V]
	m       *BiMap[K, V]
	err     error
	version uint64
}

func (m *BiMap[K, V]) newIterator() *biIterator[K, V] {
	return &biIterator[K, V]{
		Iterator: m.forward.Iterator(),
		m:        m,
		version:  m.version,
	}
}

func (it *biIterator[K, V]) checkVersion() bool {
	if it.m.version != it.version {
		it.err = infra.WrapErrorStackWithMessage(ErrConcurrentModification, "[bimap] structure changed during iteration")
		return false
	}
	return true
}

func (it *biIterator[K, V]) Next() bool {
	if it.err != nil || !it.checkVersion() {
		return false
	}
	return it.Iterator.Next()
}

func (it *biIterator[K, V]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.Iterator.Err()
}
