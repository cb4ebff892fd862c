package bimap

import (
	"math"
	randv2 "math/rand"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/tree"
)

func requireBijection[K any, V any](t *testing.T, m *BiMap[K, V]) {
	t.Helper()
	require.Equal(t, m.forward.Len(), m.inverse.Len())
	err := m.Foreach(func(_ int64, key K, val V) bool {
		gotVal, ok, err := m.Get(key)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 0, int(m.vcmp(val, gotVal)))
		gotKey, ok, err := m.GetKey(val)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 0, int(m.kcmp(key, gotKey)))
		return true
	})
	require.NoError(t, err)
	for _, err := range []error{
		tree.RedViolationValidate[V, K](m.inverse),
		tree.BlackViolationValidate[V, K](m.inverse),
		tree.RedViolationValidate[K, V](m.forward),
		tree.BlackViolationValidate[K, V](m.forward),
	} {
		require.NoError(t, err)
	}
}

func TestBiMapPutAndGet(t *testing.T) {
	m := New[int, string]()
	require.True(t, m.IsEmpty())
	require.NoError(t, m.Put(1, "one"))
	require.NoError(t, m.Put(2, "two"))
	require.NoError(t, m.Put(3, "three"))

	val, ok, err := m.Get(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", val)

	key, ok, err := m.GetKey("three")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, key)

	_, ok, err = m.Get(4)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = m.GetKey("four")
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, int64(3), m.Len())
	require.Equal(t, []int{1, 2, 3}, m.Keys())
	require.Equal(t, []string{"one", "two", "three"}, m.Values())
	require.Equal(t, "{1=one, 2=two, 3=three}", m.String())
	require.Len(t, m.Entries(), 3)
	requireBijection[int, string](t, m)
}

func TestBiMapSamePairIsNoop(t *testing.T) {
	m := New[int, string]()
	require.NoError(t, m.Put(1, "one"))
	it := m.Iterator()
	require.NoError(t, m.Put(1, "one"))
	require.True(t, it.Next())
	require.NoError(t, it.Err())
	require.Equal(t, int64(1), m.Len())
}

func TestBiMapReassignValue(t *testing.T) {
	m := New[int, string]()
	require.NoError(t, m.Put(1, "one"))
	require.NoError(t, m.Put(1, "uno"))

	val, ok, err := m.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "uno", val)

	_, ok, err = m.GetKey("one")
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, m.ContainsValue("one"))

	key, ok, err := m.GetKey("uno")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, int64(1), m.Len())
	requireBijection[int, string](t, m)
}

func TestBiMapReassignKey(t *testing.T) {
	m := New[int, string]()
	require.NoError(t, m.Put(1, "x"))
	require.NoError(t, m.Put(2, "x"))

	_, ok, err := m.Get(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, m.ContainsKey(1))

	val, ok, err := m.Get(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", val)
	require.Equal(t, int64(1), m.Len())
	requireBijection[int, string](t, m)
}

func TestBiMapReassignBothSides(t *testing.T) {
	m := New[int, string]()
	require.NoError(t, m.Put(1, "a"))
	require.NoError(t, m.Put(2, "b"))

	// Key 1 leaves "a", value "b" leaves key 2.
	require.NoError(t, m.Put(1, "b"))
	require.Equal(t, int64(1), m.Len())
	require.Equal(t, []int{1}, m.Keys())
	require.Equal(t, []string{"b"}, m.Values())
	require.False(t, m.ContainsValue("a"))
	require.False(t, m.ContainsKey(2))
	requireBijection[int, string](t, m)
}

func TestBiMapRemove(t *testing.T) {
	m := New[int, string]()
	require.NoError(t, m.Put(1, "one"))
	require.NoError(t, m.Put(2, "two"))

	val, ok, err := m.Remove(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "one", val)
	require.False(t, m.ContainsKey(1))
	require.False(t, m.ContainsValue("one"))

	_, ok, err = m.Remove(1)
	require.NoError(t, err)
	require.False(t, ok)

	key, ok, err := m.RemoveValue("two")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, key)
	require.False(t, m.ContainsKey(2))
	require.False(t, m.ContainsValue("two"))
	require.True(t, m.IsEmpty())

	_, ok, err = m.RemoveValue("two")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBiMapClear(t *testing.T) {
	m := New[int, string]()
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Put(i, strconv.Itoa(i)))
	}
	m.Clear()
	require.True(t, m.IsEmpty())
	require.Equal(t, int64(0), m.Len())
	require.True(t, m.inverse.IsEmpty())
	require.False(t, m.ContainsValue("1"))
}

func TestBiMapAbsentArguments(t *testing.T) {
	cmp := func(i, j *string) int64 {
		return infra.NaturalOrderComparator[string]()(*i, *j)
	}
	m := NewFunc[*string, *string](cmp, cmp)
	k, v := "k", "v"

	require.ErrorIs(t, m.Put(nil, &v), ErrInvalidArgument)
	require.ErrorIs(t, m.Put(&k, nil), ErrInvalidArgument)
	require.True(t, m.IsEmpty())

	_, _, err := m.Get(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = m.GetKey(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = m.Remove(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = m.RemoveValue(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.False(t, m.ContainsKey(nil))
	require.False(t, m.ContainsValue(nil))

	require.NoError(t, m.Put(&k, &v))
	other := "v"
	key, ok, err := m.GetKey(&other)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "k", *key)

	floats := New[int, float64]()
	require.ErrorIs(t, floats.Put(1, math.NaN()), ErrInvalidArgument)
	require.NoError(t, floats.Put(1, 1.5))
}

func TestBiMapIteratorConcurrentModification(t *testing.T) {
	m := New[int, string]()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Put(i, strconv.Itoa(i)))
	}

	// Reassigning the value of a key is value-only for the forward tree,
	// but structural for the bimap.
	it := m.Iterator()
	require.True(t, it.Next())
	require.NoError(t, m.Put(0, "zero"))
	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrConcurrentModification)

	err := m.Foreach(func(idx int64, key int, val string) bool {
		if idx == 1 {
			_, _, _ = m.RemoveValue(val)
		}
		return true
	})
	require.ErrorIs(t, err, ErrConcurrentModification)

	it = m.Iterator()
	keys := make([]int, 0, m.Len())
	for it.Next() {
		keys = append(keys, it.Key())
		require.Equal(t, it.Val(), it.Entry().Val())
	}
	require.NoError(t, it.Err())
	require.Equal(t, m.Keys(), keys)
}

func TestBiMapRandomBijection(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 2000; i++ {
		key, val := randv2.Intn(64), randv2.Intn(64)
		switch randv2.Intn(4) {
		case 0:
			_, _, err := m.Remove(key)
			require.NoError(t, err)
		case 1:
			_, _, err := m.RemoveValue(val)
			require.NoError(t, err)
		default:
			require.NoError(t, m.Put(key, val))
			got, ok, err := m.Get(key)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, val, got)
		}
		require.Equal(t, m.Len(), int64(len(lo.Uniq(m.Values()))))
		requireBijection[int, int](t, m)
	}
}
