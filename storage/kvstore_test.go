package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_KVStore_Put_Get(t *testing.T) {
	kv := NewBasicKV[int]()

	_, ok := kv.Get("a")
	require.False(t, ok)

	require.NoError(t, kv.Put("a", 1))

	value, ok := kv.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, value)

	require.True(t, kv.Has("a"))
	require.Equal(t, 1, kv.Len())
}

func Test_KVStore_Del(t *testing.T) {
	kv := NewBasicKV[string]()
	kv.Put("a", "x")

	require.NoError(t, kv.Del("a"))
	require.False(t, kv.Has("a"))

	// deleting an absent key is fine
	require.NoError(t, kv.Del("a"))
}

func Test_KVStore_Keys_Sorted(t *testing.T) {
	kv := NewBasicKV[int]()
	kv.Put("c", 3)
	kv.Put("a", 1)
	kv.Put("b", 2)

	require.Equal(t, []string{"a", "b", "c"}, kv.Keys())
}

func Test_KVStore_For(t *testing.T) {
	kv := NewBasicKV[int]()
	kv.Put("a", 1)
	kv.Put("b", 2)

	total := 0
	err := kv.For(func(key string, value int) error {
		total += value
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, total)
}

func Test_KVStore_Copy_Isolated(t *testing.T) {
	kv := NewBasicKV[int]()
	kv.Put("a", 1)

	cp := kv.Copy()
	kv.Put("b", 2)

	require.False(t, cp.Has("b"))

	value, ok := cp.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, value)
}

// insertion order must not change the fingerprint
func Test_KVStore_Hash_Order_Independent(t *testing.T) {
	a := NewBasicKV[int]()
	a.Put("x", 1)
	a.Put("y", 2)

	b := NewBasicKV[int]()
	b.Put("y", 2)
	b.Put("x", 1)

	require.Equal(t, a.Hash(), b.Hash())

	b.Put("z", 3)
	require.NotEqual(t, a.Hash(), b.Hash())
}

type tagged struct {
	tag string
}

func (h tagged) Hash() string {
	return "tag|" + h.tag
}

func Test_KVStore_Hash_Hashable(t *testing.T) {
	a := NewBasicKV[tagged]()
	a.Put("x", tagged{tag: "one"})

	b := NewBasicKV[tagged]()
	b.Put("x", tagged{tag: "two"})

	require.NotEqual(t, a.Hash(), b.Hash())
}
