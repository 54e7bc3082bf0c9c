package storage

import (
	"crypto"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

type Copyable[V any] interface {
	Copy() V
}

type Hashable interface {
	Hash() string
}

// KVStore is a string-keyed memory with deterministic fingerprinting. Each
// participant owns its stores exclusively, so implementations do not need to
// be safe for concurrent use.
type KVStore[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V) error
	Del(key string) error
	Has(key string) bool
	Len() int
	Keys() []string
	For(func(key string, value V) error) error
	Copy() KVStore[V]
	Hash() []byte
}

type BasicKV[V any] struct {
	store map[string]V
}

func NewBasicKV[V any]() *BasicKV[V] {
	return &BasicKV[V]{
		store: make(map[string]V),
	}
}

func (kv *BasicKV[V]) Get(key string) (V, bool) {
	value, ok := kv.store[key]
	return value, ok
}

func (kv *BasicKV[V]) Put(key string, value V) error {
	kv.store[key] = value
	return nil
}

func (kv *BasicKV[V]) Del(key string) error {
	delete(kv.store, key)
	return nil
}

func (kv *BasicKV[V]) Has(key string) bool {
	_, ok := kv.store[key]
	return ok
}

func (kv *BasicKV[V]) Len() int {
	return len(kv.store)
}

// Keys returns the stored keys in sorted order.
func (kv *BasicKV[V]) Keys() []string {
	keys := make([]string, 0, len(kv.store))
	for k := range kv.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (kv *BasicKV[V]) For(action func(key string, value V) error) error {
	for k, v := range kv.store {
		err := action(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}

func (kv *BasicKV[V]) Copy() KVStore[V] {
	cp := NewBasicKV[V]()
	for k, v := range kv.store {
		switch vv := any(v).(type) {
		case Copyable[V]:
			cp.Put(k, vv.Copy())
		default:
			cp.Put(k, v)
		}
	}
	return cp
}

// Hash digests keys and values in sorted key order, so two stores with the
// same content produce the same fingerprint.
func (kv *BasicKV[V]) Hash() []byte {
	h := crypto.SHA256.New()
	for _, key := range kv.Keys() {
		v, ok := kv.store[key]
		if !ok {
			continue
		}
		h.Write([]byte(key))

		switch vv := any(v).(type) {
		case Hashable:
			hash := vv.Hash()
			h.Write([]byte(hash))
		default:
			hash := Hash(vv)
			h.Write([]byte(hash))
		}
	}

	return h.Sum(nil)
}

// Hash digests a value through its printed form. Fields hidden from
// reflection-based marshalling still reach the digest this way, as long as
// the type prints them.
func Hash(value interface{}) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v", value)

	return hex.EncodeToString(h.Sum(nil))
}
