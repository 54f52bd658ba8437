//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
)

// localStore keeps preferences in window.localStorage. Storage can be
// missing or throw (private mode, quota); reads then miss and writes fail.
type localStore struct {
	ls js.Value
}

func newLocalStore() *localStore {
	return &localStore{ls: js.Global().Get("localStorage")}
}

func (s *localStore) Get(key string) (v string, ok bool) {
	if !s.ls.Truthy() {
		return "", false
	}
	defer func() {
		if recover() != nil {
			v, ok = "", false
		}
	}()
	item := s.ls.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", false
	}
	return item.String(), true
}

func (s *localStore) Set(key, value string) (err error) {
	if !s.ls.Truthy() {
		return fmt.Errorf("localStorage unavailable")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage: %v", r)
		}
	}()
	s.ls.Call("setItem", key, value)
	return nil
}
