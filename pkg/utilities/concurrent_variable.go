/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package utilities

import "sync"

// ConcurrentVariable guards a single value shared between goroutines.
type ConcurrentVariable[V any] struct {
	sync.RWMutex

	value V
}

func NewConcurrentVariable[V any](value V) *ConcurrentVariable[V] {
	return &ConcurrentVariable[V]{
		value: value,
	}
}

func (cvar *ConcurrentVariable[V]) Get() V {
	cvar.RLock()
	defer cvar.RUnlock()

	return cvar.value
}

func (cvar *ConcurrentVariable[V]) Set(value V) {
	cvar.Lock()
	defer cvar.Unlock()

	cvar.value = value
}

// Update replaces the value with the result of callback, holding the lock
// for the duration of the call.
func (cvar *ConcurrentVariable[V]) Update(callback func(value V) V) V {
	cvar.Lock()
	defer cvar.Unlock()

	cvar.value = callback(cvar.value)
	return cvar.value
}
