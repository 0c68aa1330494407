// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"sync"

	"github.com/actforgood/xconf"
	"github.com/coocood/freecache"
)

const (
	// MemoryCfgKeyMemorySize is the key under which xconf.Config expects memory size in bytes.
	MemoryCfgKeyMemorySize      = "xswr.memory.memsizebytes"
	memoryCfgDefValueMemorySize = 10 * 1024 * 1024 // 10 Mb
)

// NewMemoryWithConfig initializes a Memory storage with memory size taken from a xconf.Config.
//
// If "xswr.memory.memsizebytes" config key is not found, a default value of 10M is used.
//
// An observer is registered to xconf.DefaultConfig (which knows to reload configuration).
// In case "xswr.memory.memsizebytes" config is changed, the Memory is reinitialized with the new memory size,
// and all entries of the old freecache instance are copied to the new one.
func NewMemoryWithConfig(config xconf.Config) *Memory {
	mem := config.Get(MemoryCfgKeyMemorySize, memoryCfgDefValueMemorySize).(int)

	storage := NewMemory(mem)
	storage.mu = new(sync.RWMutex)

	if defConfig, ok := config.(*xconf.DefaultConfig); ok {
		defConfig.RegisterObserver(storage.onConfigChange)
	}

	return storage
}

// onConfigChange is a callback registered to xconf.DefaultConfig on NewMemoryWithConfig.
func (storage *Memory) onConfigChange(config xconf.Config, changedKeys ...string) {
	memSize := 0
	for _, changedKey := range changedKeys {
		if changedKey == MemoryCfgKeyMemorySize {
			memSize = config.Get(MemoryCfgKeyMemorySize, memoryCfgDefValueMemorySize).(int)
			memSize = getRealMemorySize(memSize)

			break
		}
	}
	if memSize == 0 {
		return
	}

	storage.mu.Lock()
	defer storage.mu.Unlock()
	if memSize == int(storage.memSize) {
		return
	}

	// machine needs oldMemorySize + newMemorySize available during the copy.
	newClient := freecache.NewCache(memSize)
	iter := storage.client.NewIterator()
	for entry := iter.Next(); entry != nil; entry = iter.Next() {
		_ = newClient.Set(entry.Key, entry.Value, 0)
	}
	storage.client = newClient
	storage.memSize = int64(memSize)
}
