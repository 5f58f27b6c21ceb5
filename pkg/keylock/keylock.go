package keylock

import (
	"sync"
)

// KeyLock 按Key互斥锁
// 设计说明：
// 1. 对同一个key的Lock/Unlock互斥，不同key互不影响
// 2. 用于评论提交的"查重-插入"临界区：以(user_id, book_id)为key串行化，
//    防止同一用户对同一图书并发提交两条评论都通过查重
// 3. 引用计数归零时回收entry，长期运行不会泄漏内存
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New 创建KeyLock
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*entry),
	}
}

// Lock 锁定指定key，已被锁定时阻塞等待
func (k *KeyLock) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock 释放指定key
// 未Lock先Unlock属于调用方bug，行为与sync.Mutex一致（panic）
func (k *KeyLock) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
