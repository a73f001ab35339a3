package core

import "sync"

// ChannelLocker serializes turns per conversation channel so two messages
// from the same customer cannot race on the context read-modify-write.
type ChannelLocker struct {
	mutex    sync.Mutex
	channels map[string]*sync.Mutex
}

func NewChannelLocker() *ChannelLocker {
	return &ChannelLocker{channels: make(map[string]*sync.Mutex)}
}

func (l *ChannelLocker) Lock(key string) {
	l.mutex.Lock()

	mutex, exists := l.channels[key]
	if !exists {
		mutex = &sync.Mutex{}
		l.channels[key] = mutex
	}

	l.mutex.Unlock()

	mutex.Lock()
}

func (l *ChannelLocker) Unlock(key string) {
	l.mutex.Lock()

	mutex, exists := l.channels[key]
	if !exists {
		l.mutex.Unlock()
		return
	}
	l.mutex.Unlock()

	mutex.Unlock()
}
