package storage

// MemoryBackend keeps values for the lifetime of the process.
type MemoryBackend struct {
	data map[string][]byte
}

func NewMemory() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *MemoryBackend) Put(key string, value []byte) error {
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	delete(b.data, key)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
