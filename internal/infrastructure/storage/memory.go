package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryObjectStore keeps objects in process memory. It backs the
// in-memory demo mode and the tests, mirroring the MinIO client's
// surface.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStore creates an empty store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string][]byte)}
}

// UploadFile stores the reader's contents under the object name.
func (m *MemoryObjectStore) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectName] = data
	return nil
}

// UploadText stores text content under the object name.
func (m *MemoryObjectStore) UploadText(ctx context.Context, objectName string, content string, contentType string) error {
	return m.UploadFile(ctx, objectName, bytes.NewReader([]byte(content)), int64(len(content)), contentType)
}

// DeleteFile removes an object. Deleting an absent object is not an
// error, matching MinIO's RemoveObject.
func (m *MemoryObjectStore) DeleteFile(ctx context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectName)
	return nil
}

// ListFiles lists object names with the given prefix.
func (m *MemoryObjectStore) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var files []string
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			files = append(files, name)
		}
	}
	return files, nil
}

// GetFile returns a stored object's contents.
func (m *MemoryObjectStore) GetFile(ctx context.Context, objectName string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectName]
	return data, ok
}
