package objpath

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
)

// memStore is shared backing storage for mock paths
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

// memPath is a simple in-memory Path implementation for testing the generic
// helpers (StreamCopy, Children, ReadOnlyPath, VerifyChecksum)
type memPath struct {
	store *memStore
	key   string

	openErr   error
	createErr error
	listCalls int
}

func (m *memPath) child(key string) *memPath {
	return &memPath{store: m.store, key: key}
}

func (m *memPath) URI() string {
	return "mem://" + m.key
}

func (m *memPath) Exists(ctx context.Context) (bool, error) {
	_, ok := m.store.objects[m.key]
	return ok, nil
}

func (m *memPath) Size(ctx context.Context) (int64, bool, error) {
	data, ok := m.store.objects[m.key]
	if !ok {
		return 0, false, nil
	}
	return int64(len(data)), true, nil
}

func (m *memPath) Delete(ctx context.Context) error {
	delete(m.store.objects, m.key)
	return nil
}

func (m *memPath) Mkpath(ctx context.Context) (Path, error) {
	return m, nil
}

func (m *memPath) Open(ctx context.Context) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.store.objects[m.key]
	if !ok {
		return nil, NewPathError("read", m.URI(), ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memPath) Create(ctx context.Context) (WriteScope, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &memWriteScope{p: m}, nil
}

func (m *memPath) CopyTo(ctx context.Context, dst Path, opts ...CopyOption) error {
	return StreamCopy(ctx, m, dst)
}

func (m *memPath) CopyFrom(ctx context.Context, src Path, opts ...CopyOption) error {
	return StreamCopy(ctx, src, m)
}

func (m *memPath) MoveTo(ctx context.Context, dst Path) error {
	if err := m.CopyTo(ctx, dst, WithConvert(false)); err != nil {
		return err
	}
	return m.Delete(ctx)
}

func (m *memPath) EachChild(ctx context.Context, pattern string, fn func(Child) error, opts ...ListOption) error {
	m.listCalls++

	spec, err := NewMatchSpec(m.key, pattern, NewListOptions(opts...))
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(m.store.objects))
	for k := range m.store.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.HasSuffix(k, "/") {
			continue
		}
		if !spec.Match(k) {
			continue
		}
		child := Child{
			Path: m.child(k),
			Meta: ObjectMeta{Key: k, Size: int64(len(m.store.objects[k]))},
		}
		if err := fn(child); err != nil {
			return err
		}
	}
	return nil
}

// memWriteScope buffers writes and publishes on Close
type memWriteScope struct {
	p    *memPath
	buf  bytes.Buffer
	done bool
}

func (w *memWriteScope) Write(b []byte) (int, error) {
	if w.done {
		return 0, ErrClosed
	}
	return w.buf.Write(b)
}

func (w *memWriteScope) Close() error {
	if w.done {
		return ErrClosed
	}
	w.done = true
	w.p.store.objects[w.p.key] = append([]byte(nil), w.buf.Bytes()...)
	return nil
}

func (w *memWriteScope) Abort() error {
	if w.done {
		return ErrClosed
	}
	w.done = true
	return nil
}

// failingReader returns an error after a few bytes, for abort-path tests
type failingReader struct {
	data []byte
	err  error
	pos  int
}

func (r *failingReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, r.err
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}

var errBoom = errors.New("boom")

var _ Path = (*memPath)(nil)
