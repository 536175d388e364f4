package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// File is a Store kept as a single JSON object on disk. Every Set rewrites the
// file through a temp file and a rename.
type File struct {
	mu     sync.Mutex
	path   string
	closed bool
}

var _ Store = (*File)(nil)

// OpenFile opens a File store at path. The file is created on the first Set.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, &errors.ValidationError{Field: "store_path", Message: "cannot be empty"}
	}
	return &File{path: path}, nil
}

// Path returns the backing file.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, errors.ErrClosed
	}

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.ErrClosed
	}

	data, err := f.read()
	if err != nil {
		if !errors.IsLocalStoreCorrupt(err) {
			return err
		}
		// A corrupt file is replaced rather than blocking every later write.
		data = map[string]string{}
	}
	data[key] = value
	return f.write(data)
}

// Close implements Store.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.WrapIO("read", f.path, err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewCorruptError(f.path, err)
	}
	return data, nil
}

func (f *File) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.WrapParse("json", f.path, err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".comparison_*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.SecureFilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}

	// Atomically move temp file to final location
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", f.path, err)
	}
	return nil
}
