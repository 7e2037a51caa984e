package blob

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs as plain files under a root directory. Writes go to a
// temporary file first and are renamed into place, so readers never observe
// a half-written blob.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("blob root directory not configured")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %s: %w", root, err)
	}

	return &Local{root: root}, nil
}

// abs maps a key to a path inside root, rejecting traversal.
func (l *Local) abs(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}

	return filepath.Join(l.root, clean), nil
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	path, err := l.abs(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}

	tmpName := tmp.Name()

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write blob %s: %w", key, err)
	}

	// A short write means the client disconnected mid-upload; the batch
	// must fail rather than commit a truncated file.
	if size >= 0 && written != size {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write blob %s: wrote %d of %d bytes", key, written, size)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod blob %s: %w", key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("finalize blob %s: %w", key, err)
	}

	return nil
}

func (l *Local) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.abs(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, key)
		}

		return nil, fmt.Errorf("open blob %s: %w", key, err)
	}

	return f, nil
}

func (l *Local) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	path, err := l.abs(key)
	if err != nil {
		return ObjectInfo{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotExist, key)
		}

		return ObjectInfo{}, fmt.Errorf("stat blob %s: %w", key, err)
	}

	return ObjectInfo{Key: key, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.abs(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (l *Local) List(ctx context.Context, prefix string, fn func(ObjectInfo) error) error {
	start := l.root
	if prefix != "" {
		p, err := l.abs(prefix)
		if err != nil {
			return err
		}

		start = p
	}

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}

			return err
		}

		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}

		return fn(ObjectInfo{
			Key:     filepath.ToSlash(rel),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	})
	if err != nil {
		return fmt.Errorf("list blobs under %s: %w", prefix, err)
	}

	return nil
}

func (l *Local) Close() error {
	return nil
}
