package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/subtrack/subscription"
)

const (
	subscriptionsFile = "subscriptions.json"
	productsFile      = "products.json"
)

// File persists each collection as a JSON file under a directory.
//
// Saves write to a temporary file in the same directory and rename it over
// the target, so a concurrent reader sees either the old or the new snapshot,
// never a torn one.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store rooted at dir. The directory is created
// if it does not exist.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrLoadFailed)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return &File{dir: dir}, nil
}

// LoadSubscriptions returns the persisted subscription snapshot, or an empty
// slice when none exists yet.
func (f *File) LoadSubscriptions(ctx context.Context) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	if err := f.load(subscriptionsFile, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SaveSubscriptions atomically replaces the subscription snapshot.
func (f *File) SaveSubscriptions(ctx context.Context, subs []subscription.Subscription) error {
	if subs == nil {
		subs = []subscription.Subscription{}
	}
	return f.save(subscriptionsFile, subs)
}

// LoadProducts returns the persisted product snapshot, or an empty slice when
// none exists yet.
func (f *File) LoadProducts(ctx context.Context) ([]string, error) {
	var products []string
	if err := f.load(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SaveProducts atomically replaces the product snapshot.
func (f *File) SaveProducts(ctx context.Context, products []string) error {
	if products == nil {
		products = []string{}
	}
	return f.save(productsFile, products)
}

func (f *File) load(name string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailed, name, err)
	}
	return nil
}

func (f *File) save(name string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	// The temp file must live in the target directory: rename is only atomic
	// within one filesystem.
	tmp, err := os.CreateTemp(f.dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}
