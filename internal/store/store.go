package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/fsutil"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/schema"
)

// MetadataFileName is the metadata document every schema directory carries.
const MetadataFileName = "schema.json"

// NotFoundError reports a resolved reference with no corresponding document
// in the store.
type NotFoundError struct {
	Ref  ref.Ref
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema %s not found in store (looked at %s)", e.Ref.Key(), e.Path)
}

// DuplicateError reports two documents claiming the same (kind, identifier).
// It is always fatal: the registry never silently last-write-wins.
type DuplicateError struct {
	Key      string
	Path     string
	Previous string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate schema %s: declared by both %s and %s", e.Key, e.Previous, e.Path)
}

// Store reads schema documents and their script files from a directory tree
// laid out as <root>/<kind>/<slug>/schema.json. It performs no caching and no
// write-back, so loads are idempotent and concurrent runs are independent.
type Store struct {
	root string
}

// New returns a Store rooted at the given directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory that holds the referenced schema's metadata
// document and script files.
func (s *Store) Dir(r ref.Ref) string {
	return filepath.Join(s.root, string(r.Kind), r.Identifier)
}

// Load reads and decodes the metadata document for the referenced schema.
// A missing directory or metadata file yields a NotFoundError.
func (s *Store) Load(ctx context.Context, r ref.Ref) (*schema.Document, error) {
	path := filepath.Join(s.Dir(r), MetadataFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Ref: r, Path: path}
		}
		return nil, fmt.Errorf("failed to read schema %s: %w", r.Key(), err)
	}

	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", r.Key(), err)
	}
	if doc.Kind != r.Kind || doc.ID != r.Identifier {
		return nil, fmt.Errorf("schema at %s declares identity %s:%s, expected %s", path, doc.Kind, doc.ID, r.Key())
	}

	ctxlog.FromContext(ctx).Debug("Loaded schema document from store.", "schema", r.Key(), "path", path)
	return &doc, nil
}

// ReadScript reads a script file from the referenced schema's own directory.
// Script references must stay inside that directory.
func (s *Store) ReadScript(ctx context.Context, r ref.Ref, name string) (string, error) {
	dir := s.Dir(r)
	path := filepath.Join(dir, name)
	if rel, err := filepath.Rel(dir, path); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("script reference %q escapes schema directory %s", name, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Debug("Read script file.", "schema", r.Key(), "script", name, "bytes", len(data))
	return string(data), nil
}

// Scan walks the whole store and returns a reference for every document it
// declares, sorted by key. Each metadata document is decoded so the declared
// (kind, identifier) is used, not the directory name. Two documents declaring
// the same identity fail the scan with a DuplicateError.
func (s *Store) Scan(ctx context.Context) ([]ref.Ref, error) {
	logger := ctxlog.FromContext(ctx)
	paths, err := fsutil.FindFilesByName(s.root, MetadataFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema store %s: %w", s.root, err)
	}
	if len(paths) == 0 {
		logger.Warn("No schema documents found in store.", "root", s.root)
		return nil, nil
	}

	seen := make(map[string]string, len(paths))
	refs := make([]ref.Ref, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var doc schema.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		r := ref.Ref{Kind: doc.Kind, Identifier: doc.ID, RawURI: doc.ID}
		if prev, exists := seen[r.Key()]; exists {
			return nil, &DuplicateError{Key: r.Key(), Path: path, Previous: prev}
		}
		seen[r.Key()] = path
		refs = append(refs, r)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Key() < refs[j].Key() })
	logger.Debug("Store scan complete.", "documents", len(refs))
	return refs, nil
}
