package presets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"blendshape-presets/core/gltfscene"
	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/storage"

	"github.com/minio/minio-go/v7"
)

const (
	contentTypeJSON = "application/json"
	contentTypeGLB  = "model/gltf-binary"
	contentTypeGLTF = "model/gltf+json"
)

// Store keeps preset bundles and glTF models in the bucket.
type Store struct {
	client storage.Client
	bucket string
	cfg    Config
}

// NewStore creates a bucket-backed store.
func NewStore(client storage.Client, bucket string, cfg Config) *Store {
	return &Store{client: client, bucket: bucket, cfg: cfg}
}

// PresetKey returns the object key of a preset.
func (s *Store) PresetKey(name string) string {
	return s.cfg.prefix() + name + ".json"
}

// ModelKey returns the object key of a model.
func (s *Store) ModelKey(model string) string {
	return s.cfg.modelPrefix() + model
}

// PutPreset encodes and uploads bundle, returning the key and size.
func (s *Store) PutPreset(ctx context.Context, name string, bundle *reconcile.Bundle) (string, int, error) {
	data, err := reconcile.Encode(bundle)
	if err != nil {
		return "", 0, err
	}
	key := s.PresetKey(name)
	if err := storage.WriteObject(ctx, s.client, s.bucket, key, data, contentTypeJSON); err != nil {
		return "", 0, err
	}
	return key, len(data), nil
}

// GetPreset downloads and decodes a preset.
func (s *Store) GetPreset(ctx context.Context, name string) (*reconcile.Bundle, error) {
	data, err := storage.ReadObject(ctx, s.client, s.bucket, s.PresetKey(name))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	bundle, err := reconcile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("preset %s is corrupt: %w", name, err)
	}
	return bundle, nil
}

// DeletePreset removes a preset object.
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	key := s.PresetKey(name)
	ok, err := storage.Exists(ctx, s.client, s.bucket, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// ListPresets returns the names of every stored preset, sorted.
func (s *Store) ListPresets(ctx context.Context) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, s.cfg.prefix())
	if err != nil {
		return nil, err
	}
	var names []string
	for _, key := range keys {
		if path.Ext(key) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(key, s.cfg.prefix()), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadModel downloads a self-contained glTF or GLB model.
func (s *Store) LoadModel(ctx context.Context, model string, opts gltfscene.Options) (*gltfscene.Scene, error) {
	key := s.ModelKey(model)
	data, err := storage.ReadObject(ctx, s.client, s.bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, model)
	}
	if err != nil {
		return nil, err
	}
	return gltfscene.Decode(bytes.NewReader(data), opts)
}

// SaveModel encodes sc in the format implied by the model extension and uploads it.
func (s *Store) SaveModel(ctx context.Context, model string, sc *gltfscene.Scene) error {
	binary := gltfscene.IsBinaryPath(model)
	var buf bytes.Buffer
	if err := sc.Encode(&buf, binary); err != nil {
		return fmt.Errorf("failed to encode model %s: %w", model, err)
	}
	contentType := contentTypeGLTF
	if binary {
		contentType = contentTypeGLB
	}
	return storage.WriteObject(ctx, s.client, s.bucket, s.ModelKey(model), buf.Bytes(), contentType)
}
