package presets

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"blendshape-presets/core/database"
	"blendshape-presets/core/gltfscene"
	"blendshape-presets/core/reconcile"

	"github.com/minio/minio-go/v7"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memClient is an in-memory bucket implementing storage.Client.
type memClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemClient() *memClient {
	return &memClient{objects: make(map[string][]byte)}
}

func notFound() error {
	return minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
}

func (m *memClient) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (m *memClient) MakeBucket(context.Context, string, minio.MakeBucketOptions) error { return nil }

func (m *memClient) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return minio.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (m *memClient) GetObject(_ context.Context, _, key string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	m.mu.Lock()
	data, ok := m.objects[key]
	m.mu.Unlock()
	if !ok {
		return nil, notFound()
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memClient) StatObject(_ context.Context, _, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	m.mu.Lock()
	data, ok := m.objects[key]
	m.mu.Unlock()
	if !ok {
		return minio.ObjectInfo{}, notFound()
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (m *memClient) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	m.mu.Lock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	m.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func (m *memClient) RemoveObject(_ context.Context, _, key string, _ minio.RemoveObjectOptions) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memClient) get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key]
}

var testConfig = Config{Prefix: "presets/", ModelPrefix: "models/", CacheTTLSeconds: 60}

// avatarModel returns a glTF document with Body -> Face(Smile=0.5, Blink=0), Hair(no targets).
func avatarModel(t *testing.T) []byte {
	t.Helper()
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
		Nodes: []*gltf.Node{
			{Name: "Body", Children: []uint32{1, 2}},
			{Name: "Face", Mesh: gltf.Index(0), Weights: []float32{0.5, 0}},
			{Name: "Hair", Mesh: gltf.Index(1)},
		},
		Meshes: []*gltf.Mesh{
			{
				Name:       "FaceMesh",
				Primitives: []*gltf.Primitive{{Targets: []gltf.Attribute{{}, {}}}},
				Extras:     map[string]any{"targetNames": []string{"Smile", "Blink"}},
			},
			{Name: "HairMesh", Primitives: []*gltf.Primitive{{}}},
		},
	}
	sc, err := gltfscene.FromDocument(doc, gltfscene.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sc.Encode(&buf, false))
	return buf.Bytes()
}

func newTestService(t *testing.T, withCatalog bool) (*Service, *memClient) {
	t.Helper()
	client := newMemClient()
	client.objects["models/avatar.gltf"] = avatarModel(t)

	var svc *Service
	if withCatalog {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		svc = NewService(client, "bucket", testConfig, gltfscene.Options{}, db, zap.NewNop())
		require.NoError(t, svc.Catalog().Migrate())
	} else {
		svc = NewService(client, "bucket", testConfig, gltfscene.Options{}, nil, zap.NewNop())
	}
	return svc, client
}

func smileBundle(weight float64) *reconcile.Bundle {
	return &reconcile.Bundle{
		RootObjectName: "Body",
		Meshes: []*reconcile.MeshWeightSet{{
			ObjectName: "Face",
			ObjectPath: "Body/Face",
			Entries: []*reconcile.WeightEntry{
				{Name: "Smile", Index: 0, Weight: weight},
				{Name: "Blink", Index: 1, Weight: 0},
			},
		}},
	}
}

// faceWeights decodes the stored avatar and returns the Face weights on the 0..100 scale.
func faceWeights(t *testing.T, client *memClient) []float64 {
	t.Helper()
	sc, err := gltfscene.Decode(bytes.NewReader(client.get("models/avatar.gltf")), gltfscene.Options{})
	require.NoError(t, err)
	face := sc.Find("Face")
	require.NotNil(t, face)
	m, ok := face.Mesh()
	require.True(t, ok)

	out := make([]float64, m.ChannelCount())
	for i := range out {
		out[i], err = m.Weight(i)
		require.NoError(t, err)
	}
	return out
}
