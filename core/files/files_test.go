package files

import (
	"testing"

	"blendshape-presets/core/reconcile"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() *reconcile.Bundle {
	return &reconcile.Bundle{
		RootObjectName: "Body",
		Meshes: []*reconcile.MeshWeightSet{{
			ObjectName: "Face",
			ObjectPath: "Body/Face",
			Entries:    []*reconcile.WeightEntry{{Name: "Smile", Index: 0, Weight: 42}},
		}},
	}
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"Body", "Body_blendshapes.json"},
		{"Armature/Body", "Armature_Body_blendshapes.json"},
		{"  ", "scene_blendshapes.json"},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFileName(tt.root))
		})
	}
}

func TestStore_WriteRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o755))
	store := NewStore(fs)

	path := store.ResolvePath("/out", "Body")
	assert.Equal(t, "/out/Body_blendshapes.json", path)

	n, err := store.Write(path, sampleBundle())
	require.NoError(t, err)
	assert.Positive(t, n)

	back, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleBundle(), back)
}

func TestStore_WriteMissingDirectory(t *testing.T) {
	store := NewStore(afero.NewMemMapFs())

	_, err := store.Write("/missing/file.json", sampleBundle())
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestStore_WriteEmptyBundle(t *testing.T) {
	store := NewStore(afero.NewMemMapFs())

	_, err := store.Write("/file.json", &reconcile.Bundle{})
	assert.ErrorIs(t, err, reconcile.ErrEmptyBundle)
}

func TestStore_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out", 0o755))
	store := NewStore(afero.NewReadOnlyFs(base))

	_, err := store.Write("/out/file.json", sampleBundle())
	assert.ErrorIs(t, err, ErrPermission)
}

func TestStore_ReadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("not json"), 0o644))
	store := NewStore(fs)

	_, err := store.Read("/nope.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Read("/bad.json")
	assert.ErrorIs(t, err, reconcile.ErrNotJSON)
}
