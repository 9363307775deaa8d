package checks

import (
	"context"
	"io"
	"strings"
	"testing"

	"blendshape-presets/core/database"
	"blendshape-presets/core/storage/mocks"
	"blendshape-presets/feature/presets/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validPreset = `{"rootObjectName":"Body","meshDataList":[{"objectName":"Face","blendShapes":[{"name":"Smile","index":0,"weight":1}]}]}`

func presetClient() *mocks.Client {
	m := new(mocks.Client)
	m.On("ListObjects", mock.Anything, "assets", mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "presets/"},
		minio.ObjectInfo{Key: "presets/broken.json"},
		minio.ObjectInfo{Key: "presets/notes.txt"},
		minio.ObjectInfo{Key: "presets/smile.json"},
	))
	m.On("GetObject", mock.Anything, "assets", "presets/broken.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"meshDataList":[]}`)), nil)
	m.On("GetObject", mock.Anything, "assets", "presets/smile.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(validPreset)), nil)
	return m
}

func TestCheckPresets_StorageOnly(t *testing.T) {
	report, err := CheckPresets(context.Background(), presetClient(), "assets", "presets/", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Contains(t, report.Corrupt, "presets/broken.json")
	assert.NotContains(t, report.Corrupt, "presets/smile.json")
	assert.False(t, report.OK())
}

func TestCheckPresets_WithCatalog(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Preset{}))
	require.NoError(t, db.Create(&models.Preset{Name: "smile", ObjectKey: "presets/smile.json"}).Error)
	require.NoError(t, db.Create(&models.Preset{Name: "gone", ObjectKey: "presets/gone.json"}).Error)

	report, err := CheckPresets(context.Background(), presetClient(), "assets", "presets/", db)
	require.NoError(t, err)

	assert.Equal(t, []string{"presets/broken.json"}, report.Uncataloged)
	assert.Equal(t, []string{"gone"}, report.MissingObjects)
}

func TestCheckPresets_ListError(t *testing.T) {
	m := new(mocks.Client)
	m.On("ListObjects", mock.Anything, "assets", mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Err: assert.AnError},
	))

	_, err := CheckPresets(context.Background(), m, "assets", "presets/", nil)
	assert.Error(t, err)
}
