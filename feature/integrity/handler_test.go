package integrity

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"blendshape-presets/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, sqlmock.Sqlmock) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, sqlMock := setupMockDB(t)
	svc := NewService(mockClient, "test-bucket", testFolders, "presets/", db, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient, sqlMock
}

func decode(t *testing.T, body io.Reader) map[string]any {
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "checked", body["status"])
	assert.ElementsMatch(t, []any{"presets", "models"}, body["missing"])
}

func TestHandleStructureCheck_Fix(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestHandleStructureCheck_FixFails(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleStructureCheck_BucketMissing(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleCatalogCheck(t *testing.T) {
	app, _, sqlMock := setupTestApp(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `blendshape_presets`").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/catalog", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, false, body["matched"])
	assert.Contains(t, body["missing_columns"], "name")
}

func TestHandlePresetsCheck(t *testing.T) {
	app, mockClient, sqlMock := setupTestApp(t)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "presets/bad.json"},
	))
	mockClient.On("GetObject", mock.Anything, "test-bucket", "presets/bad.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader("not json")), nil)
	sqlMock.ExpectQuery("SELECT \\* FROM `blendshape_presets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "object_key"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/presets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Contains(t, body["corrupt"], "presets/bad.json")
	assert.Equal(t, []any{"presets/bad.json"}, body["uncataloged"])
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient, sqlMock := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `blendshape_presets`").WillReturnError(assert.AnError)
	sqlMock.ExpectQuery("SELECT \\* FROM `blendshape_presets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "object_key"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Contains(t, body, "structure")
	assert.Contains(t, body, "presets")
	catalog, ok := body["catalog"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error", catalog["status"])
}
