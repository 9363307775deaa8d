package presets

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"blendshape-presets/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetBody = `{
    "rootObjectName": "Body",
    "meshDataList": [
        {
            "objectName": "Face",
            "objectPath": "Body/Face",
            "blendShapes": [{"name": "Smile", "index": 0, "weight": 75}]
        }
    ]
}`

func setupTestApp(t *testing.T) (*fiber.App, *memClient) {
	svc, client := newTestService(t, true)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, client
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_PresetLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := do(t, app, "PUT", "/presets/grin", presetBody)
	assert.Equal(t, fiber.StatusOK, status)

	status, data := do(t, app, "GET", "/presets/grin", "")
	assert.Equal(t, fiber.StatusOK, status)
	var bundle reconcile.Bundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, "Body", bundle.RootObjectName)
	assert.Equal(t, 75.0, bundle.Meshes[0].Entries[0].Weight)

	status, data = do(t, app, "GET", "/presets", "")
	assert.Equal(t, fiber.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "grin", list[0]["name"])

	status, _ = do(t, app, "DELETE", "/presets/grin", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "GET", "/presets/grin", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_ErrorStatus(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"Not JSON", "PUT", "/presets/x", "hello", fiber.StatusBadRequest},
		{"Empty body", "PUT", "/presets/x", "", fiber.StatusBadRequest},
		{"Empty bundle", "PUT", "/presets/x", `{"meshDataList":[]}`, fiber.StatusBadRequest},
		{"Invalid name", "GET", "/presets/.secret", "", fiber.StatusBadRequest},
		{"Missing preset", "DELETE", "/presets/ghost", "", fiber.StatusNotFound},
		{"Missing model", "POST", "/presets/x/capture?model=nope.glb", "", fiber.StatusNotFound},
		{"No model param", "POST", "/presets/x/capture", "", fiber.StatusBadRequest},
		{"No blend shapes", "POST", "/presets/x/capture?model=avatar.gltf&root=Hair", "", fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, status)

			var body map[string]string
			require.NoError(t, json.Unmarshal(data, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandler_CaptureAndApply(t *testing.T) {
	app, client := setupTestApp(t)

	status, data := do(t, app, "POST", "/presets/current/capture?model=avatar.gltf&include_children=true", "")
	require.Equal(t, fiber.StatusOK, status, string(data))
	var captured CaptureResult
	require.NoError(t, json.Unmarshal(data, &captured))
	assert.Equal(t, 1, captured.Meshes)
	assert.Equal(t, 2, captured.Channels)

	status, _ = do(t, app, "PUT", "/presets/grin", presetBody)
	require.Equal(t, fiber.StatusOK, status)

	status, data = do(t, app, "POST", "/presets/grin/apply?model=avatar.gltf&include_children=true&dry_run=true", "")
	require.Equal(t, fiber.StatusOK, status, string(data))
	var result reconcile.ImportResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.AppliedChannels)
	assert.InDelta(t, 50.0, faceWeights(t, client)[0], 1e-9)

	status, _ = do(t, app, "POST", "/presets/grin/apply?model=avatar.gltf&include_children=true", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.InDelta(t, 75.0, faceWeights(t, client)[0], 1e-9)
}
