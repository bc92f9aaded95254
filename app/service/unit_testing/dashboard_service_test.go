package service_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	models "school-dashboard/app/models/dashboard"
	"school-dashboard/app/repository/mocks"
	"school-dashboard/app/repository/source"
	service "school-dashboard/app/service/dashboard"
	"school-dashboard/route"
	"school-dashboard/utils"
)

// --- SETUP HELPERS ---

const resultEndpoint = "/results/exam-score-board"

func resultRecords() []models.Record {
	return []models.Record{
		{"session_name": "2023-24", "district": "Khurda", "subject_name": "Math", "exam_name": "Half yearly", "score": json.Number("80")},
		{"session_name": "2023-24", "district": "Khurda", "subject_name": "Math", "exam_name": "Annual", "score": json.Number("60")},
		{"session_name": "2023-24", "district": "Puri", "subject_name": "Sci", "exam_name": "Annual", "score": json.Number("70")},
	}
}

// setupDashboardApp runs loads inline so a session is settled as soon as it
// is created.
func setupDashboardApp(secret string) (*fiber.App, *mocks.MockRecordSource, *service.Store) {
	mockSource := new(mocks.MockRecordSource)
	store := service.NewStore(time.Hour)
	svc := service.NewDashboardService(mockSource, store, time.Second,
		service.WithLauncher(func(fn func()) { fn() }))

	app := fiber.New()
	route.SetupRoutes(app, svc, secret)
	return app, mockSource, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func doForm(t *testing.T, app *fiber.App, path string, form url.Values) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func openSession(t *testing.T, app *fiber.App, screen string) string {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/api/v1/screens/"+screen+"/sessions", nil)
	require.Equal(t, 201, status)
	return body["id"].(string)
}

func datasetTotal(body map[string]interface{}, i int) float64 {
	datasets := body["datasets"].([]interface{})
	return datasets[i].(map[string]interface{})["totalRecords"].(float64)
}

func chartLabels(body map[string]interface{}, name string) []interface{} {
	for _, c := range body["charts"].([]interface{}) {
		chart := c.(map[string]interface{})
		if chart["name"] == name {
			return chart["data"].(map[string]interface{})["labels"].([]interface{})
		}
	}
	return nil
}

// --- TEST CASES ---

func TestListScreens(t *testing.T) {
	t.Run("Success: catalogue in navigation order", func(t *testing.T) {
		app, _, _ := setupDashboardApp("")

		req := httptest.NewRequest("GET", "/api/v1/screens", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, 200, resp.StatusCode)

		var screens []models.ScreenSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&screens))
		require.Len(t, screens, 7)
		assert.Equal(t, "schools", screens[0].Name)
		assert.Equal(t, []string{"overall", "subjects"}, screens[3].Datasets)
	})

	t.Run("Success: health check skips auth", func(t *testing.T) {
		app, _, _ := setupDashboardApp("secret")

		status, body := doJSON(t, app, "GET", "/healthz", nil)
		assert.Equal(t, 200, status)
		assert.Equal(t, "ok", body["status"])
	})
}

func TestCreateSession(t *testing.T) {
	t.Run("Success: ready screen", func(t *testing.T) {
		app, mockSource, _ := setupDashboardApp("")
		mockSource.On("Fetch", mock.Anything, resultEndpoint).Return(resultRecords(), nil).Once()

		id := openSession(t, app, "result")

		status, body := doJSON(t, app, "GET", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 200, status)
		assert.Equal(t, "ready", body["state"])
		assert.Equal(t, float64(3), datasetTotal(body, 0))
		assert.Equal(t, []interface{}{"Math", "Sci"}, chartLabels(body, "subject_name"))
		mockSource.AssertExpectations(t)
	})

	t.Run("Error: Screen not found", func(t *testing.T) {
		app, mockSource, _ := setupDashboardApp("")

		status, body := doJSON(t, app, "POST", "/api/v1/screens/nope/sessions", nil)
		assert.Equal(t, 404, status)
		assert.Equal(t, "Screen not found", body["error"])
		mockSource.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Error: Upstream failure", func(t *testing.T) {
		app, mockSource, _ := setupDashboardApp("")
		mockSource.On("Fetch", mock.Anything, resultEndpoint).Return(nil, source.ErrFetchFailed)

		id := openSession(t, app, "result")

		status, body := doJSON(t, app, "GET", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 502, status)
		assert.Equal(t, "failed", body["state"])
		assert.Equal(t, "Network response was not ok", body["error"])
		assert.Nil(t, body["charts"])

		status, _ = doJSON(t, app, "POST", "/api/v1/sessions/"+id+"/drill/scores",
			models.FieldValueRequest{Field: "subject_name", Value: "Math"})
		assert.Equal(t, 502, status)
	})

	t.Run("Error: Unauthorized without token", func(t *testing.T) {
		app, _, _ := setupDashboardApp("secret")

		status, _ := doJSON(t, app, "GET", "/api/v1/screens", nil)
		assert.Equal(t, 401, status)
	})

	t.Run("Success: Authorized with token", func(t *testing.T) {
		app, _, _ := setupDashboardApp("secret")
		token, err := utils.GenerateToken("district-office", "secret", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/screens", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestLoadingSession(t *testing.T) {
	mockSource := new(mocks.MockRecordSource)
	mockSource.On("Fetch", mock.Anything, resultEndpoint).Return(resultRecords(), nil)

	var pending func()
	store := service.NewStore(time.Hour)
	svc := service.NewDashboardService(mockSource, store, time.Second,
		service.WithLauncher(func(fn func()) { pending = fn }))
	app := fiber.New()
	route.SetupRoutes(app, svc, "")

	t.Run("Success: pending load answers 202", func(t *testing.T) {
		id := openSession(t, app, "result")

		status, body := doJSON(t, app, "GET", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 202, status)
		assert.Equal(t, "loading", body["state"])

		status, body = doJSON(t, app, "POST", "/api/v1/sessions/"+id+"/charts/subject_name/activate", map[string]int{"index": 0})
		assert.Equal(t, 409, status)
		assert.Equal(t, "Session is still loading", body["error"])

		pending()
		status, _ = doJSON(t, app, "GET", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 200, status)
	})

	t.Run("Edge: response after close is ignored", func(t *testing.T) {
		id := openSession(t, app, "result")
		parsed := uuid.MustParse(id)
		sess, err := store.Get(parsed)
		require.NoError(t, err)

		status, _ := doJSON(t, app, "DELETE", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 200, status)

		pending()
		assert.Equal(t, models.StateLoading, sess.State())

		status, body := doJSON(t, app, "GET", "/api/v1/sessions/"+id, nil)
		assert.Equal(t, 404, status)
		assert.Equal(t, "Session not found", body["error"])
	})
}

func TestInteractions(t *testing.T) {
	app, mockSource, _ := setupDashboardApp("")
	mockSource.On("Fetch", mock.Anything, resultEndpoint).Return(resultRecords(), nil)
	id := openSession(t, app, "result")
	base := "/api/v1/sessions/" + id

	t.Run("Success: toggle a district off and on", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", base+"/filters/scores/toggle",
			models.FieldValueRequest{Field: "district", Value: "Puri"})
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(2), datasetTotal(body, 0))
		assert.Equal(t, []interface{}{"Math"}, chartLabels(body, "subject_name"))

		status, body = doJSON(t, app, "POST", base+"/filters/scores/toggle",
			models.FieldValueRequest{Field: "district", Value: "Puri"})
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(3), datasetTotal(body, 0))
	})

	t.Run("Success: select only one district", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", base+"/filters/scores/only",
			models.FieldValueRequest{Field: "district", Value: "Puri"})
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(1), datasetTotal(body, 0))

		status, _ = doJSON(t, app, "POST", base+"/filters/scores/toggle",
			models.FieldValueRequest{Field: "district", Value: "Khurda"})
		assert.Equal(t, 200, status)
	})

	t.Run("Success: chart click drills, clear restores", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", base+"/charts/subject_name/activate", map[string]int{"index": 0})
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(2), datasetTotal(body, 0))

		status, records := doJSON(t, app, "GET", base+"/records/scores", nil)
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(2), records["total"])

		status, body = doJSON(t, app, "DELETE", base+"/drill/scores/subject_name", nil)
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(3), datasetTotal(body, 0))
	})

	t.Run("Success: explicit drill", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", base+"/drill/scores",
			models.FieldValueRequest{Field: "exam_name", Value: "Annual"})
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(2), datasetTotal(body, 0))
		assert.Equal(t, []interface{}{"Math", "Sci"}, chartLabels(body, "subject_name"))
	})

	t.Run("Edge: click without index is a no-op", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", base+"/charts/exam_name/activate", nil)
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(2), datasetTotal(body, 0))
	})

	t.Run("Error: bad requests", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", base+"/filters/scores/toggle", models.FieldValueRequest{Value: "Puri"})
		assert.Equal(t, 400, status)

		status, body := doJSON(t, app, "POST", base+"/filters/scores/only", models.FieldValueRequest{Field: "district"})
		assert.Equal(t, 400, status)
		assert.Equal(t, "Value is required", body["error"])

		status, _ = doJSON(t, app, "POST", base+"/charts/nope/activate", map[string]int{"index": 0})
		assert.Equal(t, 404, status)

		status, _ = doJSON(t, app, "GET", base+"/records/nope", nil)
		assert.Equal(t, 404, status)

		status, _ = doJSON(t, app, "GET", "/api/v1/sessions/invalid-uuid", nil)
		assert.Equal(t, 400, status)

		status, _ = doJSON(t, app, "DELETE", "/api/v1/sessions/"+uuid.NewString(), nil)
		assert.Equal(t, 404, status)
	})
}

func TestFormBodies(t *testing.T) {
	t.Run("Success: form drill survives later requests", func(t *testing.T) {
		app, mockSource, _ := setupDashboardApp("")
		mockSource.On("Fetch", mock.Anything, resultEndpoint).Return(resultRecords(), nil)
		id := openSession(t, app, "result")
		base := "/api/v1/sessions/" + id

		status := doForm(t, app, base+"/drill/scores", url.Values{"field": {"subject_name"}, "value": {"Math"}})
		require.Equal(t, 200, status)
		status = doForm(t, app, base+"/filters/scores/toggle", url.Values{"field": {"district"}, "value": {"Puri"}})
		require.Equal(t, 200, status)

		for i := 0; i < 20; i++ {
			status := doForm(t, app, base+"/filters/nope/toggle", url.Values{"field": {"XXXXXXXXXXXX"}, "value": {"YYYY"}})
			assert.Equal(t, 404, status)
		}

		status, body := doJSON(t, app, "GET", base, nil)
		require.Equal(t, 200, status)
		dataset := body["datasets"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, map[string]interface{}{"subject_name": "Math"}, dataset["drill"])
		assert.Equal(t, float64(2), dataset["totalRecords"])

		for _, f := range dataset["facets"].([]interface{}) {
			facet := f.(map[string]interface{})
			if facet["field"] == "district" {
				assert.Equal(t, []interface{}{"Khurda"}, facet["selected"])
			}
		}
	})
}
