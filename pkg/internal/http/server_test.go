package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/database"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) PublishUpload(context.Context, mq.UploadTask) error { return nil }
func (nopPublisher) PublishDelete(context.Context, mq.DeleteTask) error { return nil }

type emptyDirectory struct{}

func (emptyDirectory) GetUsersByIDs(context.Context, []string) (map[string]models.User, error) {
	return map[string]models.User{}, nil
}

func newTestServer(t *testing.T) *App {
	t.Helper()
	db, err := database.NewGorm(database.Config{Driver: "sqlite", Dsn: ":memory:"})
	require.NoError(t, err)
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, database.RunMigration(db))

	images := services.ImageConfig{Endpoint: "https://ik.imagekit.io/scribe", Folder: "posts"}
	return NewServer(
		Config{Bind: ":0"},
		services.NewTopicService(db, emptyDirectory{}, nopPublisher{}),
		services.NewPostService(db, nopPublisher{}, images, services.PostConfig{}),
	)
}

func do(t *testing.T, server *App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	_ = jsoniter.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)
	code, body := do(t, server, http.MethodGet, "/.well-known/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateTopicAndPost(t *testing.T) {
	server := newTestServer(t)

	code, body := do(t, server, http.MethodPost, "/api/topics", `{"name":"Travel"}`)
	require.Equal(t, http.StatusCreated, code)
	topicID := body["id"].(string)

	code, _ = do(t, server, http.MethodPost, "/api/topics", `{"name":"Travel"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, server, http.MethodPost, "/api/topics", `{"slug":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, server, http.MethodPost, "/api/posts",
		`{"topic_id":"`+topicID+`","title":"My Trip","images":[{"data":"aGVsbG8=","file_name":"a.png","sort_order":0}]}`)
	require.Equal(t, http.StatusCreated, code)
	postID := body["id"].(string)

	code, body = do(t, server, http.MethodGet, "/api/posts/"+postID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "my-trip", body["slug"])
	images := body["images"].([]any)
	require.Len(t, images, 1)
	image := images[0].(map[string]any)
	assert.Equal(t, "https://ik.imagekit.io/scribe/posts/my-trip-image0.png", image["url"])
	assert.Nil(t, image["external_file_id"])

	code, body = do(t, server, http.MethodGet, "/api/images/"+image["id"].(string), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.ImageStatePending, body["state"])

	code, _ = do(t, server, http.MethodGet, "/api/posts/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminTopicRoutes(t *testing.T) {
	server := newTestServer(t)

	_, body := do(t, server, http.MethodPost, "/api/topics", `{"name":"Travel"}`)
	topicID := body["id"].(string)

	code, _ := do(t, server, http.MethodDelete, "/api/admin/topics", `{"ids":["`+topicID+`","missing"]}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, server, http.MethodDelete, "/api/admin/topics/"+topicID, "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, server, http.MethodPost, "/api/admin/topics/"+topicID+"/restore", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, server, http.MethodDelete, "/api/admin/topics/"+topicID+"/permanent", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, server, http.MethodDelete, "/api/admin/topics", `{"ids":["`+topicID+`"]}`)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, server, http.MethodDelete, "/api/admin/topics/permanent", `{"ids":["`+topicID+`"]}`)
	assert.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/topics", nil)
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}
