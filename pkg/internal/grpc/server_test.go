package grpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/database"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/gap"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type memoryPublisher struct {
	mu      sync.Mutex
	uploads []mq.UploadTask
}

func (v *memoryPublisher) PublishUpload(_ context.Context, task mq.UploadTask) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.uploads = append(v.uploads, task)
	return nil
}

func (v *memoryPublisher) PublishDelete(context.Context, mq.DeleteTask) error {
	return nil
}

type staticDirectory struct {
	users map[string]models.User
	err   error
}

func (v *staticDirectory) GetUsersByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	if v.err != nil {
		return nil, v.err
	}
	out := make(map[string]models.User)
	for _, id := range ids {
		if user, ok := v.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

type client struct {
	conn *grpc.ClientConn
}

func (v client) call(t *testing.T, method string, in, out any) error {
	t.Helper()
	return v.conn.Invoke(
		context.Background(),
		"/"+PostServiceName+"/"+method,
		in,
		out,
		grpc.CallContentSubtype(gap.CodecName),
	)
}

func startServer(t *testing.T, directory services.UserDirectory) (client, *memoryPublisher) {
	t.Helper()

	db, err := database.NewGorm(database.Config{Driver: "sqlite", Dsn: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.RunMigration(db))

	publisher := &memoryPublisher{}
	images := services.ImageConfig{Endpoint: "https://ik.imagekit.io/scribe", Folder: "posts"}
	app := NewGrpc(
		services.NewTopicService(db, directory, publisher),
		services.NewPostService(db, publisher, images, services.PostConfig{}),
	)

	listener := bufconn.Listen(1 << 20)
	go func() { _ = app.Serve(listener) }()
	t.Cleanup(app.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///scribe",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return client{conn: conn}, publisher
}

func TestTopicLifecycleOverRPC(t *testing.T) {
	c, _ := startServer(t, &staticDirectory{users: map[string]models.User{
		"user-1": {ID: "user-1", Username: "alice"},
	}})

	var created CreatedResponse
	require.NoError(t, c.call(t, "CreateTopic", &CreateTopicRequest{Name: "Travel", UserID: "user-1"}, &created))
	require.NotEmpty(t, created.ID)

	err := c.call(t, "CreateTopic", &CreateTopicRequest{Name: "Travel", UserID: "user-1"}, &CreatedResponse{})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	var updated UpdatedResponse
	require.NoError(t, c.call(t, "UpdateTopic", &UpdateTopicRequest{ID: created.ID, Name: "Trips", Slug: "trips", UserID: "user-1"}, &updated))
	assert.True(t, updated.Success)

	err = c.call(t, "UpdateTopic", &UpdateTopicRequest{ID: "missing", Name: "x", UserID: "user-1"}, &UpdatedResponse{})
	assert.Equal(t, codes.NotFound, status.Code(err))

	var deleted DeletedResponse
	err = c.call(t, "DeleteTopics", &DeleteManyRequest{IDs: []string{created.ID, "missing"}, UserID: "user-1"}, &deleted)
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, c.call(t, "DeleteTopic", &DeleteOneRequest{ID: created.ID, UserID: "user-1"}, &deleted))
	assert.True(t, deleted.Success)

	var restored RestoredResponse
	require.NoError(t, c.call(t, "RestoreTopics", &RestoreManyRequest{IDs: []string{created.ID}, UserID: "user-2"}, &restored))
	assert.True(t, restored.Success)

	var listed TopicsAdminResponse
	require.NoError(t, c.call(t, "GetAllTopicsAdmin", &GetAllTopicsAdminRequest{}, &listed))
	require.Len(t, listed.Topics, 1)
	assert.Equal(t, "trips", listed.Topics[0].Slug)
	require.NotNil(t, listed.Topics[0].CreatedBy)
	assert.Equal(t, "alice", listed.Topics[0].CreatedBy.Username)
	assert.Nil(t, listed.Topics[0].UpdatedBy)

	err = c.call(t, "PermanentlyDeleteTopic", &PermanentlyDeleteOneRequest{ID: created.ID}, &deleted)
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, c.call(t, "DeleteTopic", &DeleteOneRequest{ID: created.ID, UserID: "user-1"}, &deleted))
	require.NoError(t, c.call(t, "PermanentlyDeleteTopics", &PermanentlyDeleteManyRequest{IDs: []string{created.ID}}, &deleted))

	require.NoError(t, c.call(t, "GetAllTopicsAdmin", &GetAllTopicsAdminRequest{}, &listed))
	assert.Empty(t, listed.Topics)
}

func TestCreatePostOverRPC(t *testing.T) {
	c, publisher := startServer(t, &staticDirectory{})

	var topic CreatedResponse
	require.NoError(t, c.call(t, "CreateTopic", &CreateTopicRequest{Name: "Travel", UserID: "user-1"}, &topic))

	var post CreatedResponse
	require.NoError(t, c.call(t, "CreatePost", &CreatePostRequest{
		TopicID: topic.ID,
		Title:   "My Trip",
		Content: "Along the coast.",
		Images:  []CreateImageRequest{{Data: []byte{0x89, 'P', 'N', 'G'}, FileName: "a.png", SortOrder: 0}},
		UserID:  "user-1",
	}, &post))
	require.NotEmpty(t, post.ID)

	require.Len(t, publisher.uploads, 1)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, publisher.uploads[0].Payload)
	assert.True(t, strings.HasSuffix(publisher.uploads[0].FileName, "my-trip-image0.png"))

	err := c.call(t, "CreatePost", &CreatePostRequest{TopicID: "missing", Title: "Other"}, &CreatedResponse{})
	assert.Equal(t, codes.NotFound, status.Code(err))

	err = c.call(t, "CreatePost", &CreatePostRequest{TopicID: topic.ID, Title: "My Trip"}, &CreatedResponse{})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	err = c.call(t, "CreatePost", &CreatePostRequest{
		TopicID: topic.ID,
		Title:   "Another Trip",
		Images: []CreateImageRequest{
			{Data: []byte("x"), FileName: "a.png", SortOrder: -3},
			{Data: nil, FileName: "b.png", SortOrder: 1},
		},
	}, &CreatedResponse{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Len(t, publisher.uploads, 1)
}

func TestInternalErrorsCarryOperation(t *testing.T) {
	c, _ := startServer(t, &staticDirectory{err: errors.New("directory unavailable")})

	require.NoError(t, c.call(t, "CreateTopic", &CreateTopicRequest{Name: "Travel", UserID: "user-1"}, &CreatedResponse{}))

	err := c.call(t, "GetAllTopicsAdmin", &GetAllTopicsAdminRequest{}, &TopicsAdminResponse{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "get all topics failed")
}
