package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/database"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Config{Driver: "sqlite", Dsn: ":memory:"})
	require.NoError(t, err)
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, database.RunMigration(db))
	return db
}

type fakePublisher struct {
	mu      sync.Mutex
	uploads []mq.UploadTask
	deletes []mq.DeleteTask
	err     error
}

func (v *fakePublisher) PublishUpload(_ context.Context, task mq.UploadTask) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return v.err
	}
	v.uploads = append(v.uploads, task)
	return nil
}

func (v *fakePublisher) PublishDelete(_ context.Context, task mq.DeleteTask) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return v.err
	}
	v.deletes = append(v.deletes, task)
	return nil
}

type fakeDirectory struct {
	users map[string]models.User
	calls [][]string
	err   error
}

func (v *fakeDirectory) GetUsersByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	v.calls = append(v.calls, ids)
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

var errBroker = errors.New("broker unavailable")
