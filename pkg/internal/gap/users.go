package gap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const GetUsersByIDsMethod = "/proto.UserService/GetUsersByIds"

type GetUsersByIDsRequest struct {
	IDs []string `json:"ids"`
}

type GetUsersByIDsResponse struct {
	Users []models.User `json:"users"`
}

type DirectoryConfig struct {
	Address  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// UserDirectory looks accounts up at the user service. Profiles are cached
// locally for a short while so admin listings do not hit it every time.
type UserDirectory struct {
	pool   *ConnPool
	config DirectoryConfig
	cache  *marshaler.Marshaler
}

func NewUserDirectory(pool *ConnPool, config DirectoryConfig, cacheStore store.StoreInterface) *UserDirectory {
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	directory := &UserDirectory{pool: pool, config: config}
	if cacheStore != nil && config.CacheTTL > 0 {
		directory.cache = marshaler.New(cache.New[any](cacheStore))
	}
	return directory
}

func (v *UserDirectory) GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))

	var missing []string
	for _, id := range lo.Uniq(ids) {
		if user, ok := v.cached(ctx, id); ok {
			out[id] = user
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	conn, err := v.pool.Acquire(v.config.Address)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, v.config.Timeout)
	defer cancel()

	var resp GetUsersByIDsResponse
	if err := conn.Invoke(
		ctx,
		GetUsersByIDsMethod,
		&GetUsersByIDsRequest{IDs: missing},
		&resp,
		grpc.CallContentSubtype(CodecName),
	); err != nil {
		if status.Code(err) == codes.DeadlineExceeded || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("get users by ids: %w: %w", context.DeadlineExceeded, err)
		}
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	for _, user := range resp.Users {
		out[user.ID] = user
		v.remember(ctx, user)
	}

	return out, nil
}

func (v *UserDirectory) cached(ctx context.Context, id string) (models.User, bool) {
	if v.cache == nil {
		return models.User{}, false
	}
	raw, err := v.cache.Get(ctx, userCacheKey(id), new(models.User))
	if err != nil {
		return models.User{}, false
	}
	user, ok := raw.(*models.User)
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

func (v *UserDirectory) remember(ctx context.Context, user models.User) {
	if v.cache == nil {
		return
	}
	if err := v.cache.Set(
		ctx,
		userCacheKey(user.ID),
		user,
		store.WithExpiration(v.config.CacheTTL),
		store.WithCost(1),
	); err != nil {
		log.Warn().Err(err).Str("user", user.ID).Msg("Unable to cache user profile.")
	}
}

func userCacheKey(id string) string {
	return fmt.Sprintf("directory-user#%s", id)
}
