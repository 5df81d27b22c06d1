package gap

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const retryServiceConfig = `{
	"methodConfig": [{
		"name": [{}],
		"retryPolicy": {
			"maxAttempts": 3,
			"initialBackoff": "0.2s",
			"maxBackoff": "2s",
			"backoffMultiplier": 2,
			"retryableStatusCodes": ["UNAVAILABLE"]
		}
	}]
}`

// ConnPool hands out one long lived connection per target address.
// It is created by main and closed on shutdown.
type ConnPool struct {
	mu      sync.Mutex
	conns   map[string]*grpc.ClientConn
	options []grpc.DialOption
}

func NewConnPool(options ...grpc.DialOption) *ConnPool {
	defaults := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(retryServiceConfig),
		grpc.WithIdleTimeout(5 * time.Minute),
	}
	return &ConnPool{
		conns:   make(map[string]*grpc.ClientConn),
		options: append(defaults, options...),
	}
}

// Acquire returns the shared connection for target, creating it on first use.
// Callers must not close the returned connection.
func (v *ConnPool) Acquire(target string) (*grpc.ClientConn, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.conns == nil {
		return nil, fmt.Errorf("connection pool is closed")
	}
	if conn, ok := v.conns[target]; ok {
		return conn, nil
	}

	conn, err := grpc.NewClient(target, v.options...)
	if err != nil {
		return nil, fmt.Errorf("create client for %s: %w", target, err)
	}
	v.conns[target] = conn
	log.Debug().Str("target", target).Msg("Created gRPC client connection.")

	return conn, nil
}

func (v *ConnPool) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var errs []error
	for target, conn := range v.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", target, err))
		}
	}
	v.conns = nil

	return errors.Join(errs...)
}
