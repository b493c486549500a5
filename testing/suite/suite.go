package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	mongoPort     = "27017/tcp"
	mongoImage    = "mongo"
	mongoTag      = "7"
	mongoDatabase = "gamehub_test"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
	Mongo   *mongo.Database
}

// New starts a Redis container for the test.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, st := prepare(t)

	redisHost := st.run(redisImage, redisTag, redisPort)

	var redisClient *redis.Client
	st.retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	})

	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	st.Storage = redisClient

	return ctx, st.Suite
}

// NewMongo starts a MongoDB container for the test.
func NewMongo(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, st := prepare(t)

	mongoHost := st.run(mongoImage, mongoTag, mongoPort)

	var client *mongo.Client
	st.retry(func() error {
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI("mongodb://"+mongoHost))
		if err != nil {
			return err
		}
		return client.Ping(ctx, nil)
	})

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	st.Mongo = client.Database(mongoDatabase)

	return ctx, st.Suite
}

type container struct {
	*Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

func prepare(t *testing.T) (context.Context, *container) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	return ctx, &container{
		Suite: &Suite{T: t, Logger: logger},
		pool:  pool,
	}
}

// run pulls an image, creates a container based on it and runs it.
func (that *container) run(repository, tag, port string) string {
	that.Helper()

	resource, err := that.pool.RunWithOptions(&dockertest.RunOptions{
		Repository: repository,
		Tag:        tag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		that.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	that.resource = resource

	that.Cleanup(func() {
		if err = that.pool.Purge(resource); err != nil {
			that.Fatalf("could not purge resource: %v", err)
		}
	})

	return resource.GetHostPort(port)
}

func (that *container) retry(connect func() error) {
	that.Helper()

	if err := that.pool.Retry(connect); err != nil {
		that.Fatalf("could not connect to %s: %v", that.resource.Container.Config.Image, err)
	}
}
