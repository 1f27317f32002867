//go:build integration

// Package pgtest starts a PostgreSQL container with the roovector extension
// for integration tests.
//
// The image is taken from ROOVECTOR_TEST_IMAGE; tests are skipped when it is
// unset. ROOVECTOR_TEST_EXTENSION names the extension to create (default
// "roovector").
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	user     = "testuser"
	password = "testpass"
	dbName   = "testdb"
	pgPort   = nat.Port("5432/tcp")
)

// Container is a running database.
type Container struct {
	testcontainers.Container
	Config config.Postgres
}

// Start runs the test image and returns once the extension is installed. The
// container is terminated when t finishes.
func Start(ctx context.Context, t *testing.T) *Container {
	t.Helper()

	image := os.Getenv("ROOVECTOR_TEST_IMAGE")
	if image == "" {
		t.Skip("ROOVECTOR_TEST_IMAGE is not set")
	}
	extension := os.Getenv("ROOVECTOR_TEST_EXTENSION")
	if extension == "" {
		extension = "roovector"
	}

	port, err := freePort()
	if err != nil {
		t.Fatalf("could not get free port: %v", err)
	}

	req := testcontainers.ContainerRequest{
		Image: image,
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		},
		ExposedPorts: []string{string(pgPort)},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				pgPort: []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
			}
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Terminate(context.Background())
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, pgPort)
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	pc := &Container{
		Container: c,
		Config: config.Postgres{
			Connection: config.Connection{
				Host:     host,
				Port:     mapped.Port(),
				User:     user,
				Password: password,
				DbName:   dbName,
				SSLMode:  "disable",
			},
			Pool: config.Pool{}.WithDefaults(),
		},
	}

	if err := pc.Exec(ctx, fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s", extension)); err != nil {
		t.Fatalf("creating extension %s: %v", extension, err)
	}
	return pc
}

// Exec runs statements on a short-lived connection that has no vector
// registration.
func (c *Container) Exec(ctx context.Context, statements ...string) error {
	db, err := sql.Open("pgx", c.Config.Connection.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(30 * time.Second)
	for {
		err = db.PingContext(ctx)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("postgres not ready: %w", err)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
