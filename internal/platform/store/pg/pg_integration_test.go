//go:build integration_pg
// +build integration_pg

package pg

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestOpen_And_MeterRoundTrip_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2}, nil, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer p.Close()

	if err := p.Pool.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, err := p.Pool.Exec(ctx, `
		create table compteurs (
			numero_serie text primary key,
			type         text not null,
			index_actuel bigint not null default 0,
			capacite_max bigint not null default 99999
		)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	if _, err := p.Pool.Exec(ctx,
		`insert into compteurs (numero_serie, type, index_actuel) values ($1, $2, $3)`,
		"CPT-001", "EAU", 1200,
	); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var idx int64
	if err := p.Pool.QueryRow(ctx,
		`select index_actuel from compteurs where numero_serie = $1`, "CPT-001",
	).Scan(&idx); err != nil {
		t.Fatalf("select: %v", err)
	}
	if idx != 1200 {
		t.Fatalf("unexpected index: %d", idx)
	}

	ct, err := p.Pool.Exec(ctx,
		`update compteurs set index_actuel = $1 where numero_serie = $2`, 1350, "CPT-001")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ct.RowsAffected() != 1 {
		t.Fatalf("expected 1 row affected, got %d", ct.RowsAffected())
	}
}
