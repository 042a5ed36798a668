package postgres

import (
	"context"
	"testing"
	"time"

	"skill-match/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBName:     "skillmatch",
		DBUser:     "app",
		DBPassword: "p@ss word's",
		DBSSLMode:  "disable",
	})
	assert.Equal(t, `host=db port=5432 user=app password='p@ss word\'s' dbname=skillmatch sslmode=disable`, dsn)
}

func TestDSN_SkipsEmptyValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "localhost", DBName: "x"})
	assert.Equal(t, "host=localhost dbname=x", dsn)
}

func TestPool_NotConnected(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), errNilPool)
	assert.NoError(t, p.Close())

	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errNilPool)

	_, err = p.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errNilPool)

	var n int
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(&n), errNilPool)
	assert.Nil(t, p.SQLDB())
}

func TestApplyPoolConfig(t *testing.T) {
	pcfg, err := pgxpool.ParseConfig("host=localhost dbname=x")
	require.NoError(t, err)
	minConns, healthCheck := pcfg.MinConns, pcfg.HealthCheckPeriod

	applyPoolConfig(pcfg, config.DatabaseConfig{PoolMaxConns: 7, PoolMaxConnLifetime: time.Minute})
	assert.Equal(t, int32(7), pcfg.MaxConns)
	assert.Equal(t, time.Minute, pcfg.MaxConnLifetime)
	assert.Equal(t, minConns, pcfg.MinConns)
	assert.Equal(t, healthCheck, pcfg.HealthCheckPeriod)
}
