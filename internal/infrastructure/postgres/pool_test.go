package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/pkg/config"
)

func TestNewPoolConfig_DesdeCampos(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "caderno", Password: "p@ss:word", DBName: "loja", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "loja", pc.ConnConfig.Database)
	assert.Equal(t, int32(maxConns), pc.MaxConns)
	assert.Equal(t, "caderno-api", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@remoto:5432/ledger?sslmode=disable",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "remoto", pc.ConnConfig.Host)
	assert.Equal(t, "ledger", pc.ConnConfig.Database)
}

func TestNewPoolConfig_URLInvalida(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
