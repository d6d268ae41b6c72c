package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDriverRegistered(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "postgres")
}
