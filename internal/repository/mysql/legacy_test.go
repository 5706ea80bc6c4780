package mysql

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(sql.NullString{}))
	assert.Nil(t, nullString(sql.NullString{Valid: true}))

	got := nullString(sql.NullString{String: "22:40:00", Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, "22:40:00", *got)
}
