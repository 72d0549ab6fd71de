package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "code").
		From("tickets").
		Where(squirrel.Eq{"state": "pending"}).
		Where(squirrel.Like{"code": "0705-%"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, code FROM tickets WHERE state = $1 AND code LIKE $2", query)
	assert.Equal(t, []interface{}{"pending", "0705-%"}, args)

	query, _, err = Update("tickets").Set("state", "called").Where(squirrel.Eq{"id": 7}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE tickets SET state = $1 WHERE id = $2", query)
}
