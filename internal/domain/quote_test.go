package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_OwnedBy(t *testing.T) {
	q := &Quote{ID: 1, UserID: 10}

	assert.True(t, q.OwnedBy(10))
	assert.False(t, q.OwnedBy(11))
}

func TestUser_NeverSerializesHash(t *testing.T) {
	u := &User{ID: 3, Username: "alice", PasswordHash: "$argon2id$secret"}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "argon2id")
	assert.Equal(t, UserSummary{ID: 3, Username: "alice"}, u.Summary())
}

func TestTagIDs(t *testing.T) {
	assert.Equal(t, []int64{4, 2}, TagIDs([]Tag{{ID: 4}, {ID: 2}}))
	assert.Empty(t, TagIDs(nil))
}
