package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	u := &UserContext{Permissions: []string{"translation.edit", "image.identify"}}
	assert.True(t, u.HasPermission("translation.edit"))
	assert.False(t, u.HasPermission("translation.approve"))

	empty := &UserContext{}
	assert.False(t, empty.HasPermission("translation.edit"))
}
