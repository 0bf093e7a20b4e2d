package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayActor(t *testing.T) {
	jdoe := "jdoe"
	empty := ""

	assert.Equal(t, "jdoe", DisplayActor(&jdoe))

	// Journal rows written without an actor belong to the system.
	assert.Equal(t, "system", DisplayActor(nil))
	assert.Equal(t, "system", DisplayActor(&empty))
}
