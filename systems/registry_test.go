package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageRegistry(t *testing.T) {
	r := NewStageRegistry()

	var ids []string
	kernel := 0
	for _, s := range r.Stages() {
		ids = append(ids, s.ID)
		if s.Kernel {
			kernel++
		}
	}
	assert.Equal(t, []string{"cleanup", "move", "feed", "grow", "age", "telemetry"}, ids)
	assert.Equal(t, 5, kernel, "the five map phases run in the kernel")

	assert.Equal(t, "Feed & Breed", r.Name("feed"))
	assert.Equal(t, "render", r.Name("render"))
	_, ok := r.Stage("render")
	assert.False(t, ok)
}
