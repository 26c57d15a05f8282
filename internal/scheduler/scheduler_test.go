package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamerent-backend/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	jr := jobs.NewJobRunner(nil, nil, 0)

	t.Run("ValidSpec", func(t *testing.T) {
		s, err := NewScheduler(jr, "0 */2 * * * *")
		assert.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("InvalidSpec", func(t *testing.T) {
		_, err := NewScheduler(jr, "every two minutes")
		assert.Error(t, err)
	})
}
