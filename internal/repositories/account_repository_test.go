package repositories

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawUserID_SevenDigits(t *testing.T) {
	id, err := DrawUserID(func(string) (bool, error) { return false, nil })
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{6}$`), id)
}

func TestDrawUserID_RetriesOnCollision(t *testing.T) {
	calls := 0
	id, err := DrawUserID(func(string) (bool, error) {
		calls++
		return calls < 4, nil
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 4, calls)
}

func TestDrawUserID_GivesUpWhenExhausted(t *testing.T) {
	_, err := DrawUserID(func(string) (bool, error) { return true, nil })
	assert.Error(t, err)
}

func TestDrawUserID_PropagatesLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := DrawUserID(func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
