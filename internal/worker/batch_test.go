package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessEach_IsolatesFailures(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	staged := ProcessEach(context.Background(), "test", items, func(n int) (int, bool, error) {
		switch n {
		case 2:
			return 0, false, errors.New("malformed")
		case 3:
			panic("unexpected nil")
		case 4:
			return 0, false, nil
		}
		return n * 10, true, nil
	})

	assert.Equal(t, []int{10, 50}, staged)
}

func TestProcessEach_Empty(t *testing.T) {
	staged := ProcessEach(context.Background(), "test", nil, func(n int) (int, bool, error) {
		return n, true, nil
	})
	assert.Empty(t, staged)
}
