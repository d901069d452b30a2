package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Length(t *testing.T) {
	testCases := []struct {
		name   string
		iv     Interval
		expect int
	}{
		{name: "single value", iv: NewInterval(5, 5), expect: 1},
		{name: "range", iv: NewInterval(3, 7), expect: 5},
		{name: "inverted is empty", iv: NewInterval(7, 3), expect: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.iv.Length())
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	iv := NewInterval(10, 20)
	assert.True(t, iv.Contains(10))
	assert.True(t, iv.Contains(20))
	assert.True(t, iv.Contains(15))
	assert.False(t, iv.Contains(9))
	assert.False(t, iv.Contains(21))
}

func TestInterval_Adjacent(t *testing.T) {
	assert.True(t, NewInterval(1, 5).Adjacent(NewInterval(6, 9)))
	assert.True(t, NewInterval(6, 9).Adjacent(NewInterval(1, 5)))
	assert.False(t, NewInterval(1, 5).Adjacent(NewInterval(7, 9)))
	assert.False(t, NewInterval(1, 5).Adjacent(NewInterval(5, 9)))
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "5", NewInterval(5, 5).String())
	assert.Equal(t, "3..7", NewInterval(3, 7).String())
}
