package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_StartsAtLogin(t *testing.T) {
	s := NewStack()
	assert.Equal(t, Login, s.Current().Route)
	assert.False(t, s.Back())
}

func TestStack_PushAndBack(t *testing.T) {
	s := NewStack()
	s.Push(Home, nil)
	s.Push(FunFact, map[string]string{"fact": "Kookaburras laugh at dawn."})

	fact, ok := s.Current().Param("fact")
	assert.True(t, ok)
	assert.Equal(t, "Kookaburras laugh at dawn.", fact)
	assert.Equal(t, []Route{Login, Home, FunFact}, s.Routes())

	assert.True(t, s.Back())
	assert.Equal(t, Home, s.Current().Route)
	_, ok = s.Current().Param("fact")
	assert.False(t, ok)
}

func TestStack_ResetDropsHistory(t *testing.T) {
	s := NewStack()
	s.Push(Home, nil)
	s.Push(Profile, nil)

	s.Reset(Login)

	assert.Equal(t, []Route{Login}, s.Routes())
	assert.False(t, s.Back())
	assert.Equal(t, Login, s.Current().Route)
}

func TestStack_PushCopiesParams(t *testing.T) {
	s := NewStack()
	params := map[string]string{"fact": "original"}
	s.Push(FunFact, params)
	params["fact"] = "changed"

	got, _ := s.Current().Param("fact")
	assert.Equal(t, "original", got)
}
