package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testNamespace = "f5f4a0fa-9b5a-4b0a-b5a7-2b3c4d5e6f70"

func TestUUIDByName(t *testing.T) {
	a := UUIDByName(testNamespace, "bob")
	b := UUIDByName(testNamespace, "bob")
	assert.Equal(t, a, b)

	c := UUIDByName(testNamespace, "alice")
	assert.NotEqual(t, a, c)
}

func TestUUIDFromString(t *testing.T) {
	a := UUIDFromString("hello")
	assert.Equal(t, a, UUIDFromString("hello"))
	assert.NotEqual(t, a, UUIDFromString("world"))
}

func TestNumStr(t *testing.T) {
	assert.Equal(t, "42", Num2Str(42))
	assert.Equal(t, uint64(42), Str2Num("42"))
	assert.Equal(t, uint64(0), Str2Num("not-a-number"))
}
