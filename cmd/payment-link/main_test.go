package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteTimeout(t *testing.T) {
	assert.Equal(t, 25*time.Second, writeTimeout(15*time.Second))
	assert.Equal(t, time.Duration(0), writeTimeout(0))
}
