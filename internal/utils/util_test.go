package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyTime(t *testing.T) {
	assert.Equal(t, "0:00", PrettyTime(0))
	assert.Equal(t, "1:30", PrettyTime(90))
	assert.Equal(t, "1:02:03", PrettyTime(3723))
}

func TestEscapeMd(t *testing.T) {
	assert.Equal(t, "\\*bold\\* \\_it\\_", EscapeMd("*bold* _it_"))
}

func TestAtoi(t *testing.T) {
	assert.Equal(t, 0, Atoi(""))
	assert.Equal(t, 42, Atoi("42"))
	assert.Equal(t, 0, Atoi("nope"))
}
