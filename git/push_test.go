package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePushInput(t *testing.T) {
	input := "refs/heads/main 2c26b46b68ffc68ff99b453c1d30413413422d70 refs/heads/main 7d865e959b2466918c9863afca942d0fb89d7c9a\n" +
		"refs/heads/gone " + ZeroSHA + " refs/heads/gone 7d865e959b2466918c9863afca942d0fb89d7c9a\n"

	ranges, err := ParsePushInput(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	assert.Equal(t, "refs/heads/main", ranges[0].LocalRef)
	assert.Equal(t, "7d865e959b2466918c9863afca942d0fb89d7c9a", ranges[0].RemoteSHA)
	assert.False(t, ranges[0].IsDelete())
	assert.True(t, ranges[1].IsDelete())
}

func TestParsePushInputEmpty(t *testing.T) {
	ranges, err := ParsePushInput(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestParsePushInputMalformed(t *testing.T) {
	_, err := ParsePushInput(strings.NewReader("refs/heads/main abc\n"))
	assert.Error(t, err)
}
