package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "zero", size: 0},
		{name: "refresh token size", size: 32},
		{name: "odd", size: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandHexString(tt.size)
			require.NoError(t, err)
			assert.Len(t, s, tt.size*2)
			_, err = hex.DecodeString(s)
			assert.NoError(t, err)
		})
	}
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	a := GenerateRandByteArray(24)
	b := GenerateRandByteArray(24)
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b, "two random buffers should differ")
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{
		ErrUnknownParticipant, ErrInvalidMembership, ErrEmptyContent,
		ErrNotAParticipant, ErrConflictRetry, ErrBackendUnavailable, ErrorNotFound,
	}
	seen := map[string]bool{}
	for _, e := range all {
		require.False(t, seen[e.Error()], "duplicate message %q", e.Error())
		seen[e.Error()] = true
	}
}
