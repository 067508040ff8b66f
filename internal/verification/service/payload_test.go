package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

func TestParsePayload(t *testing.T) {
	t.Run("v1 with two integer args", func(t *testing.T) {
		ans, err := parsePayload("v1:2:1001")
		assert.NoError(t, err)
		assert.Equal(t, 2, ans.Chosen)
		assert.Equal(t, int64(1001), ans.VerificationID)
	})

	t.Run("negative indices still parse", func(t *testing.T) {
		ans, err := parsePayload("v1:-1:7")
		assert.NoError(t, err)
		assert.Equal(t, -1, ans.Chosen)
	})

	failures := []struct {
		name    string
		payload string
	}{
		{"unknown version v2", "v2:2:1001"},
		{"empty payload", ""},
		{"missing args", "v1:2"},
		{"extra args", "v1:2:1001:junk"},
		{"non numeric chosen", "v1:two:1001"},
		{"non numeric verification id", "v1:2:x"},
		{"bare version", "v1"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parsePayload(tc.payload)
			assert.Error(t, err)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeBadPayload))
		})
	}
}
