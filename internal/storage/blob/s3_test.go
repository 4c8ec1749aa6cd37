// internal/storage/blob/s3_test.go
package blob

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_ImplementsStore(t *testing.T) {
	var _ Store = (*S3Storage)(nil)
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(S3Config{Region: "us-east-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfigMissing)
}

func TestNewS3_TrimsPrefix(t *testing.T) {
	s, err := NewS3(S3Config{Bucket: "pages", Region: "us-east-1", Prefix: "/dash/"})
	require.NoError(t, err)
	assert.Equal(t, "dash", s.prefix)
}

func TestS3Storage_Key(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "file.txt", "file.txt"},
		{"archive", "file.txt", "archive/file.txt"},
		{"archive", "pages/generated/1.yaml", "archive/pages/generated/1.yaml"},
	}

	for _, tt := range tests {
		s := &S3Storage{prefix: tt.prefix}
		assert.Equal(t, tt.want, s.key(tt.path), "prefix %q", tt.prefix)
		assert.Equal(t, tt.path, s.relative(s.key(tt.path)), "prefix %q", tt.prefix)
	}
}

func TestIsMissing(t *testing.T) {
	assert.True(t, isMissing(&types.NoSuchKey{}))
	assert.True(t, isMissing(fmt.Errorf("head: %w", &types.NotFound{})))
	assert.False(t, isMissing(fmt.Errorf("access denied")))
}
