// internal/storage/blob/localfs_test.go
package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_ImplementsStore(t *testing.T) {
	var _ Store = (*LocalFS)(nil)
}

func TestLocalFS_WriteRead(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFS(dir)
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("category: sales\n")

	require.NoError(t, fs.Write(ctx, "pages/generated/1_📊_sales_analysis.yaml", data))

	got, err := fs.Read(ctx, "pages/generated/1_📊_sales_analysis.yaml")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = os.Stat(filepath.Join(dir, "pages", "generated", "1_📊_sales_analysis.yaml"))
	assert.NoError(t, err, "key should map onto the directory tree")
}

func TestLocalFS_ReadMissing(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())

	_, err := fs.Read(context.Background(), "nope.yaml")
	assert.True(t, IsNotFound(err))
}

func TestLocalFS_Exists(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewLocalFS(dir)
	ctx := context.Background()

	exists, err := fs.Exists(ctx, "nonexistent.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.Write(ctx, "exists.txt", []byte("data")))
	exists, err = fs.Exists(ctx, "exists.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalFS_List(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewLocalFS(dir)
	ctx := context.Background()

	fs.Write(ctx, "pages/generated/2_x_b.yaml", []byte("b"))
	fs.Write(ctx, "pages/generated/1_x_a.yaml", []byte("a"))
	fs.Write(ctx, "templates/analysis_template.yaml", []byte("t"))

	keys, err := fs.List(ctx, "pages/generated")
	require.NoError(t, err)
	assert.Equal(t, []string{"pages/generated/1_x_a.yaml", "pages/generated/2_x_b.yaml"}, keys)
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())

	keys, err := fs.List(context.Background(), "pages/generated")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalFS_Delete(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewLocalFS(dir)
	ctx := context.Background()

	fs.Write(ctx, "delete.txt", []byte("data"))
	require.NoError(t, fs.Delete(ctx, "delete.txt"))

	exists, _ := fs.Exists(ctx, "delete.txt")
	assert.False(t, exists, "file should be deleted")

	err := fs.Delete(ctx, "delete.txt")
	assert.True(t, IsNotFound(err), "second delete should report not found")
}
