package ephemeris

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	files map[string][]byte // key -> содержимое

	getCalls  int
	listCalls int
}

func (f *fakeS3) GetFile(_ context.Context, path string) ([]byte, error) {
	f.getCalls++
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", path)
	}
	return data, nil
}

func (f *fakeS3) ListFiles(_ context.Context, _ string) ([]string, error) {
	f.listCalls++
	keys := make([]string, 0, len(f.files))
	for key := range f.files {
		keys = append(keys, key)
	}
	return keys, nil
}

func (f *fakeS3) StatFileSize(_ context.Context, path string) (int64, error) {
	data, ok := f.files[path]
	if !ok {
		return 0, fmt.Errorf("no such key: %s", path)
	}
	return int64(len(data)), nil
}

func bootstrapLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeLocalDataFiles(t *testing.T, dir string, names []string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("local"), 0o644))
	}
}

func TestEnsureDataAllPresent(t *testing.T) {
	dir := t.TempDir()
	writeLocalDataFiles(t, dir, vsopDataFiles)

	remote := &fakeS3{}
	require.NoError(t, EnsureData(context.Background(), dir, remote, bootstrapLogger()))

	// Полный локальный набор не трогает S3
	assert.Zero(t, remote.listCalls)
	assert.Zero(t, remote.getCalls)
}

func TestEnsureDataNoRemote(t *testing.T) {
	dir := t.TempDir()

	err := EnsureData(context.Background(), dir, nil, bootstrapLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no S3 configured")
	assert.Contains(t, err.Error(), "VSOP87B.ear")
}

func TestEnsureDataDownloadsMissing(t *testing.T) {
	dir := t.TempDir()
	writeLocalDataFiles(t, dir, []string{"VSOP87B.ear", "VSOP87B.mer", "VSOP87B.ven", "VSOP87B.mar"})

	// Недостающие файлы лежат в бакете в подкаталоге
	remote := &fakeS3{files: map[string][]byte{
		"vsop87/VSOP87B.jup": []byte("jupiter data"),
		"vsop87/VSOP87B.sat": []byte("saturn data"),
	}}

	require.NoError(t, EnsureData(context.Background(), dir, remote, bootstrapLogger()))
	assert.Equal(t, 2, remote.getCalls)

	for name, want := range map[string]string{
		"VSOP87B.jup": "jupiter data",
		"VSOP87B.sat": "saturn data",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}

	// Повторный вызов видит полный набор и в S3 не ходит
	remote.getCalls = 0
	remote.listCalls = 0
	require.NoError(t, EnsureData(context.Background(), dir, remote, bootstrapLogger()))
	assert.Zero(t, remote.getCalls)
	assert.Zero(t, remote.listCalls)
}

func TestEnsureDataFileAbsentInBucket(t *testing.T) {
	dir := t.TempDir()
	writeLocalDataFiles(t, dir, []string{"VSOP87B.ear", "VSOP87B.mer", "VSOP87B.ven", "VSOP87B.mar", "VSOP87B.jup"})

	remote := &fakeS3{files: map[string][]byte{}}

	err := EnsureData(context.Background(), dir, remote, bootstrapLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VSOP87B.sat")
	assert.Contains(t, err.Error(), "not present")
}
