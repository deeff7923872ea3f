package ephemeris

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/storage"
)

// vsopDataFiles файлы теории VSOP87, без которых бэкенд не стартует:
// Земля для перевода в геоцентрические долготы, пять классических планет
var vsopDataFiles = []string{
	"VSOP87B.ear",
	"VSOP87B.mer",
	"VSOP87B.ven",
	"VSOP87B.mar",
	"VSOP87B.jup",
	"VSOP87B.sat",
}

// EnsureData докачивает отсутствующие файлы эфемерид из S3 в локальный
// каталог. Без настроенного S3 отсутствие файлов фатально: считать нечем
func EnsureData(ctx context.Context, dataDir string, remote storage.IS3Client, log *slog.Logger) error {
	missing := missingDataFiles(dataDir)
	if len(missing) == 0 {
		return nil
	}

	if remote == nil {
		return fmt.Errorf("ephemeris data files missing in %s and no S3 configured: %s",
			dataDir, strings.Join(missing, ", "))
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	// Раскладка бакета не фиксирована, файлы ищутся по имени в любом каталоге
	keys, err := remote.ListFiles(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list ephemeris bucket: %w", err)
	}
	remoteKeys := make(map[string]string, len(keys))
	for _, key := range keys {
		remoteKeys[filepath.Base(key)] = key
	}

	for _, name := range missing {
		key, ok := remoteKeys[name]
		if !ok {
			return fmt.Errorf("ephemeris file %s is not present in the bucket", name)
		}
		if err := fetchDataFile(ctx, dataDir, name, key, remote); err != nil {
			return err
		}
		log.Info("ephemeris data file fetched",
			"file", name,
			"key", key,
			"data_dir", dataDir,
		)
	}

	return nil
}

func missingDataFiles(dataDir string) []string {
	var missing []string
	for _, name := range vsopDataFiles {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func fetchDataFile(ctx context.Context, dataDir, name, key string, remote storage.IS3Client) error {
	want, err := remote.StatFileSize(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to stat ephemeris file %s: %w", key, err)
	}

	data, err := remote.GetFile(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch ephemeris file %s: %w", key, err)
	}
	if int64(len(data)) != want {
		return fmt.Errorf("ephemeris file %s is truncated: got %d bytes, want %d", key, len(data), want)
	}

	if err := os.WriteFile(filepath.Join(dataDir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write ephemeris file %s: %w", name, err)
	}
	return nil
}
