// pkg/archive/archive.go
package archive

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Source is one migrated object's pair of CSV paths: the working file
// to snapshot and the backup path to snapshot it to.
type Source interface {
	ObjectName() string
	CSVPath() string
	BackupPath() string
}

// ArchiveAll copies every source's working CSV to its backup path,
// byte-for-byte, before any validation or repair touches it. A missing
// source file or unwritable destination is fatal and propagates; no
// retry is attempted.
func ArchiveAll(logger *zap.Logger, sources []Source) error {
	for _, src := range sources {
		if err := copyFile(src.CSVPath(), src.BackupPath()); err != nil {
			return fmt.Errorf("failed to archive %s: %w", src.ObjectName(), err)
		}
		logger.Debug("Archived source file",
			zap.String("object", src.ObjectName()),
			zap.String("from", src.CSVPath()),
			zap.String("to", src.BackupPath()))
	}

	logger.Info("Archived source files", zap.Int("count", len(sources)))
	return nil
}

// copyFile copies src to dst, overwriting dst if it exists
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to sync backup: %w", err)
	}
	return nil
}
