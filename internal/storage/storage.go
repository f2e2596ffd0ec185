package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/rasulq/homework-bot/internal/config"
)

// Storage сохраняет копии присланных файлов с решениями.
type Storage interface {
	Save(ctx context.Context, name string, data io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ObjectName строит имя объекта по схеме {student_id}_{homework_id}_{имя файла}.
// Коллизии разрешаются перезаписью одноименного объекта.
func ObjectName(studentID, homeworkID int64, fileName string) string {
	return fmt.Sprintf("%d_%d_%s", studentID, homeworkID, fileName)
}

func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalStorage(cfg.Dir)
	case "minio":
		return NewMinIOStorage(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
