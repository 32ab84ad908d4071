package file

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/sbilibin2017/prometheus2zabbix/internal/encoder"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
)

// TemplateWriteRepository writes rendered templates to a file.
type TemplateWriteRepository struct {
	templateFilePath string
	format           encoder.Format
	mu               sync.Mutex
}

// NewTemplateWriteRepository creates a new write repository.
func NewTemplateWriteRepository(path string, format encoder.Format) *TemplateWriteRepository {
	return &TemplateWriteRepository{
		templateFilePath: path,
		format:           format,
	}
}

// Save replaces the file with the encoded export. Readers never observe a
// partially written document.
func (r *TemplateWriteRepository) Save(ctx context.Context, export *models.Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(r.templateFilePath), "."+filepath.Base(r.templateFilePath)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	if err := encoder.Encode(writer, export, r.format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), r.templateFilePath)
}
