// Package storage adaptadores de almacenamiento de imágenes. El núcleo del
// ledger solo conoce la URL opaca que devuelven; cambiar de disco local a un
// bucket es cambiar de adaptador.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jhoicas/figures-ledger/internal/application/catalog"
)

var _ catalog.ImageStore = (*LocalImageStore)(nil)

// LocalImageStore guarda las imágenes en un directorio local servido como
// estático por el servidor HTTP.
type LocalImageStore struct {
	dir       string // directorio físico
	urlPrefix string // prefijo público, ej. /static
}

// NewLocalImageStore crea el directorio si no existe.
func NewLocalImageStore(dir, urlPrefix string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &LocalImageStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Save escribe el contenido bajo un nombre aleatorio (se conserva solo la
// extensión original) y devuelve la URL pública.
func (s *LocalImageStore) Save(filename string, content io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	dest := filepath.Join(s.dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("crear archivo de imagen: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}
