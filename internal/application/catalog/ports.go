package catalog

import "io"

// ImageStore colaborador externo de almacenamiento de imágenes. El núcleo
// guarda la referencia opaca que devuelve Save; nunca interpreta ni valida
// los bytes de la imagen.
type ImageStore interface {
	// Save persiste el contenido y devuelve la URL/handle opaco a guardar
	// en la figura. filename solo aporta la extensión.
	Save(filename string, content io.Reader) (string, error)
}
