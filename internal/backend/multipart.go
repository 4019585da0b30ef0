package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Multipart collects the fields of a multipart/form-data request.  Optional
// fields are dropped when empty so that the backend sees them as absent.
type Multipart struct {
	fields []field
	file   *filePart
}

type field struct {
	name, value string
}

type filePart struct {
	field, filename string
	content         io.Reader
}

// Field adds a field unconditionally.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, field{name, value})
	return m
}

// Optional adds a field only when value is non-empty.
func (m *Multipart) Optional(name, value string) *Multipart {
	if value != "" {
		m.Field(name, value)
	}
	return m
}

// File attaches a single file part.  A nil content is ignored.
func (m *Multipart) File(fieldName, filename string, content io.Reader) *Multipart {
	if content != nil {
		m.file = &filePart{field: fieldName, filename: filename, content: content}
	}
	return m
}

// Encode renders the body and returns it with its content type.
func (m *Multipart) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if m.file != nil {
		part, err := w.CreateFormFile(m.file.field, m.file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, m.file.content); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
