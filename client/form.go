package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FileUpload is a named stream attached to a multipart request.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// FormBody accumulates multipart/form-data fields. Optional fields are
// added only when non-empty so absent values never reach the wire.
type FormBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func NewFormBody() *FormBody {
	f := &FormBody{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

func (f *FormBody) Field(name, value string) *FormBody {
	if f.err == nil {
		f.err = f.writer.WriteField(name, value)
	}
	return f
}

func (f *FormBody) OptionalField(name, value string) *FormBody {
	if value == "" {
		return f
	}
	return f.Field(name, value)
}

func (f *FormBody) File(field string, file *FileUpload) *FormBody {
	if file == nil || f.err != nil {
		return f
	}
	part, err := f.writer.CreateFormFile(field, file.Name)
	if err != nil {
		f.err = err
		return f
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		f.err = err
	}
	return f
}

// Encode finalizes the body and returns it with its content type.
func (f *FormBody) Encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("failed to build form body: %w", f.err)
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form body: %w", err)
	}
	return &f.buf, f.writer.FormDataContentType(), nil
}
