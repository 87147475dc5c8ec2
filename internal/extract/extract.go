// Package extract turns uploaded resume files into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"

	"resume-parser/internal/shared/storage/object"
)

// Supported upload formats, keyed by file extension.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatDOC  = "doc"
	FormatTXT  = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
	mimeZIP  = "application/zip"
	mimeText = "text/plain"
)

// ExtractedSuffix is appended to a storage key for the derived text copy.
const ExtractedSuffix = ".extracted.txt"

// ErrUnsupportedFormat is matched by every UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError reports a file whose extension or content type has
// no decoder.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return "unsupported format"
	}
	return "unsupported format: " + e.Format
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// SupportedFormats lists accepted upload extensions in display order.
func SupportedFormats() []string {
	return []string{FormatPDF, FormatDOCX, FormatDOC, FormatTXT}
}

// FormatFromFileName returns the lowercased extension of name when it is an
// accepted upload format.
func FormatFromFileName(name string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(name))), ".")
	switch ext {
	case FormatPDF, FormatDOCX, FormatDOC, FormatTXT:
		return ext, nil
	default:
		return "", &UnsupportedFormatError{Format: ext}
	}
}

// ExtractText pulls text from a stored object and persists a derived .extracted.txt copy.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: read: %w", fileKey, err)
	}

	text, err := DecodeText(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}

	if _, err := store.SaveWithKey(ctx, fileKey+ExtractedSuffix, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("extract text key=%s: save: %w", fileKey, err)
	}
	return text, nil
}

// DecodeText extracts text from an in-memory payload. The file extension
// decides the decoder; the content type is consulted only when the name
// carries no usable extension.
func DecodeText(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	format, err := resolveFormat(mimeType, fileName, data)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatPDF:
		return decodePDF(data)
	case FormatDOCX, FormatDOC:
		// Legacy .doc uploads go through the OOXML reader as well.
		return decodeDOCX(data)
	default:
		return decodeTXT(data), nil
	}
}

func resolveFormat(mimeType, fileName string, data []byte) (string, error) {
	if format, err := FormatFromFileName(fileName); err == nil {
		return format, nil
	} else if filepath.Ext(fileName) != "" {
		return "", err
	}

	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimePDF:
		return FormatPDF, nil
	case mimeDOCX:
		return FormatDOCX, nil
	case mimeDOC:
		return FormatDOC, nil
	case mimeText:
		return FormatTXT, nil
	case mimeZIP:
		if isWordArchive(data) {
			return FormatDOCX, nil
		}
	}
	return "", &UnsupportedFormatError{Format: clean}
}

func decodePDF(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent())
}

func decodeTXT(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	// Plain text that is not UTF-8 is almost always a Windows code page export.
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// stripDocxXML keeps character data from word/document.xml and emits a line
// break per paragraph, so section headers stay on their own lines. Malformed
// XML is an error; markup never leaks into the text.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func isWordArchive(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
