package xmlparts

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

const (
	customXMLDir     = "customXml/"
	contentTypesPart = "[Content_Types].xml"
	xmlDefaultEntry  = `<Default Extension="xml" ContentType="application/xml"/>`
)

// DocxHost implements Host over an OOXML (.docx) package. Custom XML parts
// live as customXml/itemN.xml entries inside the zip container; the host
// keeps the whole package in memory and rewrites it on Save/WriteTo.
type DocxHost struct {
	mu    sync.Mutex
	files map[string][]byte
	order []string // zip entry order, preserved across rewrites
}

// NewDocxHost reads an OOXML package from r.
func NewDocxHost(r io.ReaderAt, size int64) (*DocxHost, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("xmlparts: read package: %w", err)
	}

	h := &DocxHost{files: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("xmlparts: open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("xmlparts: read part %s: %w", f.Name, err)
		}
		h.files[f.Name] = content
		h.order = append(h.order, f.Name)
	}

	if _, ok := h.files["word/document.xml"]; !ok {
		return nil, fmt.Errorf("xmlparts: not a valid DOCX file: missing word/document.xml")
	}
	return h, nil
}

// OpenDocx creates a DocxHost from a file path.
func OpenDocx(path string) (*DocxHost, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlparts: read file: %w", err)
	}
	return NewDocxHost(bytes.NewReader(content), int64(len(content)))
}

type docxPart struct {
	host      *DocxHost
	name      string
	namespace string
}

func (p *docxPart) Namespace() string { return p.namespace }

func (p *docxPart) XML(ctx context.Context) (string, error) {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	content, ok := p.host.files[p.name]
	if !ok {
		return "", errPartGone
	}
	return string(content), nil
}

func (p *docxPart) Delete(ctx context.Context) error {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	if _, ok := p.host.files[p.name]; !ok {
		return errPartGone
	}
	delete(p.host.files, p.name)
	for i, name := range p.host.order {
		if name == p.name {
			p.host.order = append(p.host.order[:i], p.host.order[i+1:]...)
			break
		}
	}
	return nil
}

func (h *DocxHost) ListParts(ctx context.Context, namespace string) ([]Part, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.files))
	for name := range h.files {
		if isCustomXMLItem(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var result []Part
	for _, name := range names {
		ns, err := rootNamespace(string(h.files[name]))
		if err != nil {
			// Malformed items are invisible to namespace lookup.
			continue
		}
		if ns == namespace {
			result = append(result, &docxPart{host: h, name: name, namespace: ns})
		}
	}
	return result, nil
}

func (h *DocxHost) AddPart(ctx context.Context, xmlText string) error {
	if _, err := rootNamespace(xmlText); err != nil {
		return fmt.Errorf("add part: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Next free customXml/itemN.xml slot.
	n := 1
	for {
		name := fmt.Sprintf("%sitem%d.xml", customXMLDir, n)
		if _, taken := h.files[name]; !taken {
			h.files[name] = []byte(xmlText)
			h.order = append(h.order, name)
			break
		}
		n++
	}

	h.ensureXMLContentType()
	return nil
}

// ensureXMLContentType registers the xml default content type so readers
// accept the added items. Callers must hold h.mu.
func (h *DocxHost) ensureXMLContentType() {
	ct, ok := h.files[contentTypesPart]
	if !ok || strings.Contains(string(ct), `Extension="xml"`) {
		return
	}
	updated := strings.Replace(string(ct), "</Types>", xmlDefaultEntry+"</Types>", 1)
	h.files[contentTypesPart] = []byte(updated)
}

// WriteTo serializes the package back to zip form.
func (h *DocxHost) WriteTo(w io.Writer) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range h.order {
		fw, err := zw.Create(name)
		if err != nil {
			return 0, fmt.Errorf("xmlparts: write part %s: %w", name, err)
		}
		if _, err := fw.Write(h.files[name]); err != nil {
			return 0, fmt.Errorf("xmlparts: write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("xmlparts: finalize package: %w", err)
	}
	return buf.WriteTo(w)
}

// Save writes the package to a file.
func (h *DocxHost) Save(path string) error {
	var buf bytes.Buffer
	if _, err := h.WriteTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func isCustomXMLItem(name string) bool {
	if !strings.HasPrefix(name, customXMLDir) {
		return false
	}
	rest := strings.TrimPrefix(name, customXMLDir)
	return strings.HasPrefix(rest, "item") && strings.HasSuffix(rest, ".xml") && !strings.Contains(rest, "/")
}
