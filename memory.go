package xmlparts

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var errPartGone = errors.New("part no longer exists in document")

// MemoryHost implements Host with thread-safe in-memory part storage.
// It is the default backend and doubles as a test stand-in for a real
// document host.
type MemoryHost struct {
	mu    sync.Mutex
	seq   int
	parts []*memPart
}

// NewMemoryHost creates an in-memory Host instance.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{}
}

type memPart struct {
	host      *MemoryHost
	id        int
	namespace string
	xml       string
}

func (p *memPart) Namespace() string { return p.namespace }

func (p *memPart) XML(ctx context.Context) (string, error) {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	for _, q := range p.host.parts {
		if q.id == p.id {
			return q.xml, nil
		}
	}
	return "", errPartGone
}

func (p *memPart) Delete(ctx context.Context) error {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	for i, q := range p.host.parts {
		if q.id == p.id {
			p.host.parts = append(p.host.parts[:i], p.host.parts[i+1:]...)
			return nil
		}
	}
	return errPartGone
}

func (h *MemoryHost) ListParts(ctx context.Context, namespace string) ([]Part, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var result []Part
	for _, p := range h.parts {
		if p.namespace == namespace {
			result = append(result, p)
		}
	}
	return result, nil
}

func (h *MemoryHost) AddPart(ctx context.Context, xmlText string) error {
	namespace, err := rootNamespace(xmlText)
	if err != nil {
		return fmt.Errorf("add part: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.parts = append(h.parts, &memPart{
		host:      h,
		id:        h.seq,
		namespace: namespace,
		xml:       xmlText,
	})
	return nil
}

// Len returns the total number of parts in the document, across all
// namespaces.
func (h *MemoryHost) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.parts)
}

// rootNamespace extracts the default xmlns of the document's root element.
// A document without an xmlns declaration yields the empty namespace.
func rootNamespace(xmlText string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", errors.New("no root element")
		}
		if err != nil {
			return "", err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "xmlns" && attr.Name.Space == "" {
				return attr.Value, nil
			}
		}
		return "", nil
	}
}
