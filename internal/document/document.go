package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"draftboard/pkg/geometry"
)

// FileVersion is the current project file format version.
const FileVersion = 1

// DefaultPageSize is used for new documents (A4 at 72 dpi, portrait).
var DefaultPageSize = geometry.NewSize(595, 842)

// Document is a draftboard project: metadata plus one or more pages.
// The canvas engine only ever works with the active page.
type Document struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Pages    []*Page   `json:"pages"`
}

// New creates a document with a single empty page.
func New(name string) *Document {
	now := time.Now()
	return &Document{
		Version:  FileVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Pages:    []*Page{NewPage(DefaultPageSize)},
	}
}

// ActivePage returns the page the canvas operates on. Multi-page
// navigation is not supported; the first page is the active one.
func (d *Document) ActivePage() *Page {
	if len(d.Pages) == 0 {
		d.Pages = append(d.Pages, NewPage(DefaultPageSize))
	}
	return d.Pages[0]
}

// Touch updates the modified timestamp.
func (d *Document) Touch() {
	d.Modified = time.Now()
}

// Save writes the document as indented JSON to path.
func (d *Document) Save(path string) error {
	d.Touch()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Load reads a document from a JSON project file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if d.Version > FileVersion {
		return nil, fmt.Errorf("unsupported document version %d", d.Version)
	}
	return &d, nil
}
