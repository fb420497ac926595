package maven

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"
)

// Manifest pairs a parsed POM document with the repository-relative
// path it was loaded from. The path labels violations in multi-module
// audits.
type Manifest struct {
	Path string
	Doc  *etree.Document
}

// Root returns the manifest's project element, or nil for an empty
// document.
func (m *Manifest) Root() *etree.Element {
	if m == nil || m.Doc == nil {
		return nil
	}
	return m.Doc.Root()
}

// Parse builds an element tree from raw POM bytes.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing POM: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing POM: document has no root element")
	}
	return doc, nil
}

// Load reads and parses the POM at path.
func Load(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading POM %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("reading POM %s: document has no root element", path)
	}
	return doc, nil
}

// ProjectField returns the trimmed text of a top-level project child
// such as "name", "description", or "version". Missing fields yield "".
func ProjectField(doc *etree.Document, tag string) string {
	root := doc.Root()
	if root == nil {
		return ""
	}
	return childText(root, tag)
}

// LoadAll parses every listed POM, reading each path relative to dir.
// Loads run concurrently but the result keeps the order of paths. The
// first failure cancels outstanding work and is returned.
func LoadAll(ctx context.Context, dir string, paths []string) ([]*Manifest, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	manifests := make([]*Manifest, len(paths))
	for i, rel := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := Load(filepath.Join(dir, rel))
			if err != nil {
				return err
			}
			manifests[i] = &Manifest{Path: rel, Doc: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return manifests, nil
}
