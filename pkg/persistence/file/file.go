// Package file provides file-based persistence for procedure
// definitions, the variable catalog, statuses, and cases. Each
// document is one JSON file under <root>/<collection>/<id>.json.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root         string
	workflowRepo *WorkflowRepository
	variableRepo *VariableRepository
	statusRepo   *StatusRepository
	caseRepo     *CaseRepository
}

// NewPersistence creates a file persistence rooted at the given
// directory. A "file://" prefix on the root is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		workflowRepo: &WorkflowRepository{store: docStore{root: cleanRoot, collection: "workflows"}},
		variableRepo: &VariableRepository{store: docStore{root: cleanRoot, collection: "variables"}},
		statusRepo:   &StatusRepository{store: docStore{root: cleanRoot, collection: "statuses"}},
		caseRepo:     &CaseRepository{store: docStore{root: cleanRoot, collection: "cases"}},
	}
}

// Close performs any necessary cleanup. There is nothing to release
// for file persistence.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return fp.workflowRepo
}

func (fp *Persistence) VariableRepository() persistence.VariableRepository {
	return fp.variableRepo
}

func (fp *Persistence) StatusRepository() persistence.StatusRepository {
	return fp.statusRepo
}

func (fp *Persistence) CaseRepository() persistence.CaseRepository {
	return fp.caseRepo
}

// docStore reads and writes raw JSON documents of one collection.
type docStore struct {
	root       string
	collection string
}

func (s docStore) dir() string {
	return path.Join(s.root, s.collection)
}

// get unmarshals the document with the given id into out. Missing
// documents report found=false with no error.
func (s docStore) get(id string, out any) (bool, error) {
	filePath := filepath.Clean(path.Join(s.dir(), id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read %s %s: %w", s.collection, id, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s %s: %w", s.collection, id, err)
	}

	return true, nil
}

func (s docStore) put(id string, doc any) error {
	if err := os.MkdirAll(s.dir(), 0750); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", s.collection, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", s.collection, id, err)
	}

	return os.WriteFile(path.Join(s.dir(), id+".json"), data, 0600)
}

// delete removes a document. Deleting a missing document is a no-op.
func (s docStore) delete(id string) error {
	err := os.Remove(path.Join(s.dir(), id+".json"))
	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", s.collection, id, err)
	}

	return nil
}

// ids lists every document id of the collection.
func (s docStore) ids() ([]string, error) {
	root := os.DirFS(s.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", s.collection, err)
	}

	ids := make([]string, 0, len(jsonFiles))
	for _, file := range jsonFiles {
		ids = append(ids, strings.TrimSuffix(file, ".json"))
	}

	return ids, nil
}
