package git

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
)

// MetadataRefPrefix is the namespace holding one metadata blob per tracked branch
const MetadataRefPrefix = "refs/branch-metadata/"

// Meta represents branch metadata stored in Git refs
type Meta struct {
	ParentBranchName     *string `json:"parentBranchName,omitempty"`
	ParentBranchRevision *string `json:"parentBranchRevision,omitempty"`
	Seq                  int64   `json:"seq,omitempty"`
}

// MetadataStore persists branch links as metadata refs
type MetadataStore struct {
	repo *Repository
}

var _ engine.LinkStorage = (*MetadataStore)(nil)

// NewMetadataStore returns a store over the metadata refs of repo
func NewMetadataStore(repo *Repository) *MetadataStore {
	return &MetadataStore{repo: repo}
}

func metadataRefName(branchName string) string {
	return MetadataRefPrefix + branchName
}

// LoadLinks reads every metadata ref. A ref without a parent is skipped.
func (s *MetadataStore) LoadLinks(_ context.Context) (map[string]engine.Link, error) {
	refs, err := s.repo.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}

	links := make(map[string]engine.Link)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, MetadataRefPrefix) {
			return nil
		}
		branchName := strings.TrimPrefix(name, MetadataRefPrefix)

		meta, err := s.readMeta(branchName, ref.Hash())
		if err != nil {
			return err
		}
		if meta.ParentBranchName == nil || *meta.ParentBranchName == "" {
			return nil
		}
		link := engine.Link{
			Parent: *meta.ParentBranchName,
			Seq:    meta.Seq,
		}
		if meta.ParentBranchRevision != nil {
			link.ParentRevision = *meta.ParentBranchRevision
		}
		links[branchName] = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ReadMeta returns the stored metadata of one branch, or nil when there is none
func (s *MetadataStore) ReadMeta(branchName string) (*Meta, error) {
	ref, err := s.repo.repo.Reference(plumbing.ReferenceName(metadataRefName(branchName)), false)
	if err == plumbing.ErrReferenceNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata ref of %s: %w", branchName, err)
	}
	return s.readMeta(branchName, ref.Hash())
}

func (s *MetadataStore) readMeta(branchName string, hash plumbing.Hash) (*Meta, error) {
	obj, err := s.repo.repo.Object(plumbing.AnyObject, hash)
	if err != nil {
		return nil, &errors.CorruptMetadataError{BranchName: branchName, Reason: err.Error()}
	}
	blob, ok := obj.(*object.Blob)
	if !ok {
		return nil, &errors.CorruptMetadataError{BranchName: branchName, Reason: "metadata ref does not point at a blob"}
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", branchName, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", branchName, err)
	}

	var meta Meta
	if err := json.Unmarshal(content, &meta); err != nil {
		return nil, &errors.CorruptMetadataError{BranchName: branchName, Reason: err.Error()}
	}
	return &meta, nil
}

// ApplyLinks writes batch as a single ref transaction; either every ref
// changes or none does.
func (s *MetadataStore) ApplyLinks(ctx context.Context, batch engine.LinkBatch) error {
	if batch.IsEmpty() {
		return nil
	}

	var script strings.Builder
	script.WriteString("start\n")

	for _, branchName := range slices.Sorted(maps.Keys(batch.Upsert)) {
		link := batch.Upsert[branchName]
		sha, err := s.writeBlob(ctx, link)
		if err != nil {
			return fmt.Errorf("failed to create metadata blob for %s: %w", branchName, err)
		}
		fmt.Fprintf(&script, "update %s %s\n", metadataRefName(branchName), sha)
	}

	for _, branchName := range batch.Delete {
		if _, ok := batch.Upsert[branchName]; ok {
			continue
		}
		refName := plumbing.ReferenceName(metadataRefName(branchName))
		if _, err := s.repo.repo.Reference(refName, false); err != nil {
			continue
		}
		fmt.Fprintf(&script, "delete %s\n", refName)
	}

	script.WriteString("commit\n")

	if _, err := s.repo.runner.RunWithInput(ctx, script.String(), "update-ref", "--stdin"); err != nil {
		return fmt.Errorf("failed to write metadata refs: %w", err)
	}
	return nil
}

func (s *MetadataStore) writeBlob(ctx context.Context, link engine.Link) (string, error) {
	meta := Meta{
		ParentBranchName: &link.Parent,
		Seq:              link.Seq,
	}
	if link.ParentRevision != "" {
		meta.ParentBranchRevision = &link.ParentRevision
	}
	jsonData, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return s.repo.runner.RunWithInput(ctx, string(jsonData), "hash-object", "-w", "--stdin")
}
