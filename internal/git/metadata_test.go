package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/internal/git"
	"stackit.dev/st/testhelpers"
)

func newMetadataStore(t *testing.T) (*testhelpers.Scene, *git.MetadataStore) {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.StackSceneSetup("branch1", "branch2"))
	repo, err := git.Open(t.Context(), scene.Dir)
	require.NoError(t, err)
	return scene, git.NewMetadataStore(repo)
}

func TestMetadataStore(t *testing.T) {
	t.Run("loads nothing from a fresh repository", func(t *testing.T) {
		_, store := newMetadataStore(t)

		links, err := store.LoadLinks(t.Context())
		require.NoError(t, err)
		require.Empty(t, links)

		meta, err := store.ReadMeta("branch1")
		require.NoError(t, err)
		require.Nil(t, meta)
	})

	t.Run("round trips a batch", func(t *testing.T) {
		scene, store := newMetadataStore(t)
		mainRev, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		want := map[string]engine.Link{
			"branch1": {Parent: "main", ParentRevision: mainRev, Seq: 1},
			"branch2": {Parent: "branch1", Seq: 2},
		}
		require.NoError(t, store.ApplyLinks(t.Context(), engine.LinkBatch{Upsert: want}))

		links, err := store.LoadLinks(t.Context())
		require.NoError(t, err)
		require.Equal(t, want, links)

		refs, err := scene.Repo.MetadataRefs()
		require.NoError(t, err)
		require.Equal(t, []string{"refs/branch-metadata/branch1", "refs/branch-metadata/branch2"}, refs)

		meta, err := store.ReadMeta("branch1")
		require.NoError(t, err)
		require.NotNil(t, meta.ParentBranchName)
		require.Equal(t, "main", *meta.ParentBranchName)
	})

	t.Run("deletes and updates in one transaction", func(t *testing.T) {
		scene, store := newMetadataStore(t)
		require.NoError(t, store.ApplyLinks(t.Context(), engine.LinkBatch{Upsert: map[string]engine.Link{
			"branch1": {Parent: "main", Seq: 1},
			"branch2": {Parent: "branch1", Seq: 2},
		}}))

		require.NoError(t, store.ApplyLinks(t.Context(), engine.LinkBatch{
			Upsert: map[string]engine.Link{"branch2": {Parent: "main", Seq: 2}},
			Delete: []string{"branch1", "never-tracked"},
		}))

		links, err := store.LoadLinks(t.Context())
		require.NoError(t, err)
		require.Equal(t, map[string]engine.Link{"branch2": {Parent: "main", Seq: 2}}, links)

		refs, err := scene.Repo.MetadataRefs()
		require.NoError(t, err)
		require.Equal(t, []string{"refs/branch-metadata/branch2"}, refs)
	})

	t.Run("reads metadata written by older versions", func(t *testing.T) {
		scene, store := newMetadataStore(t)
		blob := writeBlob(t, scene, `{"parentBranchName":"main","prInfo":{"number":3}}`)
		require.NoError(t, scene.Repo.RunGitCommand("update-ref", "refs/branch-metadata/branch1", blob))

		links, err := store.LoadLinks(t.Context())
		require.NoError(t, err)
		require.Equal(t, map[string]engine.Link{"branch1": {Parent: "main"}}, links)
	})

	t.Run("reports unparsable metadata", func(t *testing.T) {
		scene, store := newMetadataStore(t)
		blob := writeBlob(t, scene, `not json`)
		require.NoError(t, scene.Repo.RunGitCommand("update-ref", "refs/branch-metadata/branch1", blob))

		_, err := store.LoadLinks(t.Context())
		require.ErrorIs(t, err, errors.ErrCorruptMetadata)
	})

	t.Run("reports a metadata ref that is not a blob", func(t *testing.T) {
		scene, store := newMetadataStore(t)
		mainRev, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.RunGitCommand("update-ref", "refs/branch-metadata/branch1", mainRev))

		meta, err := store.ReadMeta("branch1")
		require.ErrorIs(t, err, errors.ErrCorruptMetadata)
		require.Nil(t, meta)

		meta, err = store.ReadMeta("branch2")
		require.NoError(t, err)
		require.Nil(t, meta, "a missing ref is not an error")
	})
}

func writeBlob(t *testing.T, scene *testhelpers.Scene, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	sha, err := scene.Repo.RunGitCommandAndGetOutput("hash-object", "-w", path)
	require.NoError(t, err)
	return sha
}
