package calculate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/stretchr/testify/require"

	"github.com/Dr-42/isogit/core"
)

// ─── Object builders ──────────────────────────────────────────────────────────

func writeBlob(t *testing.T, s storer.EncodedObjectStorer, content string) plumbing.Hash {
	t.Helper()
	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

// writeTree stores entries through go-git's encoder, which requires git's
// canonical entry order.
func writeTree(t *testing.T, s storer.EncodedObjectStorer, entries ...object.TreeEntry) plumbing.Hash {
	t.Helper()
	tree := &object.Tree{Entries: entries}
	obj := s.NewEncodedObject()
	require.NoError(t, tree.Encode(obj))
	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

// writeRawTree stores entries byte for byte in the order given, bypassing
// the canonical-order check of object.Tree.Encode.
func writeRawTree(t *testing.T, s storer.EncodedObjectStorer, entries ...object.TreeEntry) plumbing.Hash {
	t.Helper()
	obj := s.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	for _, e := range entries {
		_, err = fmt.Fprintf(w, "%o %s\x00", uint32(e.Mode), e.Name)
		require.NoError(t, err)
		_, err = w.Write(e.Hash[:])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func writeCommit(t *testing.T, s storer.EncodedObjectStorer, tree plumbing.Hash, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	sig := object.Signature{Name: "Test User", Email: "test@example.com", When: when}
	c := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      "commit at " + when.Format(time.RFC3339),
		TreeHash:     tree,
		ParentHashes: parents,
	}
	obj := s.NewEncodedObject()
	require.NoError(t, c.Encode(obj))
	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func file(name string, h plumbing.Hash) object.TreeEntry {
	return object.TreeEntry{Name: name, Mode: filemode.Regular, Hash: h}
}

func dir(name string, h plumbing.Hash) object.TreeEntry {
	return object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: h}
}

// setHead points the branch HEAD refers to at h.
func setHead(t *testing.T, repo *git.Repository, h plumbing.Hash) {
	t.Helper()
	head, err := repo.Storer.Reference(plumbing.HEAD)
	require.NoError(t, err)
	target := head.Name()
	if head.Type() == plumbing.SymbolicReference {
		target = head.Target()
	}
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(target, h)))
}

// ─── Storage fixture ──────────────────────────────────────────────────────────

func newProviders(t *testing.T, cfg core.AppConfig) *core.ProviderManager {
	t.Helper()
	if cfg.StoragePath == "" {
		cfg.StoragePath = t.TempDir()
	}
	pm, err := core.NewProviderManager(cfg, nil)
	require.NoError(t, err)
	return pm
}

func createRepo(t *testing.T, pm *core.ProviderManager, name string) *git.Repository {
	t.Helper()
	_, err := pm.Store().Create(name)
	require.NoError(t, err)
	repo, err := pm.Store().Open(name)
	require.NoError(t, err)
	return repo
}

type demoRepo struct {
	older, newer plumbing.Hash
	h1, h2       plumbing.Hash
}

// buildDemo writes two commits: README.md, then README.md plus src/main.x.
func buildDemo(t *testing.T, repo *git.Repository) demoRepo {
	t.Helper()
	s := repo.Storer
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	h1 := writeBlob(t, s, "# demo\n")
	h2 := writeBlob(t, s, "main body\n")

	olderTree := writeTree(t, s, file("README.md", h1))
	older := writeCommit(t, s, olderTree, base)

	src := writeTree(t, s, file("main.x", h2))
	newerTree := writeTree(t, s, file("README.md", h1), dir("src", src))
	newer := writeCommit(t, s, newerTree, base.Add(time.Hour), older)

	setHead(t, repo, newer)
	return demoRepo{older: older, newer: newer, h1: h1, h2: h2}
}
