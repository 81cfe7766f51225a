package calculate

import (
	"context"
	"fmt"

	"github.com/Dr-42/isogit/core"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TreeResolver loads tree objects by hash. *git.Repository satisfies it.
type TreeResolver interface {
	TreeObject(h plumbing.Hash) (*object.Tree, error)
}

// treeFrame is one pending tree on the work stack.
type treeFrame struct {
	tree   *object.Tree
	prefix string
	next   int // index of the next entry to visit
	depth  int
}

// ctxCheckInterval is how many entries are visited between context checks.
const ctxCheckInterval = 256

// FlattenOptions bounds a single flattening run.
type FlattenOptions struct {
	MaxDepth int // 0 means unlimited
}

// FlattenTree lists every non-directory entry reachable from tree, depth-first
// in pre-order, with paths joined by "/" onto prefix. Entries are visited in
// the order the store holds them. Directories only contribute to paths.
// ctx is checked before each subtree is loaded and periodically between
// entries.
func FlattenTree(ctx context.Context, resolver TreeResolver, tree *object.Tree, prefix string, opts FlattenOptions) ([]core.FileDetails, error) {
	files := []core.FileDetails{}
	if tree == nil {
		return files, nil
	}

	stack := []*treeFrame{{tree: tree, prefix: prefix}}
	visited := 0
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.tree.Entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.tree.Entries[top.next]
		top.next++

		path := joinPath(top.prefix, entry.Name)
		visited++
		if visited%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &core.TraversalError{Object: entry.Hash.String(), Path: path, Err: err}
			}
		}

		if entry.Mode != filemode.Dir {
			files = append(files, core.FileDetails{Name: path, ContentID: entry.Hash.String()})
			continue
		}

		if opts.MaxDepth > 0 && top.depth+1 > opts.MaxDepth {
			return nil, &core.TraversalError{
				Object: entry.Hash.String(),
				Path:   path,
				Err:    fmt.Errorf("tree nesting exceeds %d levels", opts.MaxDepth),
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, &core.TraversalError{Object: entry.Hash.String(), Path: path, Err: err}
		}
		sub, err := resolver.TreeObject(entry.Hash)
		if err != nil {
			return nil, &core.TraversalError{Object: entry.Hash.String(), Path: path, Err: err}
		}
		stack = append(stack, &treeFrame{tree: sub, prefix: path, depth: top.depth + 1})
	}
	return files, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
