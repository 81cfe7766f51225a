package core

// RepoDetails is one entry of the repository metadata registry.
type RepoDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FileDetails is a file present at a commit, flattened from the nested tree.
type FileDetails struct {
	Name      string `json:"name"`      // slash-joined path from the root tree
	ContentID string `json:"contentId"` // hash of the terminal blob
}

// CommitListing pairs a commit with every file reachable from its root tree.
type CommitListing struct {
	CommitID string        `json:"commitId"`
	Files    []FileDetails `json:"files"`
}
