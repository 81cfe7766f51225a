package api

// AddRepoRequest is the body of POST /internal/addrepo.
type AddRepoRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateStoragePathRequest is the body of POST /internal/config/storage.
type UpdateStoragePathRequest struct {
	Path string `json:"path" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
