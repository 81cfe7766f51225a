package calculate

import (
	"fmt"
	"log/slog"

	"github.com/Dr-42/isogit/core"
)

// AddRepoResult reports what AddRepo changed.
type AddRepoResult struct {
	Created    bool // a new bare repository was initialised on disk
	Registered bool // a new registry entry was written
}

// InitService creates repositories and records their metadata.
type InitService struct {
	providers Providers
	log       *slog.Logger
}

func NewInitService(providers Providers, log *slog.Logger) *InitService {
	if log == nil {
		log = slog.Default()
	}
	return &InitService{providers: providers, log: log}
}

// AddRepo initialises a bare repository for details.Name if none exists and
// then registers the details. Both steps are idempotent.
func (s *InitService) AddRepo(details core.RepoDetails) (AddRepoResult, error) {
	if err := core.ValidateRepoName(details.Name); err != nil {
		return AddRepoResult{}, err
	}
	s.log.Info("adding repository", "repository", details.Name)

	created, err := s.providers.Store().Create(details.Name)
	if err != nil {
		s.log.Error("repository creation failed", "repository", details.Name, "error", err)
		return AddRepoResult{}, fmt.Errorf("unable to create repository: %w", err)
	}

	registered, err := s.providers.Registry().Add(details)
	if err != nil {
		s.log.Error("registry write failed", "repository", details.Name, "error", err)
		return AddRepoResult{Created: created}, fmt.Errorf("unable to write repo details: %w", err)
	}

	s.log.Info("repository ready", "repository", details.Name, "created", created, "registered", registered)
	return AddRepoResult{Created: created, Registered: registered}, nil
}

// ListRepos returns the metadata registry contents.
func (s *InitService) ListRepos() ([]core.RepoDetails, error) {
	repos, err := s.providers.Registry().List()
	if err != nil {
		return nil, fmt.Errorf("unable to read repo details: %w", err)
	}
	return repos, nil
}
