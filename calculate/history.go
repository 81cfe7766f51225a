package calculate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dr-42/isogit/core"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Dr-42/isogit/calculate"

// Providers is the subset of core.ProviderManager the services depend on.
type Providers interface {
	Registry() core.Registry
	Store() core.RepositoryStore
	Config() core.AppConfig
	Snapshot() (core.RepositoryStore, core.AppConfig)
}

// HistoryService lists the files present at every commit of a repository.
type HistoryService struct {
	providers Providers
	log       *slog.Logger
	tracer    trace.Tracer

	commitsWalked metric.Int64Counter
	filesListed   metric.Int64Counter
}

func NewHistoryService(providers Providers, log *slog.Logger) *HistoryService {
	if log == nil {
		log = slog.Default()
	}
	meter := otel.Meter(instrumentationName)
	commits, err := meter.Int64Counter("isogit.commits.walked",
		metric.WithDescription("Commits visited while listing repository history"))
	if err != nil {
		log.Warn("commit counter unavailable", "error", err)
		commits = noop.Int64Counter{}
	}
	files, err := meter.Int64Counter("isogit.files.listed",
		metric.WithDescription("Flattened file entries returned in commit listings"))
	if err != nil {
		log.Warn("file counter unavailable", "error", err)
		files = noop.Int64Counter{}
	}
	return &HistoryService{
		providers:     providers,
		log:           log,
		tracer:        otel.Tracer(instrumentationName),
		commitsWalked: commits,
		filesListed:   files,
	}
}

// ListCommitFiles returns one listing per commit reachable from HEAD, newest
// first. A repository without a resolvable HEAD yields an empty slice. Any
// failure while walking discards everything gathered so far.
func (s *HistoryService) ListCommitFiles(ctx context.Context, name string) ([]core.CommitListing, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryService.ListCommitFiles",
		trace.WithAttributes(attribute.String("isogit.repository", name)))
	defer span.End()

	listings, err := s.listCommitFiles(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing failed")
		return nil, err
	}

	total := 0
	for _, l := range listings {
		total += len(l.Files)
	}
	attrs := metric.WithAttributes(attribute.String("isogit.repository", name))
	s.commitsWalked.Add(ctx, int64(len(listings)), attrs)
	s.filesListed.Add(ctx, int64(total), attrs)
	span.SetAttributes(attribute.Int("isogit.commits", len(listings)))
	return listings, nil
}

func (s *HistoryService) listCommitFiles(ctx context.Context, name string) ([]core.CommitListing, error) {
	if err := core.ValidateRepoName(name); err != nil {
		return nil, err
	}
	store, cfg := s.providers.Snapshot()

	repo, err := store.Open(name)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			s.log.Debug("repository has no commits", "repository", name)
			return []core.CommitListing{}, nil
		}
		return nil, &core.TraversalError{Object: "HEAD", Err: err}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, &core.TraversalError{Object: head.Hash().String(), Err: err}
	}
	defer iter.Close()

	listings := []core.CommitListing{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return &core.TraversalError{Object: c.Hash.String(), Err: err}
		}
		if cfg.MaxCommits > 0 && len(listings) >= cfg.MaxCommits {
			return &core.TraversalError{
				Object: c.Hash.String(),
				Err:    fmt.Errorf("history exceeds %d commits", cfg.MaxCommits),
			}
		}

		tree, err := c.Tree()
		if err != nil {
			return &core.TraversalError{Object: c.Hash.String(), Err: err}
		}
		files, err := FlattenTree(ctx, repo, tree, "", FlattenOptions{MaxDepth: cfg.MaxTreeDepth})
		if err != nil {
			return err
		}
		listings = append(listings, core.CommitListing{CommitID: c.Hash.String(), Files: files})
		return nil
	})
	if err != nil {
		var traversal *core.TraversalError
		if !errors.As(err, &traversal) {
			// parent resolution failures surface from the iterator itself
			err = &core.TraversalError{Object: head.Hash().String(), Err: err}
		}
		return nil, err
	}
	return listings, nil
}
