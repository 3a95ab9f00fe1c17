package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streamfit/streamfit/internal/application"
	"github.com/streamfit/streamfit/internal/domain/ai"
	"github.com/streamfit/streamfit/internal/domain/analysis"
	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/scoring"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// State tracks the stages of one evaluation request.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching_data"
	StateAnalyzing State = "analyzing"
	StateDone      State = "done"
	StateError     State = "error"
)

// Source reports how the streamer was resolved.
type Source string

const (
	SourceAnalysisCache Source = "analysis_cache"
	SourceDataCache     Source = "data_cache"
	SourceFresh         Source = "fresh"
)

// Result is the outcome of one evaluation.
type Result struct {
	State    State              `json:"state"`
	Source   Source             `json:"source"`
	Streamer *streamer.Streamer `json:"streamer"`
}

// Service implements the evaluation use cases. Safe for concurrent use;
// all state lives in the injected ports.
type Service struct {
	Streamers streamer.Repository
	Analyses  analysis.Repository
	Entries   analysis.HistoryRepository
	Saver     analysis.Saver
	Companies company.Repository
	Provider  streamer.Provider
	Archive   streamer.Archive
	AI        ai.Client
	Clock     application.Clock
	Logger    *zap.Logger
}

// maxCandidates limits one batch candidate analysis.
const maxCandidates = 3

// Evaluate resolves a username through the cache hierarchy and produces a
// scored, persisted evaluation. Resolution order: per-user analysis cache,
// global streamer cache, fresh provider fetch. The gateway is only
// consulted when no per-user analysis exists.
func (s *Service) Evaluate(ctx context.Context, userID, input string) (*Result, error) {
	login, err := streamer.ParseLogin(input)
	if err != nil {
		return nil, err
	}
	log := s.Logger.With(zap.String("user", userID), zap.String("login", string(login)))
	log.Info("evaluation started", zap.String("state", string(StateFetching)))

	cachedAnalysis, err := s.Analyses.Get(ctx, userID, login)
	if err != nil && !errors.Is(err, analysis.ErrNotFound) {
		return nil, err
	}
	raw, err := s.Streamers.Get(ctx, login)
	if err != nil && !errors.Is(err, streamer.ErrNotFound) {
		return nil, err
	}

	if cachedAnalysis != nil && raw != nil {
		st := streamer.FromRaw(raw)
		cachedAnalysis.Apply(st)
		// Stale reach scores are never trusted.
		st.AIScore = scoring.ReachScore(st)
		if err := s.persist(ctx, userID, login, st, nil); err != nil {
			return nil, err
		}
		log.Info("evaluation served from analysis cache", zap.String("state", string(StateDone)))
		return &Result{State: StateDone, Source: SourceAnalysisCache, Streamer: st}, nil
	}

	source := SourceDataCache
	var fetched *streamer.RawRecord
	if raw == nil {
		source = SourceFresh
		raw, err = s.fetchAndArchive(ctx, login)
		if err != nil {
			return nil, err
		}
		fetched = raw
	}

	log.Info("analyzing streamer", zap.String("state", string(StateAnalyzing)), zap.String("source", string(source)))
	st, err := s.AI.AnalyzeStreamer(ctx, raw)
	if err != nil {
		return nil, err
	}

	if err := s.analyzeBrandFit(ctx, userID, st); err != nil {
		return nil, err
	}
	st.AIScore = scoring.ReachScore(st)

	if err := s.persist(ctx, userID, login, st, fetched); err != nil {
		return nil, err
	}
	log.Info("evaluation finished", zap.String("state", string(StateDone)))
	return &Result{State: StateDone, Source: source, Streamer: st}, nil
}

// Recompute re-runs the analysis phase for an already-resolved streamer.
// Always an explicit user action, so the gateway is consulted again when a
// company profile exists.
func (s *Service) Recompute(ctx context.Context, userID string, login streamer.Login) (*Result, error) {
	raw, err := s.Streamers.Get(ctx, login)
	if err != nil {
		return nil, err
	}

	st, err := s.AI.AnalyzeStreamer(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := s.analyzeBrandFit(ctx, userID, st); err != nil {
		return nil, err
	}
	st.AIScore = scoring.ReachScore(st)

	if err := s.persist(ctx, userID, login, st, nil); err != nil {
		return nil, err
	}
	return &Result{State: StateDone, Source: SourceDataCache, Streamer: st}, nil
}

// List returns the user's evaluated streamers sorted by the given key.
// With refresh set, every score and narrative is recomputed locally (no
// gateway calls) and the refreshed analyses are committed in one
// transaction before sorting.
func (s *Service) List(ctx context.Context, userID string, key streamer.SortKey, refresh bool) ([]*streamer.Streamer, error) {
	records, err := s.Analyses.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var profile *company.Profile
	if refresh {
		profile, err = s.companyProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	now := s.Clock.Now()
	var list []*streamer.Streamer
	var updated []*analysis.Analysis
	for _, rec := range records {
		raw, err := s.Streamers.Get(ctx, rec.Login)
		if errors.Is(err, streamer.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		st := streamer.FromRaw(raw)
		rec.Apply(st)

		if refresh {
			st.AIScore = scoring.ReachScore(st)
			st.RelevanceScore = scoring.ToUnit(scoring.RelevanceScore(st, profile))
			n := scoring.BuildNarrative(st, profile)
			st.AISummary = n.AISummary
			st.AIRecommendation = n.AIRecommendation
			updated = append(updated, &analysis.Analysis{
				UserID:           userID,
				Login:            rec.Login,
				AIScore:          st.AIScore,
				RelevanceScore:   st.RelevanceScore,
				AISummary:        st.AISummary,
				AIRecommendation: st.AIRecommendation,
				UpdatedAt:        now,
			})
		}
		list = append(list, st)
	}

	if len(updated) > 0 {
		if err := s.Saver.SaveAnalyses(ctx, updated); err != nil {
			return nil, err
		}
	}

	streamer.Sort(list, key)
	return list, nil
}

// History returns the user's denormalized evaluation snapshots.
func (s *Service) History(ctx context.Context, userID string) ([]*analysis.HistoryEntry, error) {
	return s.Entries.List(ctx, userID)
}

// BrandFit runs a one-off gateway brand-fit analysis of the given streamer.
// A profile supplied by the caller wins over the user's saved one.
func (s *Service) BrandFit(ctx context.Context, userID string, st *streamer.Streamer, profile *company.Profile) (*ai.BrandFit, error) {
	if profile == nil {
		var err error
		profile, err = s.companyProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	if profile == nil {
		return nil, company.ErrNotFound
	}
	profile.Normalize()
	return s.AI.AnalyzeBrandFit(ctx, st, profile)
}

// Analyze runs a one-off gateway analysis over a raw provider record
// without touching any cache.
func (s *Service) Analyze(ctx context.Context, raw *streamer.RawRecord) (*streamer.Streamer, error) {
	return s.AI.AnalyzeStreamer(ctx, raw)
}

// Search asks the provider for discovery candidates seeded by the user's
// evaluation history.
func (s *Service) Search(ctx context.Context, userID string) ([]streamer.Candidate, error) {
	return s.Provider.SearchCandidates(ctx, userID)
}

// AnalyzeCandidates forwards up to three discovery candidates to the
// gateway for batch analysis.
func (s *Service) AnalyzeCandidates(ctx context.Context, candidates []streamer.Candidate) ([]ai.CandidateAnalysis, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates given")
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return s.AI.AnalyzeCandidates(ctx, candidates)
}

// analyzeBrandFit fills the relevance/narrative fields: via the gateway
// when the user has a company profile, locally otherwise.
func (s *Service) analyzeBrandFit(ctx context.Context, userID string, st *streamer.Streamer) error {
	profile, err := s.companyProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile != nil {
		bf, err := s.AI.AnalyzeBrandFit(ctx, st, profile)
		if err != nil {
			return err
		}
		st.RelevanceScore = bf.RelevanceScore
		st.AISummary = bf.AISummary
		st.AIRecommendation = bf.AIRecommendation
		return nil
	}

	st.RelevanceScore = scoring.ToUnit(scoring.RelevanceScore(st, nil))
	n := scoring.BuildNarrative(st, nil)
	st.AISummary = n.AISummary
	st.AIRecommendation = n.AIRecommendation
	return nil
}

func (s *Service) companyProfile(ctx context.Context, userID string) (*company.Profile, error) {
	profile, err := s.Companies.Get(ctx, userID)
	if errors.Is(err, company.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) fetchAndArchive(ctx context.Context, login streamer.Login) (*streamer.RawRecord, error) {
	raw, err := s.Provider.FetchStreamer(ctx, login)
	if err != nil {
		return nil, err
	}
	raw.Normalize()
	raw.FetchedAt = s.Clock.Now()

	if s.Archive != nil {
		url, err := s.archivePayload(ctx, raw)
		if err != nil {
			// Archival is best effort; the evaluation proceeds.
			s.Logger.Warn("raw payload archive failed", zap.String("login", string(login)), zap.Error(err))
		} else {
			raw.ArchiveURL = url
		}
	}
	return raw, nil
}

func (s *Service) archivePayload(ctx context.Context, raw *streamer.RawRecord) (string, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("marshaling raw payload: %w", err)
	}
	key := fmt.Sprintf("twitch/%s/%d.json", raw.Login, raw.FetchedAt.Unix())
	return s.Archive.StorePayload(ctx, key, payload)
}

func (s *Service) persist(ctx context.Context, userID string, login streamer.Login, st *streamer.Streamer, fetched *streamer.RawRecord) error {
	rec := &analysis.Analysis{
		UserID:           userID,
		Login:            login,
		AIScore:          st.AIScore,
		RelevanceScore:   st.RelevanceScore,
		AISummary:        st.AISummary,
		AIRecommendation: st.AIRecommendation,
		UpdatedAt:        s.Clock.Now(),
	}
	entry := analysis.Snapshot(uuid.New().String(), rec, st)
	return s.Saver.SaveEvaluation(ctx, rec, entry, fetched)
}
