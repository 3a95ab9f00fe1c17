package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	appeval "github.com/streamfit/streamfit/internal/application/evaluation"
	appmaint "github.com/streamfit/streamfit/internal/application/maintenance"
	appprofile "github.com/streamfit/streamfit/internal/application/profile"
	domai "github.com/streamfit/streamfit/internal/domain/ai"
	domanalysis "github.com/streamfit/streamfit/internal/domain/analysis"
	domcompany "github.com/streamfit/streamfit/internal/domain/company"
	domstreamer "github.com/streamfit/streamfit/internal/domain/streamer"
	"github.com/streamfit/streamfit/internal/middleware"
)

type Router struct {
	evalSvc    *appeval.Service
	profileSvc *appprofile.Service
	maintSvc   *appmaint.Service
}

func NewRouter(evalSvc *appeval.Service, profileSvc *appprofile.Service, maintSvc *appmaint.Service) http.Handler {
	r := &Router{evalSvc: evalSvc, profileSvc: profileSvc, maintSvc: maintSvc}
	mux := chi.NewRouter()

	mux.Get("/v1/twitch/data", r.wrap(r.handleTwitchData))

	mux.Route("/v1/{user}", func(rt chi.Router) {
		rt.Post("/evaluate", r.wrap(r.handleEvaluate))
		rt.Get("/streamers", r.wrap(r.handleList))
		rt.Post("/streamers/{login}/recompute", r.wrap(r.handleRecompute))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/company-profile", r.wrap(r.handleGetProfile))
		rt.Put("/company-profile", r.wrap(r.handleSaveProfile))
		rt.Get("/search", r.wrap(r.handleSearch))
		rt.Post("/ai/brand-fit", r.wrap(r.handleBrandFit))
		rt.Post("/ai/streamer", r.wrap(r.handleAnalyzeStreamer))
		rt.Post("/ai/streamers", r.wrap(r.handleAnalyzeCandidates))
	})

	mux.Post("/v1/admin/migrate/{name}", r.wrap(r.handleMigrate))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks an error as a client mistake.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

// errScopeMismatch rejects requests whose API key is bound to a different
// user than the one addressed by the URL.
var errScopeMismatch = errors.New("api key not valid for this user")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequest
			switch {
			case errors.As(err, &br),
				errors.Is(err, domstreamer.ErrInvalidUsername),
				errors.Is(err, appmaint.ErrUnknownMigration):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domstreamer.ErrNotFound),
				errors.Is(err, domanalysis.ErrNotFound),
				errors.Is(err, domcompany.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, errScopeMismatch):
				http.Error(w, err.Error(), http.StatusForbidden)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func userParam(req *http.Request) (string, error) {
	user := chi.URLParam(req, "user")
	if err := middleware.ValidateUserID(user); err != nil {
		return "", badRequest{err}
	}
	// Keys are scoped to one user; an unauthenticated context (no key
	// middleware installed) carries no binding to enforce.
	if bound := middleware.GetUserFromContext(req.Context()); bound != "" && bound != user {
		return "", errScopeMismatch
	}
	return user, nil
}

// POST /v1/{user}/evaluate
// Body: {"username": "<login or twitch.tv URL>"}
func (r *Router) handleEvaluate(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	if body.Username == "" {
		return badRequest{fmt.Errorf("username is required")}
	}

	middleware.IncrementEvaluations()
	result, err := r.evalSvc.Evaluate(req.Context(), user, body.Username)
	if err != nil {
		return err
	}
	if result.Source == appeval.SourceAnalysisCache {
		middleware.IncrementEvaluationsCached()
	}
	return writeJSON(w, result)
}

// GET /v1/{user}/streamers?sort=relevance&refresh=true
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	key := domstreamer.ParseSortKey(req.URL.Query().Get("sort"))
	refresh := req.URL.Query().Get("refresh") == "true"

	list, err := r.evalSvc.List(req.Context(), user, key, refresh)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domstreamer.Streamer{}
	}
	return writeJSON(w, list)
}

// POST /v1/{user}/streamers/{login}/recompute
func (r *Router) handleRecompute(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	login, err := domstreamer.ParseLogin(chi.URLParam(req, "login"))
	if err != nil {
		return err
	}

	result, err := r.evalSvc.Recompute(req.Context(), user, login)
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// GET /v1/{user}/history
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	entries, err := r.evalSvc.History(req.Context(), user)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domanalysis.HistoryEntry{}
	}
	return writeJSON(w, entries)
}

// GET /v1/{user}/company-profile
func (r *Router) handleGetProfile(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	p, err := r.profileSvc.Get(req.Context(), user)
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

// PUT /v1/{user}/company-profile
func (r *Router) handleSaveProfile(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	var p domcompany.Profile
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		return badRequest{err}
	}
	if err := r.profileSvc.Save(req.Context(), user, &p); err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"status": "saved"})
}

// GET /v1/{user}/search
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	candidates, err := r.evalSvc.Search(req.Context(), user)
	if err != nil {
		return err
	}
	if candidates == nil {
		candidates = []domstreamer.Candidate{}
	}
	return writeJSON(w, candidates)
}

// POST /v1/{user}/ai/brand-fit
// Body: {"streamer": {...}, "company": {...}}; company is optional and
// falls back to the user's saved profile.
func (r *Router) handleBrandFit(w http.ResponseWriter, req *http.Request) error {
	user, err := userParam(req)
	if err != nil {
		return err
	}
	var body struct {
		Streamer *domstreamer.Streamer `json:"streamer"`
		Company  *domcompany.Profile   `json:"company"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	if body.Streamer == nil || body.Streamer.ID == "" {
		return badRequest{fmt.Errorf("streamer is required")}
	}
	body.Streamer.Normalize()

	middleware.IncrementGatewayCalls()
	bf, err := r.evalSvc.BrandFit(req.Context(), user, body.Streamer, body.Company)
	if err != nil {
		middleware.IncrementGatewayFailed()
		return err
	}
	return writeJSON(w, bf)
}

// POST /v1/{user}/ai/streamer
// Body: a raw provider record to analyze without caching.
func (r *Router) handleAnalyzeStreamer(w http.ResponseWriter, req *http.Request) error {
	if _, err := userParam(req); err != nil {
		return err
	}
	var raw domstreamer.RawRecord
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		return badRequest{err}
	}
	if raw.Login == "" {
		return badRequest{fmt.Errorf("login is required")}
	}
	raw.Normalize()

	middleware.IncrementGatewayCalls()
	st, err := r.evalSvc.Analyze(req.Context(), &raw)
	if err != nil {
		middleware.IncrementGatewayFailed()
		return err
	}
	return writeJSON(w, st)
}

// POST /v1/{user}/ai/streamers
// Body: {"streamers": [{"username": "...", "probability": 0.8}, ...]}
func (r *Router) handleAnalyzeCandidates(w http.ResponseWriter, req *http.Request) error {
	if _, err := userParam(req); err != nil {
		return err
	}
	var body struct {
		Streamers []domstreamer.Candidate `json:"streamers"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	if len(body.Streamers) == 0 {
		return badRequest{fmt.Errorf("streamers are required")}
	}

	middleware.IncrementGatewayCalls()
	analyses, err := r.evalSvc.AnalyzeCandidates(req.Context(), body.Streamers)
	if err != nil {
		middleware.IncrementGatewayFailed()
		return err
	}
	return writeJSON(w, map[string]any{"analyses": analyses})
}

// GET /v1/twitch/data?username=<login>
func (r *Router) handleTwitchData(w http.ResponseWriter, req *http.Request) error {
	username := req.URL.Query().Get("username")
	if username == "" {
		return badRequest{fmt.Errorf("username parameter is required")}
	}
	login, err := domstreamer.ParseLogin(username)
	if err != nil {
		return err
	}

	raw, err := r.evalSvc.Provider.FetchStreamer(req.Context(), login)
	if err != nil {
		return err
	}
	return writeJSON(w, raw)
}

// POST /v1/admin/migrate/{name}
func (r *Router) handleMigrate(w http.ResponseWriter, req *http.Request) error {
	name := chi.URLParam(req, "name")
	updated, err := r.maintSvc.Run(req.Context(), name)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"migration": name, "updated": updated})
}
