// Package httpapi exposes the cooking workflows over HTTP. Each request
// runs a fresh engine with a scripted prompter built from the request
// payload, so runs never share state.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartchef/skillet/internal/runtime"
	"github.com/smartchef/skillet/pkg/adapters/scripted"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
	"github.com/smartchef/skillet/pkg/ports"
	"github.com/smartchef/skillet/pkg/recipe"
)

// Server holds the shared collaborators behind the HTTP surface.
type Server struct {
	completer ports.Completer
	favorites ports.FavoriteStore
	logger    *slog.Logger
	hooks     []domain.LifecycleHooks
	gatherer  prometheus.Gatherer
	stepOpts  []recipe.StepsOption
	version   string
}

// Option configures a Server.
type Option func(*Server)

// WithFavoriteStore attaches the durable favorites book.
func WithFavoriteStore(store ports.FavoriteStore) Option {
	return func(s *Server) {
		s.favorites = store
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers engine hooks for every request's run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = append(s.hooks, hooks)
	}
}

// WithMetricsGatherer exposes the gatherer on GET /metrics.
func WithMetricsGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithStepOptions forwards options (model, temperature) to every request's
// step set.
func WithStepOptions(opts ...recipe.StepsOption) Option {
	return func(s *Server) {
		s.stepOpts = append(s.stepOpts, opts...)
	}
}

// WithVersion sets the version string reported by GET /v1/info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates the HTTP surface over a completion service.
func NewServer(completer ports.Completer, opts ...Option) *Server {
	s := &Server{
		completer: completer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/workflow", s.handleWorkflow)
		r.Post("/recipes", s.handleCookRecipe)
		r.Post("/mealplans", s.handlePlanMeals)
		r.Get("/favorites", s.handleListFavorites)
	})
	return r
}

type cookRequest struct {
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Preferences         []string `json:"preferences"`
	Feedback            string   `json:"feedback"`
	SaveToFavorites     bool     `json:"save_to_favorites"`
	Notes               string   `json:"notes"`
}

type planRequest struct {
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Preferences         []string `json:"preferences"`
}

// handleCookRecipe runs the full recipe workflow for one request. The
// request payload is replayed to the workflow through a scripted prompter,
// so the interactive steps see the same interface the console does.
func (s *Server) handleCookRecipe(w http.ResponseWriter, r *http.Request) {
	var body cookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("cook recipe: invalid request body", "err", err)
		return
	}

	saveAnswer := "no"
	if body.SaveToFavorites {
		saveAnswer = "yes"
	}
	prompter := scripted.New(
		joinList(body.Ingredients),
		joinList(body.DietaryRestrictions),
		joinList(body.Preferences),
		body.Feedback,
		saveAnswer,
		body.Notes,
	)

	steps := s.newSteps(prompter)
	wf, err := recipe.New(steps)
	if err != nil {
		http.Error(w, "workflow assembly failed", http.StatusInternalServerError)
		s.logger.Error("cook recipe: workflow assembly failed", "err", err)
		return
	}

	final, err := s.run(r, wf)
	if err != nil {
		http.Error(w, "workflow run failed", http.StatusInternalServerError)
		s.logger.Error("cook recipe: run failed", "err", err)
		return
	}
	writeJSON(w, s.logger, final)
}

// handlePlanMeals runs the meal-planner workflow.
func (s *Server) handlePlanMeals(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("plan meals: invalid request body", "err", err)
		return
	}

	prompter := scripted.New(
		joinList(body.Ingredients),
		joinList(body.DietaryRestrictions),
		joinList(body.Preferences),
	)

	steps := s.newSteps(prompter)
	wf, err := recipe.NewPlanner(steps)
	if err != nil {
		http.Error(w, "workflow assembly failed", http.StatusInternalServerError)
		s.logger.Error("plan meals: workflow assembly failed", "err", err)
		return
	}

	final, err := s.run(r, wf)
	if err != nil {
		http.Error(w, "workflow run failed", http.StatusInternalServerError)
		s.logger.Error("plan meals: run failed", "err", err)
		return
	}
	writeJSON(w, s.logger, final)
}

type edgeDoc struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Conditional bool   `json:"conditional,omitempty"`
}

type workflowDoc struct {
	Entry string    `json:"entry"`
	Nodes []string  `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

// handleWorkflow returns the recipe workflow topology.
func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, err := recipe.New(s.newSteps(scripted.New()))
	if err != nil {
		http.Error(w, "workflow assembly failed", http.StatusInternalServerError)
		s.logger.Error("workflow: assembly failed", "err", err)
		return
	}

	doc := workflowDoc{Entry: string(wf.Entry())}
	for _, id := range wf.Nodes() {
		doc.Nodes = append(doc.Nodes, string(id))
	}
	for _, e := range wf.EdgeViews() {
		doc.Edges = append(doc.Edges, edgeDoc{
			From:        string(e.From),
			To:          string(e.To),
			Conditional: e.Conditional,
		})
	}
	writeJSON(w, s.logger, doc)
}

// handleListFavorites returns the durable favorites book, or 404 when no
// store is configured.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		http.Error(w, "no favorites store configured", http.StatusNotFound)
		return
	}
	favs, err := s.favorites.List(r.Context())
	if err != nil {
		http.Error(w, "listing favorites failed", http.StatusInternalServerError)
		s.logger.Error("favorites: list failed", "err", err)
		return
	}
	writeJSON(w, s.logger, favs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"app":     "skillet-http",
		"version": s.version,
	})
}

func (s *Server) newSteps(prompter ports.Prompter) *recipe.Steps {
	opts := []recipe.StepsOption{recipe.WithLogger(s.logger)}
	if s.favorites != nil {
		opts = append(opts, recipe.WithFavoriteStore(s.favorites))
	}
	opts = append(opts, s.stepOpts...)
	return recipe.NewSteps(s.completer, prompter, opts...)
}

func (s *Server) run(r *http.Request, wf *graph.Graph) (domain.State, error) {
	engineOpts := []runtime.Option{runtime.WithLogger(s.logger)}
	for _, h := range s.hooks {
		engineOpts = append(engineOpts, runtime.WithLifecycleHooks(h))
	}
	eng := runtime.NewEngine(wf, engineOpts...)
	return eng.Run(r.Context(), domain.State{})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
