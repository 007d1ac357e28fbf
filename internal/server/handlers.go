package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vanshika/trustpath/internal/network"
	"github.com/vanshika/trustpath/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.IntroductionService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.IntroductionService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleGraph(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	g, err := h.service.Graph(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "failed to build graph", "userId", userID)
		return
	}

	resp := graphResponse{
		UserID: g.UserID,
		Nodes:  make([]network.Node, 0, g.NodeCount()),
		Edges:  make([]network.Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		resp.Nodes = append(resp.Nodes, node)
		resp.Edges = append(resp.Edges, g.Neighbors(id)...)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handlePaths(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	query := r.URL.Query()

	result, err := h.service.FindPaths(r.Context(), service.PathQuery{
		UserID:   userID,
		TargetID: query.Get("target"),
		MaxHops:  parseInt(query.Get("maxHops"), 0),
		TopK:     parseInt(query.Get("topK"), 0),
	})
	if err != nil {
		h.fail(w, r, err, "failed to find paths", "userId", userID)
		return
	}

	respondJSON(w, http.StatusOK, pathsResponse{
		UserID:           userID,
		TargetID:         result.TargetID,
		DirectConnection: result.DirectConnection,
		Paths:            toPathResponses(result.Paths),
	})
}

func (h *APIHandlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	query := r.URL.Query()

	result, err := h.service.SearchPaths(r.Context(), service.PathQuery{
		UserID:      userID,
		Description: query.Get("q"),
		MaxHops:     parseInt(query.Get("maxHops"), 0),
		TopK:        parseInt(query.Get("topK"), 0),
	})
	if err != nil {
		h.fail(w, r, err, "failed to search paths", "userId", userID)
		return
	}

	resp := searchResponse{
		UserID:        userID,
		Found:         result.Found,
		IsTeamContact: result.IsTeamContact,
		Paths:         toPathResponses(result.Paths),
	}
	if result.Found {
		target := result.Target
		resp.Target = &target
	}

	respondJSON(w, http.StatusOK, resp)
}

// fail maps service errors onto status codes. Only unexpected failures are logged.
func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), msg, append(attrs, "error", err)...)
	writeError(w, http.StatusInternalServerError, msg)
}

// --- Response DTOs ---

type graphResponse struct {
	UserID string         `json:"userId"`
	Nodes  []network.Node `json:"nodes"`
	Edges  []network.Edge `json:"edges"`
}

type pathResponse struct {
	Nodes                []network.Node `json:"nodes"`
	Edges                []network.Edge `json:"edges"`
	PathStrength         int            `json:"pathStrength"`
	Hops                 int            `json:"hops"`
	EstimatedSuccessRate float64        `json:"estimatedSuccessRate"`
}

type pathsResponse struct {
	UserID           string         `json:"userId"`
	TargetID         string         `json:"targetId"`
	DirectConnection bool           `json:"directConnection"`
	Paths            []pathResponse `json:"paths"`
}

type searchResponse struct {
	UserID        string                  `json:"userId"`
	Found         bool                    `json:"found"`
	Target        *network.ResolvedTarget `json:"target,omitempty"`
	IsTeamContact bool                    `json:"isTeamContact"`
	Paths         []pathResponse          `json:"paths"`
}

func toPathResponses(paths []network.PathResult) []pathResponse {
	out := make([]pathResponse, 0, len(paths))
	for _, p := range paths {
		out = append(out, pathResponse{
			Nodes:                p.Nodes,
			Edges:                p.Edges,
			PathStrength:         p.PathStrength,
			Hops:                 p.Hops,
			EstimatedSuccessRate: p.EstimatedSuccessRate,
		})
	}
	return out
}

// --- Helpers ---

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
