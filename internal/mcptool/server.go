package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoring"
)

// Server exposes scoring as MCP tools over plain HTTP POST.
type Server struct {
	scoring    *scoring.Service
	models     *scoremodel.Service
	httpServer *http.Server
	tools      map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)
}

func NewServer(scoringService *scoring.Service, modelService *scoremodel.Service, addr string) *Server {
	s := &Server{
		scoring: scoringService,
		models:  modelService,
	}
	s.tools = map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error){
		"score_food":  s.handleScoreFood,
		"list_models": s.handleListModels,
		"get_model":   s.handleGetModel,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHTTP)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Call dispatches one tool request.
func (s *Server) Call(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	h, ok := s.tools[req.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}
	return h(req)
}

func (s *Server) handleHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.Call(&request)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("[MCP] failed to encode response: %v", err)
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.Printf("[MCP] scoring tools listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
