package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ivy-crm-be/internal/dto"
	"ivy-crm-be/internal/pkg/logger"
	"ivy-crm-be/internal/pkg/serverutils"
	"ivy-crm-be/internal/repository/memory"
	"ivy-crm-be/pkg/ai/router"
	"ivy-crm-be/pkg/command"
	"ivy-crm-be/pkg/insight"
	"ivy-crm-be/pkg/resolver"
	"ivy-crm-be/pkg/retrieval"
	"ivy-crm-be/pkg/store"
)

type IAssistantService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	Query(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error)
	Suggestions(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error)
	Insight(ctx context.Context, req *dto.InsightRequest) (*dto.InsightResponse, error)
	Commands(req *dto.CommandsRequest) (*dto.CommandsResponse, error)
}

type assistantService struct {
	engine           *router.Engine
	registry         *command.Registry
	retrieval        *retrieval.Client
	sessions         *memory.SessionRepository
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAssistantService(
	engine *router.Engine,
	registry *command.Registry,
	retrievalClient *retrieval.Client,
	sessions *memory.SessionRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		engine:           engine,
		registry:         registry,
		retrieval:        retrievalClient,
		sessions:         sessions,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *assistantService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	s.sessions.Save(&store.Session{
		ID:     id.String(),
		UserID: userId.String(),
	})
	s.logger.Info("AssistantService", "Session created", map[string]interface{}{"session_id": id, "user_id": userId})
	return &dto.CreateSessionResponse{Id: id}, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	session, found := s.sessions.Get(sessionId.String())
	if !found {
		return serverutils.NewAPIError(fiber.StatusNotFound, "Session not found")
	}
	if session.UserID != userId.String() {
		return serverutils.NewAPIError(fiber.StatusForbidden, "Session belongs to another user")
	}
	s.sessions.Delete(sessionId.String())
	return nil
}

// Query routes one utterance and, for hybrid/rag outcomes, consults the
// retrieval backend and screens the answer for follow-up applicants.
func (s *assistantService) Query(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	result := s.engine.Decide(req.Query, req.Context)

	resp := &dto.QueryResponse{
		Type:       string(result.Type),
		CommandId:  result.CommandID,
		Action:     result.Action,
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
		Domain:     string(result.Domain.Domain),
		Intent:     result.Intent.Primary,
		CreatedAt:  time.Now(),
	}

	// Missing or expired sessions degrade to stateless routing.
	session, hasSession := s.sessions.Get(req.SessionId.String())

	degraded := false
	if result.Type == router.ResultHybrid || result.Type == router.ResultRAG {
		askReq := retrieval.AskRequest{
			Query:   result.RagQuery,
			Filters: req.Context.Filters,
		}
		if hasSession {
			askReq.SessionID = session.ContinuityToken
		}

		answer := s.retrieval.Ask(ctx, askReq)
		resp.Answer = answer.Answer
		resp.Sources = answer.Sources
		degraded = answer.Degraded

		if !answer.Degraded {
			resp.Suggestions = resolver.DetectSuggestions(answer.Answer, req.Context.Roster, nil)
		}

		if hasSession && answer.SessionID != "" {
			session.ContinuityToken = answer.SessionID
		}
	}

	if hasSession {
		session.LastQuery = req.Query
		session.LastDomain = string(result.Domain.Domain)
		session.LastIntent = result.Intent.Primary
		s.sessions.Save(session)
	}

	s.publishQueryEvent(ctx, userId, req, resp, degraded)

	return resp, nil
}

func (s *assistantService) publishQueryEvent(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest, resp *dto.QueryResponse, degraded bool) {
	msg := dto.PublishAssistantEventMessage{
		UserId:     userId.String(),
		SessionId:  req.SessionId.String(),
		Query:      req.Query,
		ResultType: resp.Type,
		CommandId:  resp.CommandId,
		Domain:     resp.Domain,
		Intent:     resp.Intent,
		Confidence: resp.Confidence,
		EntityIds:  resp.Suggestions,
		Degraded:   degraded,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("AssistantService", "Failed to marshal pipeline event", map[string]interface{}{"error": err})
		return
	}

	// Event delivery never blocks the response path.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("AssistantService", "Failed to publish pipeline event", map[string]interface{}{"error": err})
	}
}

// Suggestions screens an externally produced answer against the caller's
// roster, trusting backend-asserted candidate ids over name matching.
func (s *assistantService) Suggestions(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	ids := resolver.DetectSuggestions(req.Answer, req.Roster, req.BackendCandidateIds)
	if ids == nil {
		ids = []string{}
	}
	return &dto.SuggestionsResponse{EntityIds: ids}, nil
}

// Insight resolves a name against the roster and analyzes the winner. A
// name that ties across several applicants comes back as a disambiguation
// list rather than a guess.
func (s *assistantService) Insight(ctx context.Context, req *dto.InsightRequest) (*dto.InsightResponse, error) {
	applicant, err := insight.FindByName(req.Roster, req.Name)
	if err != nil {
		var ambErr *insight.AmbiguityError
		if errors.As(err, &ambErr) {
			candidates := make([]dto.CandidateDTO, 0, len(ambErr.Candidates))
			for _, c := range ambErr.Candidates {
				candidates = append(candidates, dto.CandidateDTO{
					Id:          c.ID,
					DisplayName: c.DisplayName(),
					Programme:   c.Programme,
					Stage:       c.Stage,
				})
			}
			return &dto.InsightResponse{Ambiguous: true, Candidates: candidates}, nil
		}
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Applicant not found in the current roster")
	}

	result := insight.Analyze(applicant, time.Now())
	return &dto.InsightResponse{Insight: &result}, nil
}

// Commands returns the ranked palette for a query, or the browse listing
// for an empty one.
func (s *assistantService) Commands(req *dto.CommandsRequest) (*dto.CommandsResponse, error) {
	scored := command.Match(s.registry, req.Query, req.Context)

	out := make([]dto.CommandDTO, 0, len(scored))
	for _, sc := range scored {
		out = append(out, dto.CommandDTO{
			Id:           sc.Command.ID,
			Label:        sc.Command.Label,
			Group:        string(sc.Command.Group),
			ShortcutHint: sc.Command.ShortcutHint,
			Score:        sc.Score,
		})
	}

	return &dto.CommandsResponse{Commands: out}, nil
}
