package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/trustedhb/qc-server/internal/export"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/service"
)

const (
	defaultCacheDuration = 5 * time.Minute
	defaultHTTPTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyDashboard CacheKeyType = "api:dashboard"
	cacheKeySessions  CacheKeyType = "api:sessions"
	cacheKeyReport    CacheKeyType = "api:agent_report"
	cacheKeyInsights  CacheKeyType = "api:agent_insights"
)

type Handlers struct {
	sessions  SessionService
	analytics AnalyticsService
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration

	adminPassword string
	jwtSecret     []byte
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(sessions SessionService, analytics AnalyticsService, cache Cacher, logger *zap.Logger, ttl time.Duration, adminPassword string, jwtSecret []byte) *Handlers {
	if sessions == nil || analytics == nil {
		panic("nil service provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		sessions:      sessions,
		analytics:     analytics,
		cache:         cache,
		logger:        logger.Named("http-handler"),
		cacheTTL:      ttl,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
	}
}

func agentKey(prefix CacheKeyType, agentID int64) string {
	return fmt.Sprintf("%s:%d", prefix, agentID)
}

// handleError maps service errors onto HTTP responses.
func (h *Handlers) handleError(c *fiber.Ctx, op string, err error) error {
	switch c.Context().Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{"error": "request canceled"})
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "request timed out"})
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		h.logger.Info("not found", zap.String("op", op), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, service.ErrNoSessions):
		h.logger.Info("no sessions", zap.String("op", op))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no sessions found"})
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("%s failed", op)})
	}
}

// invalidate drops cached read results after a write. Best-effort.
func (h *Handlers) invalidate(agentIDs ...int64) {
	if h.cache == nil {
		return
	}
	keys := []string{string(cacheKeyDashboard), string(cacheKeySessions)}
	for _, id := range agentIDs {
		keys = append(keys,
			agentKey(cacheKeyReport, id),
			agentKey(cacheKeyInsights, id))
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
	defer cancel()
	if err := h.cache.Del(ctx, keys...); err != nil {
		h.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

func (h *Handlers) GetDashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	dashboard, err := FindAndCache(ctx, h.cache, &h.sfGroup, string(cacheKeyDashboard), h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.Dashboard, error) {
		return h.analytics.Dashboard(fetchCtx)
	})
	if err != nil {
		return h.handleError(c, "GetDashboard", err)
	}
	return c.JSON(dashboard)
}

func (h *Handlers) GetAgentReport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	report, err := FindAndCache(ctx, h.cache, &h.sfGroup, agentKey(cacheKeyReport, id), h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.DashboardAgent, error) {
		return h.analytics.AgentReport(fetchCtx, id)
	})
	if err != nil {
		return h.handleError(c, "GetAgentReport", err)
	}
	return c.JSON(report)
}

func (h *Handlers) GetAgentInsights(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	insights, err := FindAndCache(ctx, h.cache, &h.sfGroup, agentKey(cacheKeyInsights, id), h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.AgentInsight, error) {
		return h.analytics.AgentInsight(fetchCtx, id)
	})
	if err != nil {
		return h.handleError(c, "GetAgentInsights", err)
	}
	return c.JSON(insights)
}

func (h *Handlers) GetAgentCategoryInsight(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category := c.Params("category")

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	analysis, err := h.analytics.AgentCategoryInsight(ctx, id, category)
	if err != nil {
		return h.handleError(c, "GetAgentCategoryInsight", err)
	}
	return c.JSON(analysis)
}

func (h *Handlers) GetSessions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	if agentID := c.QueryInt("agent_id"); agentID > 0 {
		sessions, err := h.analytics.AgentSessions(ctx, int64(agentID))
		if err != nil {
			return h.handleError(c, "GetSessions", err)
		}
		return c.JSON(sessions)
	}

	sessions, err := FindAndCache(ctx, h.cache, &h.sfGroup, string(cacheKeySessions), h.cacheTTL, h.logger, func(fetchCtx context.Context) ([]models.Session, error) {
		return h.sessions.ListSessions(fetchCtx)
	})
	if err != nil {
		return h.handleError(c, "GetSessions", err)
	}
	return c.JSON(sessions)
}

func (h *Handlers) GetSession(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	session, err := h.sessions.GetSession(ctx, id)
	if err != nil {
		return h.handleError(c, "GetSession", err)
	}
	return c.JSON(session)
}

// sessionRequest is the scoring form payload. The call date arrives as a
// plain YYYY-MM-DD string.
type sessionRequest struct {
	service.SessionInput
	CallDate string `json:"call_date"`
}

func (r *sessionRequest) toInput() (service.SessionInput, error) {
	in := r.SessionInput
	if r.CallDate == "" {
		return in, fiber.NewError(fiber.StatusBadRequest, "call_date is required")
	}
	t, err := time.Parse("2006-01-02", r.CallDate)
	if err != nil {
		t, err = time.Parse(time.RFC3339, r.CallDate)
		if err != nil {
			return in, fiber.NewError(fiber.StatusBadRequest, "call_date must be YYYY-MM-DD")
		}
	}
	in.CallDate = t
	return in, nil
}

func (h *Handlers) CreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session payload")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}
	if in.AgentID == 0 || in.QCAgentID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "agent_id and qc_agent_id are required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	result, err := h.sessions.CreateSession(ctx, in)
	if err != nil {
		return h.handleError(c, "CreateSession", err)
	}
	h.invalidate(result.Session.AgentID)
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handlers) UpdateSession(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session payload")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	session, err := h.sessions.UpdateSession(ctx, id, in)
	if err != nil {
		return h.handleError(c, "UpdateSession", err)
	}
	h.invalidate(session.AgentID)
	return c.JSON(session)
}

func (h *Handlers) DeleteSession(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	session, err := h.sessions.GetSession(ctx, id)
	if err != nil {
		return h.handleError(c, "DeleteSession", err)
	}
	if err := h.sessions.DeleteSession(ctx, id); err != nil {
		return h.handleError(c, "DeleteSession", err)
	}
	h.invalidate(session.AgentID)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) ArchiveSession(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	session, err := h.sessions.GetSession(ctx, id)
	if err != nil {
		return h.handleError(c, "ArchiveSession", err)
	}
	archiveID, err := h.sessions.ArchiveSession(ctx, id)
	if err != nil {
		return h.handleError(c, "ArchiveSession", err)
	}
	h.invalidate(session.AgentID)
	return c.JSON(fiber.Map{"archive_id": archiveID})
}

func (h *Handlers) GetArchivedSessions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	archived, err := h.sessions.ListArchivedSessions(ctx)
	if err != nil {
		return h.handleError(c, "GetArchivedSessions", err)
	}
	return c.JSON(archived)
}

func (h *Handlers) RestoreSession(c *fiber.Ctx) error {
	archiveID := c.Params("id")
	if archiveID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "archive id is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	session, err := h.sessions.RestoreSession(ctx, archiveID)
	if err != nil {
		return h.handleError(c, "RestoreSession", err)
	}
	h.invalidate(session.AgentID)
	return c.Status(fiber.StatusCreated).JSON(session)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) GetAgents(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	agents, err := h.sessions.ListAgents(ctx)
	if err != nil {
		return h.handleError(c, "GetAgents", err)
	}
	return c.JSON(agents)
}

func (h *Handlers) CreateAgent(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	agent, err := h.sessions.CreateAgent(ctx, req.Name)
	if err != nil {
		return h.handleError(c, "CreateAgent", err)
	}
	h.invalidate()
	return c.Status(fiber.StatusCreated).JSON(agent)
}

func (h *Handlers) GetQCAgents(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	agents, err := h.sessions.ListQCAgents(ctx)
	if err != nil {
		return h.handleError(c, "GetQCAgents", err)
	}
	return c.JSON(agents)
}

func (h *Handlers) CreateQCAgent(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	agent, err := h.sessions.CreateQCAgent(ctx, req.Name)
	if err != nil {
		return h.handleError(c, "CreateQCAgent", err)
	}
	return c.Status(fiber.StatusCreated).JSON(agent)
}

type libraryRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (h *Handlers) GetObjections(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	entries, err := h.sessions.ListObjections(ctx)
	if err != nil {
		return h.handleError(c, "GetObjections", err)
	}
	return c.JSON(entries)
}

func (h *Handlers) CreateObjection(c *fiber.Ctx) error {
	var req libraryRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	if req.Category == "" {
		req.Category = "custom"
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	entry, err := h.sessions.AddObjection(ctx, req.Text, req.Category)
	if err != nil {
		return h.handleError(c, "CreateObjection", err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *Handlers) GetSkills(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	entries, err := h.sessions.ListSkills(ctx)
	if err != nil {
		return h.handleError(c, "GetSkills", err)
	}
	return c.JSON(entries)
}

func (h *Handlers) CreateSkill(c *fiber.Ctx) error {
	var req libraryRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	if req.Category == "" {
		req.Category = "custom"
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	entry, err := h.sessions.AddSkill(ctx, req.Text, req.Category)
	if err != nil {
		return h.handleError(c, "CreateSkill", err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *Handlers) GetTrainingExamples(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	examples, err := h.sessions.ListTrainingExamples(ctx)
	if err != nil {
		return h.handleError(c, "GetTrainingExamples", err)
	}
	return c.JSON(examples)
}

func (h *Handlers) CreateTrainingExample(c *fiber.Ctx) error {
	var req models.TrainingExample
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid training example payload")
	}
	if req.AgentID == 0 || req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "agent_id and category are required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	example, err := h.sessions.AddTrainingExample(ctx, req)
	if err != nil {
		return h.handleError(c, "CreateTrainingExample", err)
	}
	return c.Status(fiber.StatusCreated).JSON(example)
}

// ExportScorecard streams the dashboard as an xlsx workbook.
func (h *Handlers) ExportScorecard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultHTTPTimeout)
	defer cancel()

	dashboard, err := h.analytics.Dashboard(ctx)
	if err != nil {
		return h.handleError(c, "ExportScorecard", err)
	}

	buf, err := export.Scorecard(dashboard)
	if err != nil {
		h.logger.Error("scorecard export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	filename := fmt.Sprintf("scorecard-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return int64(id), nil
}
