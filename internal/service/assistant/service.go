package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
	"github.com/aruizdev/tablero/internal/service/insights"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
	"github.com/aruizdev/tablero/pkg/clients/anthropic"
)

const helpText = "Comandos disponibles: /ocupacion, /tendencia, /alertas, /ayuda. " +
	"También puedes preguntarme en lenguaje natural sobre las métricas del periodo."

const systemPromptTemplate = `Eres el asistente del panel de operaciones de un restaurante.
Responde en español, breve y concreto, usando exclusivamente estas métricas:

%s

Si la pregunta no puede responderse con esas métricas, dilo.`

// SnapshotSource exposes the latest occupancy evaluation to the assistant.
type SnapshotSource interface {
	Latest() (occupancysvc.Snapshot, bool)
	TargetPct() float64
}

// ChatService describes the operations the webhook handler can perform.
type ChatService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleMessage(ctx context.Context, msg models.AssistantMessage) (models.AssistantReply, error)
}

// Service answers assistant messages from the live snapshot, falling back to
// the language model for free-form questions.
type Service struct {
	cfg       config.AssistantConfig
	snapshots SnapshotSource
	ai        anthropic.Client
	logger    *zap.Logger
}

// NewService wires a new assistant service instance.
func NewService(cfg config.AssistantConfig, snapshots SnapshotSource, ai anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		snapshots: snapshots,
		ai:        ai,
		logger:    logger,
	}
}

// VerifyWebhookToken validates the webhook verification challenge.
func (s *Service) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleMessage parses the inbound text and builds a reply.
func (s *Service) HandleMessage(ctx context.Context, msg models.AssistantMessage) (models.AssistantReply, error) {
	cmd := models.ParseCommand(msg.Text)

	s.logger.Info("assistant message received",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)))

	reply := models.AssistantReply{ConversationID: msg.ConversationID}

	switch cmd.Type {
	case models.CommandHelp:
		reply.Reply = helpText
		return reply, nil
	case models.CommandOccupancy:
		reply.Reply = s.occupancyReply()
		return reply, nil
	case models.CommandTrend:
		reply.Reply = s.trendReply()
		return reply, nil
	case models.CommandAlerts:
		reply.Reply = s.alertsReply()
		return reply, nil
	default:
		text, err := s.freeTextReply(ctx, msg.Text)
		if err != nil {
			return models.AssistantReply{}, err
		}
		reply.Reply = text
		return reply, nil
	}
}

func (s *Service) occupancyReply() string {
	snapshot, ok := s.snapshots.Latest()
	if !ok {
		return "Todavía no hay métricas evaluadas. Abre el panel de ocupación primero."
	}

	metrics := snapshot.Metrics
	return fmt.Sprintf("Ocupación del %.2f%% (%d comensales, %d reservas en %d días). Capacidad perdida: %d. Objetivo: %.0f%%.",
		metrics.OccupancyRatePct, metrics.TotalGuests, metrics.TotalReservations,
		metrics.ActiveDays, metrics.LostCapacity, s.snapshots.TargetPct())
}

func (s *Service) trendReply() string {
	snapshot, ok := s.snapshots.Latest()
	if !ok {
		return "Todavía no hay métricas evaluadas. Abre el panel de ocupación primero."
	}

	if snapshot.Metrics.TrendPct == nil {
		return "No hay línea base en el periodo anterior, no se puede calcular la tendencia."
	}
	return fmt.Sprintf("Tendencia de comensales: %+.2f%% respecto al periodo anterior.", *snapshot.Metrics.TrendPct)
}

func (s *Service) alertsReply() string {
	snapshot, ok := s.snapshots.Latest()
	if !ok {
		return "Todavía no hay métricas evaluadas. Abre el panel de ocupación primero."
	}

	if len(snapshot.Alerts) == 0 {
		return "Sin alertas activas. Ocupación dentro de los parámetros."
	}

	lines := make([]string, 0, len(snapshot.Alerts))
	for _, alert := range snapshot.Alerts {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", alert.Severity, alert.Title, alert.Message))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) freeTextReply(ctx context.Context, text string) (string, error) {
	if s.ai == nil {
		return helpText, nil
	}

	snapshot, ok := s.snapshots.Latest()
	if !ok {
		return "Todavía no hay métricas evaluadas sobre las que responder. " + helpText, nil
	}

	system := fmt.Sprintf(systemPromptTemplate, insights.MetricsDigest(snapshot.Metrics, snapshot.Filter))

	answer, err := s.ai.Complete(ctx, system, []anthropic.Message{
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", fmt.Errorf("assistant completion: %w", err)
	}
	return answer, nil
}
