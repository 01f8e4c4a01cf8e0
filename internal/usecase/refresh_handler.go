package usecase

import (
	"context"
	"encoding/json"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	pkgkafka "RosterPulse/pkg/kafka"
	xlogger "RosterPulse/pkg/logger"
)

// KafkaRefreshHandler consumes refresh requests from Kafka and runs the
// batch path for the named leagues.
type KafkaRefreshHandler struct {
	topic   string
	refresh *RefreshUsecase
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func NewKafkaRefreshHandler(topic string, refresh *RefreshUsecase, metrics drepo.Metrics, l *xlogger.Logger) *KafkaRefreshHandler {
	return &KafkaRefreshHandler{topic: topic, refresh: refresh, metrics: metrics, logger: l}
}

func (h *KafkaRefreshHandler) Topic() string { return h.topic }

// incoming message schema: {league_ids: [...]}; empty means all configured.
func (h *KafkaRefreshHandler) Handle(ctx context.Context, b []byte) error {
	var req models.RefreshRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	h.logger.Info("kafka refresh request", xlogger.Int("leagues", len(req.LeagueIDs)))
	_, err := h.refresh.Refresh(ctx, req.LeagueIDs)
	if err != nil {
		h.metrics.RecordError("consumer_refresh")
	}
	return err
}

var _ pkgkafka.MessageHandler = (*KafkaRefreshHandler)(nil)
