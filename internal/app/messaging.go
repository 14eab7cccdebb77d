package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/messaging"
)

// InitializePublisher returns the Kafka producer when enabled, otherwise a no-op.
func InitializePublisher(cfg config.KafkaConfig) messaging.Publisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		if cfg.Enabled {
			log.Warn().Msg("Kafka enabled without KAFKA_BROKERS, assignment events are dropped")
		}
		return messaging.NewNoopPublisher()
	}
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Publishing assignment events to Kafka")
	return messaging.NewKafkaProducer(cfg.Brokers, cfg.Topic)
}
