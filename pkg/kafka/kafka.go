package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/Bidex-03/ummah-connect/config"
	"github.com/Bidex-03/ummah-connect/pkg/applogger"
)

// NewProducer creates a confluent kafka producer from the application
// configuration.
func NewProducer() *kafka.Producer {
	c := config.Get()

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": c.Kafka.BootstrapServers,
		"acks":              "all",
	})
	if err != nil {
		applogger.GetLogrus().WithError(err).Fatal("unable to create kafka producer")
	}

	return producer
}
