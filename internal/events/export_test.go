package events

// NewKafkaPublisherWithWriter позволяет подменить writer в тестах
func NewKafkaPublisherWithWriter(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}
