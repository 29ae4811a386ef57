package crowdestate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/segmentio/kafka-go"
)

const EventTopic = "crowdestate_event"

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(body []byte) error {
	err := kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Value: body,
		},
	)
	return err
}

func (kw *KWriter) Close() {
	kw.w.Close()
}

// sendEvent publishes a committed state change. Best effort: the operation
// already committed, so a broker failure is logged and dropped.
func (s *CrowdEstate) sendEvent(ev schema.Event) {
	if s.kafka == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().Unix()
	body, err := json.Marshal(&ev)
	if err != nil {
		log.Error("marshal event", "type", ev.Type, "err", err)
		return
	}
	go func() {
		if err := s.kafka.Write(body); err != nil {
			log.Error("send kafka event", "type", ev.Type, "err", err)
		}
	}()
}
