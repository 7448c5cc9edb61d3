package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix roots every content subject: content.<resource>.<action>.
const SubjectPrefix = "content"

// NATS publishes events to a NATS server.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to url.
func NewNATS(url string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("portfolio-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Println("NATS connected successfully")
	return &NATS{conn: conn}, nil
}

// Subject returns the subject an event is published on.
func Subject(ev Event) string {
	return SubjectPrefix + "." + ev.Resource + "." + ev.Action
}

func (n *NATS) Send(_ context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.conn.Publish(Subject(ev), data)
}

// Subscribe calls handler for every content event.
func (n *NATS) Subscribe(handler func(Event)) (*nats.Subscription, error) {
	return n.conn.Subscribe(SubjectPrefix+".>", func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Printf("decode %s: %v", msg.Subject, err)
			return
		}
		handler(ev)
	})
}

// Close drains pending messages and closes the connection.
func (n *NATS) Close() {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
}
