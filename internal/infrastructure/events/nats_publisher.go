package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

// DefaultSubject prefixes every published subject.
const DefaultSubject = "govtjobs"

// publisher is the part of *nats.Conn used here.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher emits saved records and run summaries as JSON messages.
type NATSPublisher struct {
	conn    publisher
	subject string
}

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// RecordEvent is the payload of <subject>.record.saved.
type RecordEvent struct {
	Partition string        `json:"partition"`
	Record    domain.Record `json:"record"`
}

// RunEvent is the payload of <subject>.run.completed.
type RunEvent struct {
	RunID      string                `json:"runId"`
	Mode       domain.RunMode        `json:"mode"`
	Message    string                `json:"message"`
	Found      int                   `json:"found"`
	Saved      int                   `json:"saved"`
	Duplicates int                   `json:"duplicates"`
	Failed     int                   `json:"failed"`
	Sources    []domain.SourceReport `json:"sources"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
}

// Connect dials NATS with reconnects enabled.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("govtjobs-scanner"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// NewNATSPublisher wraps an open connection.
func NewNATSPublisher(conn *nats.Conn, subject string) *NATSPublisher {
	return newPublisher(conn, subject)
}

func newPublisher(conn publisher, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// RecordSaved publishes one persisted record.
func (p *NATSPublisher) RecordSaved(_ context.Context, partition string, record domain.Record) error {
	return p.publish(p.subject+".record.saved", RecordEvent{Partition: partition, Record: record})
}

// RunCompleted publishes the run summary.
func (p *NATSPublisher) RunCompleted(_ context.Context, report domain.RunReport) error {
	return p.publish(p.subject+".run.completed", RunEvent{
		RunID:      report.RunID,
		Mode:       report.Mode,
		Message:    report.Message(),
		Found:      report.Found,
		Saved:      report.Saved,
		Duplicates: report.Duplicates,
		Failed:     report.Failed,
		Sources:    report.Sources,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	})
}

func (p *NATSPublisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
