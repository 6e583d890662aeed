package adapter

import (
	"context"
	"time"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// ReportEmailInput carries everything needed to render and send one
// report email.
type ReportEmailInput struct {
	To          string
	Subject     string
	Period      string
	TotalAmount string
	Insights    *entity.FriendlyInsights
}

// ReportDelivery describes a completed (or attempted) report email send.
type ReportDelivery struct {
	DeliveryID string
	Recipient  string
	Subject    string
	SentAt     time.Time
}

// ReportMailer renders the report email template and dispatches it through
// the email provider. One render plus one send per call; failures surface
// to the caller and are never retried here.
type ReportMailer interface {
	SendReport(ctx context.Context, input ReportEmailInput) (*ReportDelivery, error)
}
