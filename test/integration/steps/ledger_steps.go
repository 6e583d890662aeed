package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	"github.com/finance-assistant/backend/internal/integration/persistence"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

// registerLedgerSteps registers domain steps: ledger seeding, oracle
// scripting and email assertions.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the following entries exist:$`, theFollowingEntriesExist)
	ctx.Step(`^the ledger should contain (\d+) entries$`, theLedgerShouldContainEntries)

	ctx.Step(`^the assistant will route to "([^"]*)"$`, theAssistantWillRouteTo)
	ctx.Step(`^the assistant will route to "([^"]*)" with parameters:$`, theAssistantWillRouteToWithParameters)
	ctx.Step(`^the assistant will ask for clarification "([^"]*)"$`, theAssistantWillAskForClarification)
	ctx.Step(`^the assistant is unavailable$`, theAssistantIsUnavailable)

	ctx.Step(`^the oracle will extract:$`, theOracleWillExtract)
	ctx.Step(`^the oracle extraction fails$`, theOracleExtractionFails)
	ctx.Step(`^the OCR will read "([^"]*)" with confidence ([0-9.]+)$`, theOCRWillRead)
	ctx.Step(`^the narrator will summarize "([^"]*)"$`, theNarratorWillSummarize)
	ctx.Step(`^the narrator is unavailable$`, theNarratorIsUnavailable)

	ctx.Step(`^email delivery fails permanently$`, emailDeliveryFailsPermanently)
	ctx.Step(`^an email should have been sent to "([^"]*)"$`, anEmailShouldHaveBeenSentTo)
	ctx.Step(`^no email should have been sent$`, noEmailShouldHaveBeenSent)
	ctx.Step(`^the email subject should contain "([^"]*)"$`, theEmailSubjectShouldContain)
}

// theFollowingEntriesExist seeds the ledger from a table with columns
// tipo, valor, item, data, categoria.
func theFollowingEntriesExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header row and at least one data row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	cell := func(row int, column string) string {
		idx, ok := columns[column]
		if !ok {
			return ""
		}
		return table.Rows[row].Cells[idx].Value
	}

	repo := persistence.NewEntryRepository(tc.db.DbConn)
	for row := 1; row < len(table.Rows); row++ {
		amount, err := decimal.NewFromString(cell(row, "valor"))
		if err != nil {
			return fmt.Errorf("invalid valor in row %d: %w", row, err)
		}

		kind := entity.EntryKind(cell(row, "tipo"))
		if kind == "" {
			kind = entity.EntryKindExpense
		}

		seeded := entity.NewLedgerEntry(entity.EntryDraft{
			Kind:          kind,
			Amount:        amount,
			Label:         cell(row, "item"),
			Quantity:      1,
			OccurredOn:    cell(row, "data"),
			Category:      cell(row, "categoria"),
			PaymentMethod: cell(row, "forma_pagamento"),
			Tags:          []string{},
		})
		if err := repo.Create(ctx, seeded); err != nil {
			return fmt.Errorf("failed to seed entry in row %d: %w", row, err)
		}
	}

	return nil
}

func theLedgerShouldContainEntries(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var count int64
	if err := tc.db.DbConn.Model(&model.LedgerEntryModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d entries in the ledger, found %d", expected, count)
	}
	return nil
}

func theAssistantWillRouteTo(ctx context.Context, action string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetDecision(&adapter.IntentDecision{
		Action:            adapter.Action(action),
		Parameters:        map[string]any{},
		ActionDescription: action,
	})
	return nil
}

func theAssistantWillRouteToWithParameters(ctx context.Context, action string, params *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var parameters map[string]any
	if err := json.Unmarshal([]byte(params.Content), &parameters); err != nil {
		return fmt.Errorf("invalid parameters JSON: %w", err)
	}

	tc.oracle.SetDecision(&adapter.IntentDecision{
		Action:            adapter.Action(action),
		Parameters:        parameters,
		ActionDescription: action,
	})
	return nil
}

func theAssistantWillAskForClarification(ctx context.Context, clarification string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetDecision(&adapter.IntentDecision{
		NeedsMoreInfo: true,
		Clarification: clarification,
	})
	return nil
}

func theAssistantIsUnavailable(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetDecisionError(errors.New("service unavailable"))
	return nil
}

// theOracleWillExtract scripts the extraction result from a JSON document
// using the wire field names (tipo, valor, item, data, categoria, ...).
func theOracleWillExtract(ctx context.Context, doc *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var raw struct {
		Kind          string   `json:"tipo"`
		Amount        float64  `json:"valor"`
		Label         string   `json:"item"`
		Quantity      int      `json:"quantidade"`
		Source        string   `json:"estabelecimento"`
		OccurredOn    string   `json:"data"`
		Category      string   `json:"categoria"`
		PaymentMethod string   `json:"forma_pagamento"`
		Tags          []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(doc.Content), &raw); err != nil {
		return fmt.Errorf("invalid extraction JSON: %w", err)
	}

	tc.oracle.SetExtraction(&entity.ExtractedEntry{
		Kind:          entity.EntryKind(raw.Kind),
		Amount:        decimal.NewFromFloat(raw.Amount),
		Label:         raw.Label,
		Quantity:      raw.Quantity,
		Source:        raw.Source,
		OccurredOn:    raw.OccurredOn,
		Category:      raw.Category,
		PaymentMethod: raw.PaymentMethod,
		Tags:          raw.Tags,
	})
	return nil
}

func theOracleExtractionFails(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetExtractionError(errors.New("extraction failed"))
	return nil
}

func theOCRWillRead(ctx context.Context, text, confidence string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := strconv.ParseFloat(confidence, 64)
	if err != nil {
		return fmt.Errorf("invalid confidence: %w", err)
	}

	tc.oracle.SetReceiptText(&adapter.ReceiptText{
		Text:       text,
		Confidence: value,
	})
	return nil
}

func theNarratorWillSummarize(ctx context.Context, summary string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetInsights(&entity.FriendlyInsights{
		Summary:         summary,
		Recommendations: []string{"Continue registrando seus gastos"},
	})
	return nil
}

func theNarratorIsUnavailable(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.oracle.SetInsightsError(errors.New("narrator unavailable"))
	return nil
}

func emailDeliveryFailsPermanently(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.emailSender.SetFailure(errors.New("invalid recipient"), true)
	return nil
}

func anEmailShouldHaveBeenSentTo(ctx context.Context, recipient string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	for _, sent := range tc.emailSender.SentEmails {
		if sent.To == recipient {
			return nil
		}
	}
	return fmt.Errorf("no email sent to %s (%d emails sent)", recipient, len(tc.emailSender.SentEmails))
}

func noEmailShouldHaveBeenSent(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(tc.emailSender.SentEmails) != 0 {
		return fmt.Errorf("expected no emails, %d were sent", len(tc.emailSender.SentEmails))
	}
	return nil
}

func theEmailSubjectShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(tc.emailSender.SentEmails) == 0 {
		return fmt.Errorf("no emails were sent")
	}
	subject := tc.emailSender.SentEmails[len(tc.emailSender.SentEmails)-1].Subject
	if !strings.Contains(subject, expected) {
		return fmt.Errorf("subject %q does not contain %q", subject, expected)
	}
	return nil
}
