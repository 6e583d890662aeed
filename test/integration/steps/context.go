// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/assistant"
	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/application/usecase/receipt"
	"github.com/finance-assistant/backend/internal/application/usecase/report"
	"github.com/finance-assistant/backend/internal/infra/server/router"
	"github.com/finance-assistant/backend/internal/integration/email"
	"github.com/finance-assistant/backend/internal/integration/email/templates"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-assistant/backend/internal/integration/persistence"
	"github.com/finance-assistant/backend/test/integration/mock"
)

const testDefaultRecipient = "dev@example.com"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Fakes
	db          *mock.Db
	oracle      *mock.Oracle
	emailSender *email.MockEmailSender
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
}

// newTestContext wires the full application with the scripted oracle, the
// mock email sender and a clean in-memory database.
func newTestContext() (*TestContext, error) {
	tc := &TestContext{
		requestHeaders: make(map[string]string),
		db:             mock.NewDb(),
		oracle:         mock.NewOracle(),
		emailSender:    email.NewMockEmailSender(),
	}

	if err := tc.db.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset test database: %w", err)
	}

	entryRepo := persistence.NewEntryRepository(tc.db.DbConn)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create template renderer: %w", err)
	}
	reportMailer := email.NewService(tc.emailSender, renderer)

	extractEntryUseCase := entry.NewExtractEntryUseCase(tc.oracle)
	registerEntryUseCase := entry.NewRegisterEntryUseCase(extractEntryUseCase, entryRepo)
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo)
	queryEntriesUseCase := entry.NewQueryEntriesUseCase(entryRepo)
	updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo)

	processReceiptUseCase := receipt.NewProcessReceiptUseCase(tc.oracle)
	checkImageQualityUseCase := receipt.NewCheckImageQualityUseCase(tc.oracle)
	registerConfirmedUseCase := receipt.NewRegisterConfirmedUseCase(entryRepo)

	buildReportUseCase := report.NewBuildReportUseCase(entryRepo)
	generateInsightsUseCase := report.NewGenerateInsightsUseCase(tc.oracle)
	sendReportUseCase := report.NewSendReportUseCase(reportMailer, testDefaultRecipient)

	processMessageUseCase := assistant.NewProcessMessageUseCase(
		tc.oracle,
		registerEntryUseCase,
		extractEntryUseCase,
		queryEntriesUseCase,
		processReceiptUseCase,
		buildReportUseCase,
		generateInsightsUseCase,
		sendReportUseCase,
	)

	healthController := controller.NewHealthController(func() bool { return true })
	entryController := controller.NewEntryController(
		registerEntryUseCase,
		extractEntryUseCase,
		listEntriesUseCase,
		queryEntriesUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
	)
	receiptController := controller.NewReceiptController(
		processReceiptUseCase,
		checkImageQualityUseCase,
		registerConfirmedUseCase,
	)
	reportController := controller.NewReportController(
		buildReportUseCase,
		generateInsightsUseCase,
		sendReportUseCase,
	)
	assistantController := controller.NewAssistantController(processMessageUseCase)

	principalMiddleware := middleware.NewPrincipalMiddleware(false, "", testDefaultRecipient)

	r := router.NewRouter(
		healthController,
		entryController,
		receiptController,
		reportController,
		assistantController,
		principalMiddleware,
	)
	engine := r.Setup("test")
	tc.server = httptest.NewServer(engine)

	return tc, nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return doRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return doRequest(ctx, method, endpoint, bytes.NewBufferString(body.Content))
}

func doRequest(ctx context.Context, method, endpoint string, body io.Reader) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	url := tc.server.URL + endpoint
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, ok := lookupField(tc.responseBody, field)
	if !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if _, ok := lookupField(tc.responseBody, field); !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	return nil
}

// lookupField resolves a dot-separated path inside the response JSON.
func lookupField(body []byte, path string) (any, bool) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
