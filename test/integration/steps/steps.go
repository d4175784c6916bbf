// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testJWTIssuer = "finance-tracker"
)

var placeholder = regexp.MustCompile(`\{\{(\w+)(?::([^}]+))?\}\}`)

type testContext struct {
	server   *httptest.Server
	client   *http.Client
	response *response
	db       *mock.Db
	timeMock *mock.Time
	tokens   adapter.TokenService

	headers       map[string]string
	accessToken   string
	currentUserID uuid.UUID

	accounts   map[string]uuid.UUID
	cards      map[string]uuid.UUID
	categories map[string]uuid.UUID

	lastTransactionID uuid.UUID
	lastInvoiceID     uuid.UUID
	lastRuleID        uuid.UUID
	paymentID         uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit  sync.Once
	suiteServer *httptest.Server
	suiteDB     *mock.Db
	suiteClock  = mock.NewTime()
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if suiteServer != nil {
			suiteServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: suiteClock,
		tokens:   adapters.NewTokenService(testJWTSecret, testJWTIssuer),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)

	// Ledger setup steps
	ctx.Given(`^an account "([^"]*)" with initial balance "([^"]*)" on "([^"]*)"$`, test.anAccountWithInitialBalanceOn)
	ctx.Given(`^a card "([^"]*)" closing on day (\d+) and due on day (\d+) paid from "([^"]*)"$`, test.aCardClosingOnDayAndDueOnDayPaidFrom)
	ctx.Given(`^a category "([^"]*)"$`, test.aCategory)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be the category "([^"]*)"$`, test.theResponseFieldShouldBeTheCategory)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the balance of account "([^"]*)" should be "([^"]*)"$`, test.theBalanceOfAccountShouldBe)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.db = mock.NewDb(model.All())
	suiteDB = t.db

	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.accounts = make(map[string]uuid.UUID)
	t.cards = make(map[string]uuid.UUID)
	t.categories = make(map[string]uuid.UUID)
	t.lastTransactionID = uuid.Nil
	t.lastInvoiceID = uuid.Nil
	t.lastRuleID = uuid.Nil
	t.paymentID = uuid.Nil
	t.response = nil
	t.timeMock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	system := entity.DefaultSystemCategories()
	return persistence.NewCategoryRepository(t.db.DbConn).EnsureExists(context.Background(), system.Seed())
}

func (t *testContext) startServer() error {
	var err error
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.Issuer = testJWTIssuer
		cfg.Ledger.BalancePolicy = "to_date"
		cfg.Ledger.LockTTL = 5 * time.Second

		var injector *dependency.Injector
		injector, err = dependency.NewInjector(cfg, suiteDB.DbConn, dependency.Options{
			Redis: mock.NewRedis(),
			Clock: suiteClock,
		})
		if err != nil {
			return
		}
		suiteServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	if err != nil {
		return err
	}
	if suiteServer == nil {
		return errors.New("test server failed to start")
	}
	t.server = suiteServer
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) todayIs(date string) error {
	day, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) iAmAuthenticatedAs(name string) error {
	t.currentUserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("bdd-user:"+name))
	token, err := t.tokens.GenerateAccessToken(context.Background(), t.currentUserID, name+"@example.com")
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) anAccountWithInitialBalanceOn(name, initial, date string) error {
	amount, err := decimal.NewFromString(initial)
	if err != nil {
		return err
	}
	day, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}
	account := entity.NewAccount(t.currentUserID, name, amount, day)
	account.ComputedBalance = amount
	if err := persistence.NewAccountRepository(t.db.DbConn).Create(context.Background(), account); err != nil {
		return err
	}
	t.accounts[name] = account.ID
	return nil
}

func (t *testContext) aCardClosingOnDayAndDueOnDayPaidFrom(name string, closingDay, dueDay int, accountName string) error {
	accountID, ok := t.accounts[accountName]
	if !ok {
		return fmt.Errorf("account %q was not created", accountName)
	}
	card := entity.NewCard(t.currentUserID, name, decimal.NewFromInt(10000), closingDay, dueDay, &accountID)
	if err := persistence.NewCardRepository(t.db.DbConn).Create(context.Background(), card); err != nil {
		return err
	}
	t.cards[name] = card.ID
	return nil
}

func (t *testContext) aCategory(name string) error {
	category := entity.NewCategory(t.currentUserID, name)
	if err := persistence.NewCategoryRepository(t.db.DbConn).Create(context.Background(), category); err != nil {
		return err
	}
	t.categories[name] = category.ID
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil && body.Content != "" {
		content, err := t.replacePlaceholders(body.Content)
		if err != nil {
			return err
		}
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

// replacePlaceholders expands {{account:Name}}, {{card:Name}}, {{category:Name}},
// {{transaction_id}}, {{invoice_id}}, {{rule_id}} and {{payment_id}}.
func (t *testContext) replacePlaceholders(content string) (string, error) {
	var missing error
	replaced := placeholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholder.FindStringSubmatch(match)
		kind, name := parts[1], parts[2]

		var (
			id uuid.UUID
			ok = true
		)
		switch kind {
		case "account":
			id, ok = t.accounts[name]
		case "card":
			id, ok = t.cards[name]
		case "category":
			id, ok = t.categories[name]
		case "transaction_id":
			id = t.lastTransactionID
		case "invoice_id":
			id = t.lastInvoiceID
		case "rule_id":
			id = t.lastRuleID
		case "payment_id":
			id = t.paymentID
		default:
			ok = false
		}
		if !ok {
			missing = fmt.Errorf("unknown placeholder %s", match)
			return match
		}
		return id.String()
	})
	return replaced, missing
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.server.URL + path
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)
	return nil
}

// captureIDs remembers the IDs later steps refer to through placeholders.
func (t *testContext) captureIDs(body map[string]any) {
	if invoice, ok := body["invoice"].(map[string]any); ok {
		t.captureIDs(invoice)
	}
	if rule, ok := body["rule"].(map[string]any); ok {
		if id, ok := parseID(rule["id"]); ok {
			t.lastRuleID = id
		}
	}
	if id, ok := parseID(body["payment_transaction_id"]); ok {
		t.paymentID = id
	}

	id, ok := parseID(body["id"])
	if !ok {
		return
	}
	switch {
	case body["reference_month"] != nil:
		t.lastInvoiceID = id
	case body["description"] != nil:
		t.lastTransactionID = id
		if invoiceID, ok := parseID(body["invoice_id"]); ok {
			t.lastInvoiceID = invoiceID
		}
	}
}

func parseID(value any) (uuid.UUID, bool) {
	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeTheCategory(field, name string) error {
	id, ok := t.categories[name]
	if !ok {
		return fmt.Errorf("category %q was not created", name)
	}
	return t.theResponseFieldShouldBe(field, id.String())
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theBalanceOfAccountShouldBe(name, expected string) error {
	id, ok := t.accounts[name]
	if !ok {
		return fmt.Errorf("account %q was not created", name)
	}
	account, err := persistence.NewAccountRepository(t.db.DbConn).FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	if got := account.ComputedBalance.StringFixed(2); got != expected {
		return fmt.Errorf("balance of %q expected %s, got %s", name, expected, got)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.theDbShouldContainObjectsInWithTheValues(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if content != nil {
		replaced, err := t.replacePlaceholders(content.Content)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(replaced), &criteria); err != nil {
			return err
		}
	}

	m, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap
	for _, currentField := range fields {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}
	return field
}
