package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/application/usecase/forecast"
	"github.com/budget-engine/backend/internal/application/usecase/paycheck"
	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/domain/entity"
	"github.com/budget-engine/backend/internal/infra/server/router"
	"github.com/budget-engine/backend/internal/integration/cache"
	"github.com/budget-engine/backend/internal/integration/entrypoint/controller"
	"github.com/budget-engine/backend/internal/integration/entrypoint/dto"
	"github.com/budget-engine/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-engine/backend/internal/integration/persistence"
	"github.com/budget-engine/backend/internal/integration/persistence/model"
	"github.com/budget-engine/backend/test/integration/mock"

	"github.com/shopspring/decimal"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int
	userIDs    map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		userIDs:    make(map[string]uuid.UUID),
		db: mock.NewDb("budget_engine", map[string]any{
			"recurring_items":      &model.RecurringItemModel{},
			"debts":                &model.DebtModel{},
			"variable_expenses":    &model.VariableExpenseModel{},
			"actual_spend":         &model.ActualSpendModel{},
			"financial_goals":      &model.GoalModel{},
			"sinking_funds":        &model.SinkingFundModel{},
			"forecast_preferences": &model.PreferencesModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return nil, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seeding steps
	ctx.Given(`^the user "([^"]*)" has a recurring item:$`, test.theUserHasARecurringItem)
	ctx.Given(`^the user "([^"]*)" has a debt:$`, test.theUserHasADebt)
	ctx.Given(`^the user "([^"]*)" has a budget:$`, test.theUserHasABudget)
	ctx.Given(`^the user "([^"]*)" has a goal:$`, test.theUserHasAGoal)
	ctx.Given(`^the user "([^"]*)" has a sinking fund:$`, test.theUserHasASinkingFund)
	ctx.Given(`^the user "([^"]*)" has spent "([^"]*)" against budget "([^"]*)" in "([^"]*)"$`, test.theUserHasSpentAgainstBudget)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" for "([^"]*)"$`, test.iSendARequestToForUser)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.theResponseFieldShouldHaveElements)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.userIDs = make(map[string]uuid.UUID)

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories against the in-memory database
			itemRepo := persistence.NewRecurringItemRepository(testDB.DbConn)
			debtRepo := persistence.NewDebtRepository(testDB.DbConn)
			budgetRepo := persistence.NewVariableExpenseRepository(testDB.DbConn)
			spendRepo := persistence.NewActualSpendRepository(testDB.DbConn)
			goalRepo := persistence.NewGoalRepository(testDB.DbConn)
			fundRepo := persistence.NewSinkingFundRepository(testDB.DbConn)
			prefsRepo := persistence.NewPreferencesRepository(testDB.DbConn)

			breakdownCache := cache.NewBreakdownCache(mock.NewRedis(), 5*time.Minute)

			// Core engine wiring
			expander := schedule.NewRecurrenceExpander()
			debtExpander := schedule.NewDebtOccurrenceExpander()

			eventGenerator := paycheck.NewEventGenerator(expander, decimal.NewFromInt(2000), 6, 1)
			buildPeriodsUseCase := paycheck.NewBuildPeriodsUseCase(eventGenerator, 3, 14)

			matcher := forecast.NewExpenseMatcher(expander, debtExpander)
			allocationEngine := forecast.NewAllocationEngine()
			healthAnalyzer := forecast.NewHealthAnalyzer()
			computeUseCase := forecast.NewComputeBreakdownsUseCase(matcher, allocationEngine, healthAnalyzer, 2)

			getForecastUseCase := forecast.NewGetForecastUseCase(
				itemRepo,
				debtRepo,
				budgetRepo,
				spendRepo,
				goalRepo,
				fundRepo,
				prefsRepo,
				breakdownCache,
				buildPeriodsUseCase,
				computeUseCase,
			)

			// Create controllers
			healthController := controller.NewHealthController(
				func() bool { return testDB != nil && testDB.DbConn != nil },
				func() bool { return true },
			)
			scheduleController := controller.NewScheduleController(expander, debtExpander)
			forecastController := controller.NewForecastController(
				buildPeriodsUseCase,
				computeUseCase,
				getForecastUseCase,
			)

			computeRateLimiter := middleware.NewRateLimiter()

			r := router.NewRouter(healthController, scheduleController, forecastController, computeRateLimiter)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

// userID returns a stable UUID for a user label, minting it on first use.
func (t *testContext) userID(label string) uuid.UUID {
	if id, ok := t.userIDs[label]; ok {
		return id
	}
	id := uuid.New()
	t.userIDs[label] = id
	return id
}

// Seeding step implementations

func (t *testContext) theUserHasARecurringItem(user string, body *godog.DocString) error {
	var payload dto.RecurringItemPayload
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("failed to parse recurring item payload: %w", err)
	}
	item, err := payload.ToEntity()
	if err != nil {
		return err
	}
	item.UserID = t.userID(user)

	repo := persistence.NewRecurringItemRepository(t.db.DbConn)
	return repo.Create(context.Background(), item)
}

func (t *testContext) theUserHasADebt(user string, body *godog.DocString) error {
	var payload dto.DebtPayload
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("failed to parse debt payload: %w", err)
	}
	debt, err := payload.ToEntity()
	if err != nil {
		return err
	}
	debt.UserID = t.userID(user)

	repo := persistence.NewDebtRepository(t.db.DbConn)
	return repo.Create(context.Background(), debt)
}

func (t *testContext) theUserHasABudget(user string, body *godog.DocString) error {
	var payload dto.BudgetPayload
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("failed to parse budget payload: %w", err)
	}
	budget, err := payload.ToEntity()
	if err != nil {
		return err
	}
	budget.UserID = t.userID(user)

	repo := persistence.NewVariableExpenseRepository(t.db.DbConn)
	return repo.Create(context.Background(), budget)
}

func (t *testContext) theUserHasAGoal(user string, body *godog.DocString) error {
	var payload dto.GoalPayload
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("failed to parse goal payload: %w", err)
	}
	goal, err := payload.ToEntity(time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}
	goal.UserID = t.userID(user)

	repo := persistence.NewGoalRepository(t.db.DbConn)
	return repo.Create(context.Background(), goal)
}

func (t *testContext) theUserHasASinkingFund(user string, body *godog.DocString) error {
	var payload dto.SinkingFundPayload
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("failed to parse sinking fund payload: %w", err)
	}
	fund, err := payload.ToEntity(time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}
	fund.UserID = t.userID(user)

	repo := persistence.NewSinkingFundRepository(t.db.DbConn)
	return repo.Create(context.Background(), fund)
}

func (t *testContext) theUserHasSpentAgainstBudget(user, amount, budgetName, month string) error {
	userID := t.userID(user)

	budgetRepo := persistence.NewVariableExpenseRepository(t.db.DbConn)
	budgets, err := budgetRepo.FindByUserID(context.Background(), userID)
	if err != nil {
		return err
	}
	var budget *entity.VariableExpense
	for _, b := range budgets {
		if b.Name == budgetName {
			budget = b
			break
		}
	}
	if budget == nil {
		return fmt.Errorf("budget %q not found for user %q", budgetName, user)
	}

	spent, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid spend amount %q: %w", amount, err)
	}
	monthDate, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", month, err)
	}

	spendRepo := persistence.NewActualSpendRepository(t.db.DbConn)
	return spendRepo.RecordSpend(context.Background(), userID, budget.ID, monthDate, spent)
}

// Header step implementations

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

// Request step implementations

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, path, []byte(body.Content))
}

// iSendARequestToForUser substitutes the user label's assigned ID for the
// {user_id} placeholder before sending.
func (t *testContext) iSendARequestToForUser(method, path, user string) error {
	resolved := strings.ReplaceAll(path, "{user_id}", t.userID(user).String())
	return t.executeRequest(method, resolved, nil)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var body any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = string(raw)
		}
	}

	t.response = &response{status: resp.StatusCode, body: body}
	return nil
}

// Response assertion implementations

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %v", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if _, ok := t.response.body.(string); ok {
		return fmt.Errorf("response is not valid JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	raw, err := json.Marshal(t.response.body)
	if err != nil {
		return err
	}
	if !strings.Contains(string(raw), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveElements(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array: %v", field, value)
	}
	if len(list) != count {
		return fmt.Errorf("field %q expected %d elements, got %d", field, count, len(list))
	}
	return nil
}

// responseField walks a dot-separated path through the response body.
// Numeric segments index into arrays.
func (t *testContext) responseField(path string) (any, error) {
	if t.response == nil {
		return nil, fmt.Errorf("no response received")
	}

	current := t.response.body
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response at segment %q", path, segment)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("field %q: segment %q is not an array index", path, segment)
			}
			if index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field %q: index %d out of range (len %d)", path, index, len(node))
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q: cannot descend into %T at segment %q", path, current, segment)
		}
	}
	return current, nil
}

// Database assertion implementations

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	mdl, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	var count int64
	if err := t.db.DbConn.Model(mdl).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count rows in %q: %w", table, err)
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %q, found %d", quantity, table, count)
	}
	return nil
}
