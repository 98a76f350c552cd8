package httptransport_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/domain"
	httptransport "github.com/nursultanov/budgetbook/internal/transport/http"
	"github.com/nursultanov/budgetbook/internal/transport/http/handler"
	"github.com/nursultanov/budgetbook/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "router-test-jwt-secret-32-chars!!"

// ---- in-memory stores ----

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByConfirmationToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ConfirmationToken != nil && *u.ConfirmationToken == token {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) MarkConfirmed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Confirmed = true
	u.ConfirmationToken = nil
	return nil
}

func (r *memUserRepo) SetConfirmationToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ConfirmationToken = &token
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ConfirmationToken = nil
	return nil
}

func (r *memUserRepo) DeleteStaleUnconfirmed(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, u := range r.users {
		if !u.Confirmed && u.CreatedAt.Before(cutoff) {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

type memBudgetRepo struct {
	mu      sync.Mutex
	seq     int
	budgets map[string]*domain.Budget
}

func newMemBudgetRepo() *memBudgetRepo {
	return &memBudgetRepo{budgets: map[string]*domain.Budget{}}
}

func (r *memBudgetRepo) Create(_ context.Context, budget *domain.Budget) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *budget
	stored.ID = fmt.Sprintf("budget-%d", r.seq)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.budgets[stored.ID] = &stored
	return &stored, nil
}

func (r *memBudgetRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

func (r *memBudgetRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Budget{}
	for _, b := range r.budgets {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBudgetRepo) Update(_ context.Context, budget *domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[budget.ID]; !ok {
		return domain.ErrBudgetNotFound
	}
	r.budgets[budget.ID] = budget
	return nil
}

func (r *memBudgetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(r.budgets, id)
	return nil
}

type memExpenseRepo struct {
	mu       sync.Mutex
	seq      int
	expenses map[string]*domain.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: map[string]*domain.Expense{}}
}

func (r *memExpenseRepo) Create(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *expense
	stored.ID = fmt.Sprintf("expense-%d", r.seq)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.expenses[stored.ID] = &stored
	return &stored, nil
}

func (r *memExpenseRepo) FindByID(_ context.Context, id string) (*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

func (r *memExpenseRepo) Update(_ context.Context, expense *domain.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	r.expenses[expense.ID] = expense
	return nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(r.expenses, id)
	return nil
}

type discardSender struct{}

func (discardSender) Send(_ context.Context, _, _, _ string) error { return nil }

// ---- wiring ----

func newTestServer() (*gin.Engine, *memUserRepo) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	codec := auth.NewTokenCodec([]byte(testSecret))

	users := newMemUserRepo()
	budgets := newMemBudgetRepo()
	expenses := newMemExpenseRepo()

	authUC := usecase.NewAuthUsecase(users, auth.NewBcryptHasher(), codec, discardSender{}, logger, "http://localhost:3000")
	authH := handler.NewAuthHandler(authUC, logger, true)
	budgetH := handler.NewBudgetHandler(usecase.NewBudgetUsecase(budgets), logger)
	expenseH := handler.NewExpenseHandler(usecase.NewExpenseUsecase(expenses), logger)

	return httptransport.NewRouter(logger, authH, budgetH, expenseH, codec, users, budgets, expenses), users
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
}

// signUpAndLogin walks a user through the whole lifecycle and returns a
// session token.
func signUpAndLogin(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()

	w := do(r, http.MethodPost, "/auth/create-account", "",
		fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password))
	if w.Code != http.StatusCreated {
		t.Fatalf("create-account: status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		Email struct {
			Token string `json:"token"`
		} `json:"email"`
	}
	decode(t, w, &created)

	w = do(r, http.MethodPost, "/auth/confirm-account", "",
		fmt.Sprintf(`{"token":%q}`, created.Email.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("confirm-account: status = %d, body %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", w.Code, w.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	decode(t, w, &session)
	return session.Token
}

func createBudget(t *testing.T, r *gin.Engine, token, name string, amount float64) string {
	t.Helper()
	w := do(r, http.MethodPost, "/budgets", token,
		fmt.Sprintf(`{"name":%q,"amount":%g}`, name, amount))
	if w.Code != http.StatusCreated {
		t.Fatalf("create budget: status = %d, body %s", w.Code, w.Body.String())
	}
	var b struct {
		ID string `json:"id"`
	}
	decode(t, w, &b)
	return b.ID
}

func createExpense(t *testing.T, r *gin.Engine, token, budgetID, name string, amount float64) string {
	t.Helper()
	w := do(r, http.MethodPost, "/budgets/"+budgetID+"/expenses", token,
		fmt.Sprintf(`{"name":%q,"amount":%g}`, name, amount))
	if w.Code != http.StatusCreated {
		t.Fatalf("create expense: status = %d, body %s", w.Code, w.Body.String())
	}
	var e struct {
		ID string `json:"id"`
	}
	decode(t, w, &e)
	return e.ID
}

// ---- scenarios ----

func TestBudgets_NoAuthorizationHeader_Returns401(t *testing.T) {
	r, _ := newTestServer()

	w := do(r, http.MethodGet, "/budgets", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if want := `{"error":"authentication required"}`; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestLogin_BeforeConfirmation_Rejected(t *testing.T) {
	r, _ := newTestServer()

	w := do(r, http.MethodPost, "/auth/create-account", "",
		`{"name":"山田太郎","email":"test@example.com","password":"password"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create-account: status = %d", w.Code)
	}

	w = do(r, http.MethodPost, "/auth/login", "",
		`{"email":"test@example.com","password":"password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "account not activated") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestFullLifecycle_RegisterConfirmLoginProfile(t *testing.T) {
	r, _ := newTestServer()
	token := signUpAndLogin(t, r, "山田太郎", "test@example.com", "password")

	w := do(r, http.MethodGet, "/auth/user", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /auth/user: status = %d", w.Code)
	}
	var profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	decode(t, w, &profile)
	if profile.Name != "山田太郎" || profile.Email != "test@example.com" {
		t.Errorf("profile = %+v", profile)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("profile response leaks password material")
	}
}

func TestConfirm_SecondTimeWithSameCode_Rejected(t *testing.T) {
	r, _ := newTestServer()

	w := do(r, http.MethodPost, "/auth/create-account", "",
		`{"name":"someone","email":"test@example.com","password":"password"}`)
	var created struct {
		Email struct {
			Token string `json:"token"`
		} `json:"email"`
	}
	decode(t, w, &created)

	body := fmt.Sprintf(`{"token":%q}`, created.Email.Token)
	if w := do(r, http.MethodPost, "/auth/confirm-account", "", body); w.Code != http.StatusOK {
		t.Fatalf("first confirm: status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/auth/confirm-account", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("second confirm: status = %d, want 401", w.Code)
	}
}

func TestExpense_UnderDifferentBudget_LooksNonexistent(t *testing.T) {
	r, _ := newTestServer()
	token := signUpAndLogin(t, r, "someone", "test@example.com", "password")

	budgetA := createBudget(t, r, token, "groceries", 500)
	budgetB := createBudget(t, r, token, "travel", 2000)
	expenseB := createExpense(t, r, token, budgetB, "flight", 350)

	mismatch := do(r, http.MethodGet, "/budgets/"+budgetA+"/expenses/"+expenseB, token, "")
	missing := do(r, http.MethodGet, "/budgets/"+budgetA+"/expenses/expense-999", token, "")

	if mismatch.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", mismatch.Code)
	}
	if mismatch.Body.String() != missing.Body.String() {
		t.Errorf("mismatch body %q differs from missing body %q",
			mismatch.Body.String(), missing.Body.String())
	}
}

func TestBudget_OtherUsers_NotVisible(t *testing.T) {
	r, _ := newTestServer()
	tokenA := signUpAndLogin(t, r, "owner", "owner@example.com", "password1")
	tokenB := signUpAndLogin(t, r, "intruder", "intruder@example.com", "password2")

	budgetID := createBudget(t, r, tokenA, "groceries", 500)

	w := do(r, http.MethodGet, "/budgets/"+budgetID, tokenB, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for someone else's budget", w.Code)
	}
}

func TestBudget_UpdateAndDelete(t *testing.T) {
	r, _ := newTestServer()
	token := signUpAndLogin(t, r, "someone", "test@example.com", "password")
	budgetID := createBudget(t, r, token, "groceries", 500)

	w := do(r, http.MethodPut, "/budgets/"+budgetID, token, `{"name":"food","amount":650}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}
	var updated struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}
	decode(t, w, &updated)
	if updated.Name != "food" || updated.Amount != 650 {
		t.Errorf("updated = %+v", updated)
	}

	if w := do(r, http.MethodDelete, "/budgets/"+budgetID, token, ""); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/budgets/"+budgetID, token, ""); w.Code != http.StatusNotFound {
		t.Errorf("after delete: status = %d, want 404", w.Code)
	}
}

func TestPasswordReset_Flow(t *testing.T) {
	r, users := newTestServer()
	signUpAndLogin(t, r, "someone", "test@example.com", "password")

	w := do(r, http.MethodPost, "/auth/forgot-password", "", `{"email":"test@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("forgot-password: status = %d", w.Code)
	}

	// The reset code travels by email only; read it from the store.
	user, err := users.FindByEmail(context.Background(), "test@example.com")
	if err != nil || user.ConfirmationToken == nil {
		t.Fatalf("no pending reset code: %v", err)
	}
	code := *user.ConfirmationToken

	w = do(r, http.MethodPost, "/auth/reset-password", "",
		fmt.Sprintf(`{"token":%q,"password":"brand-new-password"}`, code))
	if w.Code != http.StatusOK {
		t.Fatalf("reset-password: status = %d, body %s", w.Code, w.Body.String())
	}

	// Old password is out, new one works.
	w = do(r, http.MethodPost, "/auth/login", "",
		`{"email":"test@example.com","password":"password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: status = %d", w.Code)
	}
	w = do(r, http.MethodPost, "/auth/login", "",
		`{"email":"test@example.com","password":"brand-new-password"}`)
	if w.Code != http.StatusOK {
		t.Errorf("new password rejected: status = %d, body %s", w.Code, w.Body.String())
	}
}
