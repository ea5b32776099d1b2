package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"divvy/internal/auth"
	"divvy/internal/service"
	"divvy/internal/storage/sqlite"
)

const testJWTSecret = "divvy-test-secret-key-1234567890ab"

// newTestServer wires the full handler stack against a temp SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "divvy-handlers-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	mux := http.NewServeMux()
	NewAuthHandler(authenticator, jwtManager, store).Register(mux)
	NewGroupHandler(service.NewGroupService(store), jwtManager).Register(mux)
	NewExpenseHandler(service.NewExpenseService(store), jwtManager).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// doJSON issues a request with an optional bearer token and JSON body, and
// decodes the JSON response into out (if non-nil).
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type groupPayload struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Members []userPayload `json:"members"`
}

type splitPayload struct {
	User  userPayload `json:"user"`
	Share float64     `json:"share"`
}

type expensePayload struct {
	ID           string         `json:"id"`
	Description  string         `json:"description"`
	Amount       float64        `json:"amount"`
	PaidBy       userPayload    `json:"paidBy"`
	SplitBetween []splitPayload `json:"splitBetween"`
}

type balancePayload struct {
	User       userPayload `json:"user"`
	Paid       float64     `json:"paid"`
	Owes       float64     `json:"owes"`
	NetBalance float64     `json:"netBalance"`
}

// registerAndLogin registers a user and returns their ID and a bearer token.
func registerAndLogin(t *testing.T, server *httptest.Server, name, email string) (string, string) {
	t.Helper()

	var user userPayload
	status := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, &user)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		Token string `json:"token"`
	}
	status = doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	return user.ID, login.Token
}

func TestRegisterValidation(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"name": "Alice"}},
		{"invalid email", map[string]string{"name": "Alice", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]string{"name": "Alice", "email": "alice@example.com", "password": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp struct {
				Message string `json:"message"`
			}
			status := doJSON(t, server, http.MethodPost, "/auth/register", "", tt.body, &errResp)
			require.Equal(t, http.StatusBadRequest, status)
			require.NotEmpty(t, errResp.Message)
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		registerAndLogin(t, server, "Alice", "dup@example.com")
		status := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
			"name":     "Alice Again",
			"email":    "dup@example.com",
			"password": "password123",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	server := newTestServer(t)

	var raw map[string]any
	status := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, &raw)
	require.Equal(t, http.StatusCreated, status)
	require.NotContains(t, raw, "password")
	require.NotContains(t, raw, "passwordHash")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server := newTestServer(t)
	registerAndLogin(t, server, "Alice", "alice@example.com")

	status := doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestProfileRequiresToken(t *testing.T) {
	server := newTestServer(t)
	_, token := registerAndLogin(t, server, "Alice", "alice@example.com")

	status := doJSON(t, server, http.MethodGet, "/auth/profile", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, server, http.MethodGet, "/auth/profile", "garbage-token", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	var profile userPayload
	status = doJSON(t, server, http.MethodGet, "/auth/profile", token, nil, &profile)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice@example.com", profile.Email)
}

func TestGroupLifecycle(t *testing.T) {
	server := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, server, "Alice", "alice@example.com")
	_, bobToken := registerAndLogin(t, server, "Bob", "bob@example.com")

	var group groupPayload
	status := doJSON(t, server, http.MethodPost, "/groups", aliceToken, map[string]string{"name": "Roommates"}, &group)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, group.Members, 1)
	require.Equal(t, aliceID, group.Members[0].ID)

	t.Run("list shows only caller's groups", func(t *testing.T) {
		var groups []groupPayload
		status := doJSON(t, server, http.MethodGet, "/groups", aliceToken, nil, &groups)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, groups, 1)

		status = doJSON(t, server, http.MethodGet, "/groups", bobToken, nil, &groups)
		require.Equal(t, http.StatusOK, status)
		require.Empty(t, groups)
	})

	t.Run("non-member cannot read the group", func(t *testing.T) {
		status := doJSON(t, server, http.MethodGet, "/groups/"+group.ID, bobToken, nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		status := doJSON(t, server, http.MethodGet, "/groups/nonexistent-id", aliceToken, nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("membership management", func(t *testing.T) {
		// Bob can't add himself before joining.
		status := doJSON(t, server, http.MethodPost, "/groups/"+group.ID+"/users", bobToken,
			map[string]string{"email": "bob@example.com"}, nil)
		require.Equal(t, http.StatusUnauthorized, status)

		// Unknown email.
		status = doJSON(t, server, http.MethodPost, "/groups/"+group.ID+"/users", aliceToken,
			map[string]string{"email": "nobody@example.com"}, nil)
		require.Equal(t, http.StatusNotFound, status)

		// Alice adds Bob.
		var updated groupPayload
		status = doJSON(t, server, http.MethodPost, "/groups/"+group.ID+"/users", aliceToken,
			map[string]string{"email": "bob@example.com"}, &updated)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, updated.Members, 2)

		// Adding Bob again conflicts.
		status = doJSON(t, server, http.MethodPost, "/groups/"+group.ID+"/users", aliceToken,
			map[string]string{"email": "bob@example.com"}, nil)
		require.Equal(t, http.StatusConflict, status)

		// Bob can now read the group.
		status = doJSON(t, server, http.MethodGet, "/groups/"+group.ID, bobToken, nil, nil)
		require.Equal(t, http.StatusOK, status)
	})
}

func TestExpenseEndpoints(t *testing.T) {
	server := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, server, "Alice", "alice@example.com")
	bobID, _ := registerAndLogin(t, server, "Bob", "bob@example.com")
	carolID, _ := registerAndLogin(t, server, "Carol", "carol@example.com")
	_, malloryToken := registerAndLogin(t, server, "Mallory", "mallory@example.com")

	var group groupPayload
	status := doJSON(t, server, http.MethodPost, "/groups", aliceToken, map[string]string{"name": "Trip"}, &group)
	require.Equal(t, http.StatusCreated, status)
	for _, email := range []string{"bob@example.com", "carol@example.com"} {
		status = doJSON(t, server, http.MethodPost, "/groups/"+group.ID+"/users", aliceToken,
			map[string]string{"email": email}, nil)
		require.Equal(t, http.StatusOK, status)
	}

	t.Run("beneficiary outside the group is 401, not 400", func(t *testing.T) {
		var outsider userPayload
		status := doJSON(t, server, http.MethodGet, "/auth/profile", malloryToken, nil, &outsider)
		require.Equal(t, http.StatusOK, status)

		status = doJSON(t, server, http.MethodPost, "/expenses/"+group.ID, aliceToken, map[string]any{
			"description":  "Dinner",
			"amount":       30,
			"splitBetween": []string{aliceID, outsider.ID},
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("empty split set is 400", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/expenses/"+group.ID, aliceToken, map[string]any{
			"description":  "Dinner",
			"amount":       30,
			"splitBetween": []string{},
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/expenses/nonexistent-id", aliceToken, map[string]any{
			"description":  "Dinner",
			"amount":       30,
			"splitBetween": []string{aliceID},
		}, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	var expense expensePayload
	t.Run("create resolves payer and beneficiaries", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/expenses/"+group.ID, aliceToken, map[string]any{
			"description":  "Hotel",
			"amount":       90,
			"splitBetween": []string{aliceID, bobID, carolID},
		}, &expense)
		require.Equal(t, http.StatusCreated, status)
		require.Equal(t, aliceID, expense.PaidBy.ID) // defaults to caller
		require.Len(t, expense.SplitBetween, 3)
		for _, split := range expense.SplitBetween {
			require.InDelta(t, 30, split.Share, 0.01)
			require.NotEmpty(t, split.User.Name)
		}
	})

	t.Run("list returns the group's expenses", func(t *testing.T) {
		var expenses []expensePayload
		status := doJSON(t, server, http.MethodGet, "/expenses/"+group.ID, aliceToken, nil, &expenses)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, expenses, 1)
		require.Equal(t, "Hotel", expenses[0].Description)
	})

	t.Run("balance sheet", func(t *testing.T) {
		// Second expense: amount=50 paidBy=Bob split [Bob, Carol].
		status := doJSON(t, server, http.MethodPost, "/expenses/"+group.ID, aliceToken, map[string]any{
			"description":  "Gas",
			"amount":       50,
			"paidBy":       bobID,
			"splitBetween": []string{bobID, carolID},
		}, nil)
		require.Equal(t, http.StatusCreated, status)

		var balances []balancePayload
		status = doJSON(t, server, http.MethodGet, "/expenses/"+group.ID+"/balance-sheet", aliceToken, nil, &balances)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, balances, 3)

		byID := make(map[string]balancePayload)
		for _, b := range balances {
			byID[b.User.ID] = b
		}
		require.InDelta(t, 60, byID[aliceID].NetBalance, 0.01)
		require.InDelta(t, -5, byID[bobID].NetBalance, 0.01)
		require.InDelta(t, -55, byID[carolID].NetBalance, 0.01)

		// Idempotent between writes.
		var again []balancePayload
		status = doJSON(t, server, http.MethodGet, "/expenses/"+group.ID+"/balance-sheet", aliceToken, nil, &again)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, balances, again)
	})

	t.Run("expense routes require auth", func(t *testing.T) {
		status := doJSON(t, server, http.MethodGet, "/expenses/"+group.ID, "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}
