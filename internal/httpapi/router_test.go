package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/thevarp19/rams-tech-task/internal/calculator"
	"github.com/thevarp19/rams-tech-task/pkg/config"
)

func testServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()

	store := calculator.NewStore(calculator.Options{
		FullPrice:     cfg.FullPrice,
		ApartmentArea: cfg.ApartmentArea,
		DepositDate:   cfg.DepositDate,
	})

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	srv := httptest.NewServer(NewRouter(Dependencies{Cfg: cfg, Store: store, Log: log}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig() config.Config {
	return config.Config{
		FullPrice:     25_558_146,
		ApartmentArea: 39,
		DepositDate:   time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSessionLifecycle(t *testing.T) {
	srv := testServer(t, testConfig())

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody(t, resp)
	sessionID := created["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	payments := created["payments"].([]any)
	require.Len(t, payments, 14) // deposit + prepayment + 12 installments

	first := payments[0].(map[string]any)
	require.Equal(t, "Задаток", first["label"])
	require.Equal(t, "Август 2025", first["dateDisplay"])
	require.Equal(t, "5 000 000 ₸", first["amountDisplay"])

	resp, err = http.Get(srv.URL + "/v1/sessions/" + sessionID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody(t, resp)
	require.Equal(t, sessionID, fetched["sessionId"])
}

func TestEditAmountRoundTrip(t *testing.T) {
	srv := testServer(t, testConfig())

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	created := decodeBody(t, resp)
	sessionID := created["sessionId"].(string)
	payments := created["payments"].([]any)
	installment := payments[2].(map[string]any)

	url := fmt.Sprintf("%s/v1/sessions/%s/payments/%s/amount", srv.URL, sessionID, installment["id"])
	resp, err = http.Post(url, "application/json", bytes.NewBufferString(`{"amount": 1000000}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["applied"])

	// the installment total is conserved exactly after the edit
	var sum float64
	for _, raw := range body["payments"].([]any) {
		p := raw.(map[string]any)
		if p["kind"] == "installment" {
			sum += p["amount"].(float64)
		}
	}
	require.Equal(t, float64(25_558_146-5_000_000-5_000_000), sum)

	// and a toast is waiting
	resp, err = http.Get(srv.URL + "/v1/sessions/" + sessionID + "/notifications")
	require.NoError(t, err)
	toasts := decodeBody(t, resp)["items"].([]any)
	require.Len(t, toasts, 1)
	require.Equal(t, "Сумма обновлена", toasts[0].(map[string]any)["message"])
}

func TestRemoveLastInstallmentRejected(t *testing.T) {
	srv := testServer(t, testConfig())

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	created := decodeBody(t, resp)
	sessionID := created["sessionId"].(string)
	payments := created["payments"].([]any)

	client := srv.Client()

	// remove installments until one is left
	for i := 2; i < len(payments)-1; i++ {
		p := payments[i].(map[string]any)
		req, _ := http.NewRequest(http.MethodDelete,
			fmt.Sprintf("%s/v1/sessions/%s/payments/%s", srv.URL, sessionID, p["id"]), nil)
		resp, err := client.Do(req)
		require.NoError(t, err)
		body := decodeBody(t, resp)
		require.Equal(t, true, body["applied"])
	}

	last := payments[len(payments)-1].(map[string]any)
	req, _ := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/v1/sessions/%s/payments/%s", srv.URL, sessionID, last["id"]), nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["applied"])
	require.Equal(t, "CANNOT_REMOVE_LAST", body["code"])
}

func TestSummaryEndpoint(t *testing.T) {
	srv := testServer(t, testConfig())

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	sessionID := decodeBody(t, resp)["sessionId"].(string)

	resp, err = http.Get(srv.URL + "/v1/sessions/" + sessionID + "/summary")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	metrics := body["metrics"].(map[string]any)
	require.Equal(t, float64(25_558_146), metrics["totalCost"])
	require.Equal(t, float64(10_000_000), metrics["depositPlusPrepayment"])
	require.NotEmpty(t, metrics["yearlyBreakdown"])
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	cfg := testConfig()
	cfg.AuthSecret = "s3cret"
	srv := testServer(t, cfg)

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// healthz stays open
	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
