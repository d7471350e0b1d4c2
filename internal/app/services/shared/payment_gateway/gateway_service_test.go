package payment_gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestGatewayService(cfg config.PaymentGateway) *mockGatewayService {
	return &mockGatewayService{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Second},
		Log:    zap.NewNop(),
	}
}

func testLinkInput() *contracts.PaymentLinkInput {
	return &contracts.PaymentLinkInput{
		OrderNo:     "order-123",
		Amount:      15000,
		ProductName: "Teleconsultation",
		BuyerName:   "Patient One",
		BuyerEmail:  "patient1@example.com",
		Timestamp:   time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC),
	}
}

func TestMockGatewayService_BuildPaymentLink(t *testing.T) {
	cfg := config.PaymentGateway{
		MerchantID:     "MERCHANT01",
		SecretKey:      "topsecret",
		GatewayBaseURL: "https://pay.example.com/checkout",
		ReturnURL:      "https://clinic.example.com/payments/return",
		ProductName:    "Teleconsultation",
	}
	service := newTestGatewayService(cfg)
	input := testLinkInput()

	link, err := service.BuildPaymentLink(context.Background(), input)
	assert.NoError(t, err)

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, "pay.example.com", parsed.Host)
	assert.Equal(t, "/checkout", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "MERCHANT01", query.Get(constvars.GatewayParamMerchantID))
	assert.Equal(t, "order-123", query.Get(constvars.GatewayParamOrderNo))
	assert.Equal(t, "15000", query.Get(constvars.GatewayParamAmount))
	assert.Equal(t, "Teleconsultation", query.Get(constvars.GatewayParamProduct))
	assert.Equal(t, "Patient One", query.Get(constvars.GatewayParamBuyerName))
	assert.Equal(t, "patient1@example.com", query.Get(constvars.GatewayParamBuyerEmail))
	assert.Equal(t, "20260829143005", query.Get(constvars.GatewayParamTimestamp))
	assert.Equal(t, cfg.ReturnURL, query.Get(constvars.GatewayParamReturnURL))

	signature := query.Get(constvars.GatewayParamSignature)
	assert.Regexp(t, `^[0-9a-f]{64}$`, signature)

	sum := sha256.Sum256([]byte("MERCHANT01" + "order-123" + "15000" + "20260829143005" + "topsecret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), signature, "local fallback signature must be the digest of the concatenated payload")
}

func TestMockGatewayService_SignViaHashService(t *testing.T) {
	t.Run("Delegates the payload and uses the returned digest", func(t *testing.T) {
		var received string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			received = string(body)
			sum := sha256.Sum256(body)
			fmt.Fprint(w, hex.EncodeToString(sum[:]))
		}))
		defer server.Close()

		service := newTestGatewayService(config.PaymentGateway{
			MerchantID:     "MERCHANT01",
			SecretKey:      "topsecret",
			GatewayBaseURL: "https://pay.example.com/checkout",
			HashServiceURL: server.URL,
		})

		link, err := service.BuildPaymentLink(context.Background(), testLinkInput())
		assert.NoError(t, err)
		assert.Equal(t, "MERCHANT01order-1231500020260829143005topsecret", received)

		parsed, _ := url.Parse(link)
		sum := sha256.Sum256([]byte(received))
		assert.Equal(t, hex.EncodeToString(sum[:]), parsed.Query().Get(constvars.GatewayParamSignature))
	})

	t.Run("Retries once after a failed attempt", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			body, _ := io.ReadAll(r.Body)
			sum := sha256.Sum256(body)
			fmt.Fprint(w, hex.EncodeToString(sum[:]))
		}))
		defer server.Close()

		service := newTestGatewayService(config.PaymentGateway{
			MerchantID:     "MERCHANT01",
			SecretKey:      "topsecret",
			GatewayBaseURL: "https://pay.example.com/checkout",
			HashServiceURL: server.URL,
		})

		_, err := service.BuildPaymentLink(context.Background(), testLinkInput())
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("Gives up after the retry also fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		service := newTestGatewayService(config.PaymentGateway{
			MerchantID:     "MERCHANT01",
			SecretKey:      "topsecret",
			GatewayBaseURL: "https://pay.example.com/checkout",
			HashServiceURL: server.URL,
		})

		_, err := service.BuildPaymentLink(context.Background(), testLinkInput())
		assert.Error(t, err)
	})

	t.Run("Rejects a malformed digest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not-a-digest")
		}))
		defer server.Close()

		service := newTestGatewayService(config.PaymentGateway{
			MerchantID:     "MERCHANT01",
			SecretKey:      "topsecret",
			GatewayBaseURL: "https://pay.example.com/checkout",
			HashServiceURL: server.URL,
		})

		_, err := service.BuildPaymentLink(context.Background(), testLinkInput())
		assert.Error(t, err)
	})
}
