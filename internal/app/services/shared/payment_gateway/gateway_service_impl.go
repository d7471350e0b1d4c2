package payment_gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const (
	signatureTimestampLayout = "20060102150405"
	hashRetryBackoff         = 500 * time.Millisecond
)

var hexDigestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

var (
	gatewayServiceInstance contracts.PaymentGatewayService
	onceGatewayService     sync.Once
)

type mockGatewayService struct {
	cfg    config.PaymentGateway
	client *http.Client
	Log    *zap.Logger
}

// NewMockGatewayService builds the adapter for the mock gateway. The signing
// scheme is the legacy concatenation contract, not a real gateway HMAC.
func NewMockGatewayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceGatewayService.Do(func() {
		timeout := time.Duration(internalConfig.PaymentGateway.HashTimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		gatewayServiceInstance = &mockGatewayService{
			cfg:    internalConfig.PaymentGateway,
			client: &http.Client{Timeout: timeout},
			Log:    logger,
		}
	})
	return gatewayServiceInstance
}

func (s *mockGatewayService) BuildPaymentLink(ctx context.Context, input *contracts.PaymentLinkInput) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("mockGatewayService.BuildPaymentLink called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderNoKey, input.OrderNo),
	)

	timestamp := input.Timestamp.Format(signatureTimestampLayout)
	amount := strconv.FormatInt(input.Amount, 10)
	payload := s.cfg.MerchantID + input.OrderNo + amount + timestamp + s.cfg.SecretKey

	signature, err := s.sign(ctx, payload)
	if err != nil {
		s.Log.Error("mockGatewayService.BuildPaymentLink error signing payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderNoKey, input.OrderNo),
			zap.Error(err),
		)
		return "", err
	}

	base, err := url.Parse(s.cfg.GatewayBaseURL)
	if err != nil {
		return "", exceptions.ErrHashServiceUnreachable(fmt.Errorf("invalid gateway base url: %w", err))
	}

	query := url.Values{}
	query.Set(constvars.GatewayParamMerchantID, s.cfg.MerchantID)
	query.Set(constvars.GatewayParamOrderNo, input.OrderNo)
	query.Set(constvars.GatewayParamAmount, amount)
	query.Set(constvars.GatewayParamProduct, input.ProductName)
	query.Set(constvars.GatewayParamBuyerName, input.BuyerName)
	query.Set(constvars.GatewayParamBuyerEmail, input.BuyerEmail)
	query.Set(constvars.GatewayParamTimestamp, timestamp)
	query.Set(constvars.GatewayParamSignature, signature)
	query.Set(constvars.GatewayParamReturnURL, s.cfg.ReturnURL)
	base.RawQuery = query.Encode()

	s.Log.Info("mockGatewayService.BuildPaymentLink completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderNoKey, input.OrderNo),
	)
	return base.String(), nil
}

// sign delegates to the configured hash service and falls back to a local
// digest when no service is configured. Both produce the same SHA-256 hex.
func (s *mockGatewayService) sign(ctx context.Context, payload string) (string, error) {
	if s.cfg.HashServiceURL == "" {
		sum := sha256.Sum256([]byte(payload))
		return hex.EncodeToString(sum[:]), nil
	}

	digest, err := s.requestDigest(ctx, payload)
	if err == nil {
		return digest, nil
	}

	s.Log.Warn("mockGatewayService.sign first attempt failed, retrying once",
		zap.Error(err),
	)
	select {
	case <-ctx.Done():
		return "", exceptions.ErrHashServiceUnreachable(ctx.Err())
	case <-time.After(hashRetryBackoff):
	}
	return s.requestDigest(ctx, payload)
}

func (s *mockGatewayService) requestDigest(ctx context.Context, payload string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.HashServiceURL, strings.NewReader(payload))
	if err != nil {
		return "", exceptions.ErrHashServiceUnreachable(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMETextPlain)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", exceptions.ErrHashServiceUnreachable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", exceptions.ErrHashServiceUnreachable(err)
	}
	if resp.StatusCode != constvars.StatusOK {
		return "", exceptions.ErrHashServiceBadStatus(resp.StatusCode)
	}

	digest := strings.ToLower(strings.TrimSpace(string(body)))
	if !hexDigestPattern.MatchString(digest) {
		return "", exceptions.ErrHashServiceUnreachable(fmt.Errorf("malformed digest from hash service"))
	}
	return digest, nil
}
