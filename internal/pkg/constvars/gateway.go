package constvars

// Query parameter names of the mock gateway redirect URL. The scheme mirrors
// the legacy gateway contract and is a placeholder, not an audited protocol.
const (
	GatewayParamMerchantID = "CPID"
	GatewayParamOrderNo    = "ORDERNO"
	GatewayParamAmount     = "AMOUNT"
	GatewayParamProduct    = "PRODUCT_NM"
	GatewayParamBuyerName  = "BUYER_NM"
	GatewayParamBuyerEmail = "BUYER_EMAIL"
	GatewayParamTimestamp  = "TIMESTAMP"
	GatewayParamSignature  = "SIGNATURE"
	GatewayParamReturnURL  = "RETURN_URL"
	GatewayParamResult     = "RESULT"
)

const (
	GatewayCallbackResultSuccess = "SUCCESS"
	GatewayCallbackAckBody       = "<RESULT>SUCCESS</RESULT>"
)
