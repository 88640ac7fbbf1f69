package sdkerr

// Response codes returned by the gateway.
const (
	CodeTransactionAuthorizeNotAllowed = "API.320.000.004"
	CodeTransactionChargeNotAllowed    = "API.330.000.004"
	CodeTransactionCancelNotAllowed    = "API.340.000.004"
	CodeTransactionShipNotAllowed      = "API.360.000.004"

	CodeChargedAmountHigherThanExpected = "API.330.100.007"
	CodeAlreadyCharged                  = "API.340.100.018"
	CodeCustomerIDRequired              = "API.320.100.008"
	CodeResourceNotOwnedByMerchant      = "API.320.000.002"

	CodePaymentNotFound      = "API.310.100.003"
	CodePaymentTypeNotFound  = "API.500.100.100"
	CodeCustomerDoesNotExist = "API.410.100.100"

	CodeFieldIsMissing = "API.710.000.002"
	CodeInvalidKey     = "API.710.000.003"

	// CodeUnknown is used when the gateway answers with an error status
	// but without an errors list.
	CodeUnknown = "API.000.000.000"
)
