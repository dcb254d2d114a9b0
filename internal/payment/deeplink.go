package payment

import (
	"net/url"
)

// StatusUnknown stands in when the provider redirect carried no status
// under any of its known parameter names.
const StatusUnknown = "unknown"

// CallbackResult is the canonical form of a payment redirect. Mercado Pago
// reports the same facts under several parameter names depending on flow;
// this type holds one value per fact.
type CallbackResult struct {
	Status            string
	PaymentID         string
	PreferenceID      string
	MerchantOrderID   string
	ExternalReference string
	PaymentType       string
}

// statusAliases and paymentIDAliases list the accepted parameter names in
// precedence order: the first present non-empty value wins.
var (
	statusAliases    = []string{"status", "collection_status", "payment_status"}
	paymentIDAliases = []string{"payment_id", "collection_id"}
)

// ResolveCallback resolves the alias parameter names of a payment redirect
// to one canonical status and payment id.
func ResolveCallback(values url.Values) CallbackResult {
	r := CallbackResult{
		Status:            firstNonEmpty(values, statusAliases...),
		PaymentID:         firstNonEmpty(values, paymentIDAliases...),
		PreferenceID:      values.Get("preference_id"),
		MerchantOrderID:   values.Get("merchant_order_id"),
		ExternalReference: values.Get("external_reference"),
		PaymentType:       values.Get("payment_type"),
	}
	if r.Status == "" {
		r.Status = StatusUnknown
	}
	return r
}

// ResolveCallbackURL resolves a full deep link such as
// masdeporte://payment?collection_status=approved&collection_id=123.
func ResolveCallbackURL(raw string) (CallbackResult, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return CallbackResult{}, err
	}
	return ResolveCallback(u.Query()), nil
}

// IsApproved reports whether a canonical status means the deposit was paid.
func IsApproved(status string) bool {
	return status == "success" || status == "approved"
}

func firstNonEmpty(values url.Values, names ...string) string {
	for _, name := range names {
		if v := values.Get(name); v != "" {
			return v
		}
	}
	return ""
}
