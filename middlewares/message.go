package middlewares

import (
	"net/http"

	"golang.org/x/text/language"
)

var Responses = struct {
	FailedValidations   *NewRM
	InternalServerError *NewRM
	InvalidEvent        *NewRM
	UnknownPublicKey    *NewRM
	PaymentNotFound     *NewRM
	NoTransferAccount   *NewRM
	GatewayRejected     *NewRM
}{
	FailedValidations: &NewRM{
		Language.English: "Failed field validations",
		Language.German:  "Die Validierung der Felder ist fehlgeschlagen",
	},
	InternalServerError: &NewRM{
		Language.English: "Internal server error",
		Language.German:  "Interner Serverfehler",
	},
	InvalidEvent: &NewRM{
		Language.English: "Invalid webhook event",
		Language.German:  "Ungültiges Webhook-Ereignis",
	},
	UnknownPublicKey: &NewRM{
		Language.English: "Event was sent for another merchant key",
		Language.German:  "Das Ereignis gehört zu einem anderen Händlerschlüssel",
	},
	PaymentNotFound: &NewRM{
		Language.English: "Payment not found",
		Language.German:  "Die Zahlung wurde nicht gefunden",
	},
	NoTransferAccount: &NewRM{
		Language.English: "Payment has no bank account to transfer to",
		Language.German:  "Für die Zahlung ist kein Überweisungskonto hinterlegt",
	},
	GatewayRejected: &NewRM{
		Language.English: "The payment gateway rejected the request",
		Language.German:  "Das Zahlungssystem hat die Anfrage abgelehnt",
	},
}

type NewRM map[string]string

// In returns the message in lang, falling back to English.
func (m *NewRM) In(lang string) string {
	if msg, ok := (*m)[lang]; ok {
		return msg
	}
	return (*m)[Language.English]
}

var Language = struct {
	English string
	German  string
}{
	English: "en",
	German:  "de",
}

var LanguageMap = map[string]string{
	Language.German:  "German",
	Language.English: "English",
}

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.German})

// RequestLanguage picks the response language from the Accept-Language
// header.
func RequestLanguage(r *http.Request) string {
	tag, _ := language.MatchStrings(languageMatcher, r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	if _, ok := LanguageMap[base.String()]; ok {
		return base.String()
	}
	return Language.English
}
