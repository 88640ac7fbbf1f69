package helpers

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/heidelpay/heidelpay-go/models"
)

const (
	epcMaxHolder     = 70
	epcMaxRemittance = 140
	epcCurrency      = "EUR"
	DefaultQRSize    = 256
)

var epcMaxAmount = decimal.RequireFromString("999999999.99")

// TransferQR holds the bank transfer a customer has to make for a
// prepayment or invoice, rendered as an EPC069-12 ("GiroCode") QR code.
type TransferQR struct {
	BIC        string
	Holder     string
	IBAN       string
	Amount     decimal.Decimal
	Currency   string
	Descriptor string
}

// NewTransferQR reads the transfer details from the processing data of
// an authorization or charge.
func NewTransferQR(tx *models.BaseTransaction) (*TransferQR, error) {
	if tx == nil || tx.Processing == nil || tx.Iban() == "" || tx.Holder() == "" {
		return nil, errors.New("transaction has no bank account to transfer to")
	}
	return &TransferQR{
		BIC:        tx.Bic(),
		Holder:     tx.Holder(),
		IBAN:       tx.Iban(),
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		Descriptor: tx.Descriptor(),
	}, nil
}

// Payload builds the EPC069-12 text. Only euro transfers can be encoded.
func (q *TransferQR) Payload() (string, error) {
	if q.Currency != epcCurrency {
		return "", errors.Errorf("transfer qr codes only support %s, got %q", epcCurrency, q.Currency)
	}
	if !q.Amount.IsPositive() || q.Amount.GreaterThan(epcMaxAmount) {
		return "", errors.Errorf("transfer amount %s out of range", q.Amount)
	}

	lines := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		q.BIC,
		truncate(RemoveAccents(q.Holder), epcMaxHolder),
		strings.ReplaceAll(strings.ToUpper(q.IBAN), " ", ""),
		epcCurrency + q.Amount.StringFixed(2),
		"",
		"",
		truncate(q.Descriptor, epcMaxRemittance),
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}

// PNG encodes the payload as a size x size pixel image.
func (q *TransferQR) PNG(size int) ([]byte, error) {
	payload, err := q.Payload()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed encoding transfer qr")
	}
	return png, nil
}

// RemoveAccents strips diacritics, "Müller" becomes "Muller".
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
