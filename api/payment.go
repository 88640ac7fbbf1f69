package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/thedevsaddam/govalidator"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/heidelpay"
	"github.com/heidelpay/heidelpay-go/helpers"
	"github.com/heidelpay/heidelpay-go/middlewares"
	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type paymentResponse struct {
	*models.Payment
	Customer      *models.Customer      `json:"customer,omitempty"`
	PaymentType   models.PaymentType    `json:"paymentType,omitempty"`
	Authorization *models.Authorization `json:"authorization,omitempty"`
	Charges       []*models.Charge      `json:"charges,omitempty"`
	Shipments     []*models.Shipment    `json:"shipments,omitempty"`
}

func GetPayment(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["payment_id"]

	payment, err := ctx.Heidelpay.FetchPayment(r.Context(), paymentID)
	if err != nil {
		w.WriteError(err, middlewares.Responses.PaymentNotFound)
		return
	}

	w.WriteJSON(http.StatusOK, paymentResponse{
		Payment:       payment,
		Customer:      payment.Customer,
		PaymentType:   payment.PaymentType,
		Authorization: payment.Authorization,
		Charges:       payment.Charges,
		Shipments:     payment.Shipments,
	}, nil, "")
}

var transferQRRules = govalidator.MapData{
	"size": []string{"numeric_between:64,1024"},
}

type TransferQROpts struct {
	Size int `schema:"size"`
}

// GetTransferQR renders the bank transfer of a prepayment or invoice as
// an EPC QR code the customer can scan with a banking app. The transfer
// details come from the authorization, or from the first charge of
// payments that were charged directly.
func GetTransferQR(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   transferQRRules,
	}
	v := govalidator.New(validatorOpts)
	if errs := v.Validate(); len(errs) > 0 {
		w.WriteJSON(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations.In(w.Language))
		return
	}

	var opts TransferQROpts
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&opts, r.URL.Query()); err != nil {
		w.WriteJSON(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations.In(w.Language))
		return
	}
	if opts.Size == 0 {
		opts.Size = ctx.Config.QRSize
	}

	tx, err := transferTransaction(r.Context(), ctx.Heidelpay, mux.Vars(r)["payment_id"])
	if err != nil {
		w.WriteError(err, middlewares.Responses.NoTransferAccount)
		return
	}

	qr, err := helpers.NewTransferQR(tx)
	if err != nil {
		w.WriteJSON(http.StatusNotFound, nil, err, middlewares.Responses.NoTransferAccount.In(w.Language))
		return
	}
	png, err := qr.PNG(opts.Size)
	if err != nil {
		w.WriteJSON(http.StatusUnprocessableEntity, nil, err, middlewares.Responses.NoTransferAccount.In(w.Language))
		return
	}
	w.PNG(http.StatusOK, png)
}

func transferTransaction(ctx context.Context, client *heidelpay.Client, paymentID string) (*models.BaseTransaction, error) {
	payment, err := client.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	switch {
	case payment.Authorization != nil:
		authorization, err := client.FetchAuthorization(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		return &authorization.BaseTransaction, nil
	case len(payment.Charges) > 0:
		charge, err := client.FetchCharge(ctx, paymentID, payment.Charges[0].ID)
		if err != nil {
			return nil, err
		}
		return &charge.BaseTransaction, nil
	default:
		return nil, sdkerr.NewSDKErrorf("payment %s has no authorization or charge", paymentID)
	}
}
