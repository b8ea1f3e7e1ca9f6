package checkout

import (
	"time"

	"github.com/MrJamesThe3rd/till/internal/checkout"
)

type lineResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type transactionResponse struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Items     []lineResponse `json:"items"`
	TaxRate   string         `json:"tax_rate"`
	Subtotal  int64          `json:"subtotal"`
	Tax       int64          `json:"tax"`
	Total     int64          `json:"total"`
	Receipt   string         `json:"receipt"`
}

func toResponse(tx *checkout.Transaction, opts checkout.ReceiptOptions) transactionResponse {
	resp := transactionResponse{
		ID:        tx.ID,
		Timestamp: tx.Timestamp,
		Items:     make([]lineResponse, len(tx.Lines)),
		TaxRate:   tx.TaxRate.String(),
		Subtotal:  tx.Subtotal,
		Tax:       tx.Tax,
		Total:     tx.Total,
		Receipt:   checkout.FormatReceipt(tx, opts),
	}

	for i, l := range tx.Lines {
		resp.Items[i] = lineResponse{
			Code:     l.Code,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Amount:   l.Amount(),
		}
	}

	return resp
}
