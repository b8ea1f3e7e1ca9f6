package cart

import (
	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/register"
)

type lineResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type cartResponse struct {
	Items    []lineResponse `json:"items"`
	Count    int            `json:"count"`
	Subtotal int64          `json:"subtotal"`
	Tax      int64          `json:"tax"`
	Total    int64          `json:"total"`
}

func toLineResponse(l cart.Line) lineResponse {
	return lineResponse{
		Code:     l.Code,
		Name:     l.Name,
		Price:    l.Price,
		Quantity: l.Quantity,
		Amount:   l.Amount(),
	}
}

func toResponse(v register.CartView) cartResponse {
	resp := cartResponse{
		Items:    make([]lineResponse, len(v.Lines)),
		Subtotal: v.Subtotal,
		Tax:      v.Tax,
		Total:    v.Total,
	}

	for i, l := range v.Lines {
		resp.Items[i] = toLineResponse(l)
		resp.Count += l.Quantity
	}

	return resp
}
