package request

import (
	usecase "wallet-screening/internal/usecase"
)

type BatchAddress struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// BatchScreenRequest leaves size checks to the use case so they run after authentication.
type BatchScreenRequest struct {
	Addresses []BatchAddress `json:"addresses"`
}

func (r *BatchScreenRequest) ToItems() []usecase.BatchItem {
	items := make([]usecase.BatchItem, len(r.Addresses))
	for i, a := range r.Addresses {
		items[i] = usecase.BatchItem{Chain: a.Chain, Address: a.Address}
	}
	return items
}

type ReplaceSanctionsRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1"`
}
