package dto

// BulkStatusRequest sets one status on many orders.
type BulkStatusRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
	Status string  `json:"status" validate:"required,orderstatus"`
}

// BulkTesterRequest assigns a tester, or "none", to many orders.
type BulkTesterRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
	Tester string  `json:"tester" validate:"required,tester"`
}

// BulkDeleteRequest removes many orders from the local view.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// BulkFailureResponse is an order the backend refused to update.
type BulkFailureResponse struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BulkResponse reports a bulk operation per id.
type BulkResponse struct {
	Updated []int64               `json:"updated"`
	Failed  []BulkFailureResponse `json:"failed"`
	Missing []int64               `json:"missing"`
}
