package via

import "github.com/coffyg/octypes"

// JSONResult is the standard success envelope for JSON APIs built on via.
type JSONResult struct {
	Data    interface{}         `json:"data,omitempty"`
	Result  string              `json:"result"`
	Message string              `json:"message,omitempty"`
	Paging  *octypes.Pagination `json:"paging,omitempty"`
}

// NewJSONResult builds a 200 response wrapping data in the standard
// envelope, with optional pagination.
func NewJSONResult(data interface{}, pagination *octypes.Pagination) (*Response, error) {
	return Build().JSON(JSONResult{
		Data:   data,
		Result: "success",
		Paging: pagination,
	})
}
