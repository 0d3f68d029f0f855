package dto

// Notice placements of an error message in the dashboard.
const (
	NoticeGlobal = "global"
	NoticeInline = "inline"
)

// ErrorResponse is the normalized error body of every failed panel request.
type ErrorResponse struct {
	Kind               string `json:"kind"`
	Message            string `json:"message"`
	Code               int    `json:"code"`
	IsBigError         bool   `json:"isBigError"`
	SessionInvalidated bool   `json:"sessionInvalidated,omitempty"`
	Notice             string `json:"notice"`
	Redirect           string `json:"redirect,omitempty"`
}
