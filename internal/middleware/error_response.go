package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/fblogin/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// 原因カテゴリと対処方法を含む。
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// HTTPResponse はハンドラーが返すステータスコードとエラーペイロードの組。
type HTTPResponse struct {
	StatusCode int
	Data       *model.APIError
}

// BadRequest はerrを含む400レスポンスを生成する。
func BadRequest(err error) HTTPResponse {
	return HTTPResponse{
		StatusCode: http.StatusBadRequest,
		Data:       model.NewBadRequestError(err),
	}
}

// Unauthorized は認証失敗を表す401レスポンスを生成する。
func Unauthorized() HTTPResponse {
	return HTTPResponse{
		StatusCode: http.StatusUnauthorized,
		Data:       model.NewUnauthorizedError(),
	}
}

// WriteHTTPResponse はHTTPResponseを統一エラーフォーマットで書き込む。
func WriteHTTPResponse(w http.ResponseWriter, resp HTTPResponse) {
	WriteErrorResponse(w, resp.StatusCode, resp.Data)
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}
