package usecase

import (
	"encoding/json"

	"github.com/go-faster/errors"
)

// 監査ログ用のJSON文字列
func auditJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "marshal audit payload")
	}
	return string(b), nil
}
