package validator

import (
	"regexp"
	"strings"

	"storefront/internal/domain/model"

	"github.com/go-faster/errors"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Email は前後の空白を落として簡易形式チェックする。
// 大文字小文字はそのまま比較する
func Email(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 255 || !emailRe.MatchString(s) {
		return "", errors.Wrap(ErrInvalidInput, "email")
	}
	return s, nil
}

// 数量は1以上、上限まで
func Quantity(q int64) error {
	if q < 1 || q > model.MaxCartQuantity {
		return errors.Wrap(ErrInvalidInput, "quantity")
	}
	return nil
}

// IDは1以上
func ID(id int64) error {
	if id <= 0 {
		return errors.Wrap(ErrInvalidInput, "id")
	}
	return nil
}

// Len は任意項目の最大長チェック
func Len(s string, max int) error {
	if len(s) > max {
		return errors.Wrap(ErrInvalidInput, "too long")
	}
	return nil
}
