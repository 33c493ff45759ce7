package repository

import "github.com/go-faster/errors"

var (
	// 顧客・明細・注文が存在しない
	ErrNotFound = errors.New("not found")

	// 数量0以下など、書き込み前に弾く入力
	ErrInvalidArgument = errors.New("invalid argument")

	// 消費しようとした明細が他のトランザクションで消えていた
	ErrConflict = errors.New("conflict")

	// トランザクション・ストアの失敗
	ErrPersistence = errors.New("persistence failure")
)
