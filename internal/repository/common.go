package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateKey 唯一索引冲突，由存储层作最终仲裁，业务层据此判定重复
var ErrDuplicateKey = errors.New("duplicate key")

func translateDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
