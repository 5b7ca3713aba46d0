package auth

import (
	"errors"
	"unicode/utf8"
)

const minKeyRunes = 4

var ErrKeyTooShort = errors.New("house key must be at least 4 characters")

// ResolveScope превращает ключ дома в tenant scope. Ключ нигде не
// регистрируется: любая достаточно длинная строка - живое (возможно,
// новое пустое) домохозяйство. Опечатка в ключе молча создаёт новый
// пустой дом, это осознанное поведение продукта, а не баг.
func ResolveScope(houseKey string) (string, error) {
	if utf8.RuneCountInString(houseKey) < minKeyRunes {
		return "", ErrKeyTooShort
	}
	return houseKey, nil
}
