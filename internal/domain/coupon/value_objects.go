package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode = errors.New("invalid coupon code format")
	ErrInvalidCouponType = errors.New("invalid coupon type")
	ErrInvalidValue      = errors.New("coupon value must be positive")
	ErrInvalidPercentage = errors.New("percentage value must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePercentage, TypeFixed:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(t)
}
