package models

import (
	"fmt"
	"math"
	"strconv"
)

// Amount 金额，以分为单位的定点数，避免浮点累加误差
type Amount int64

// AmountFromFloat 从浮点金额转换（四舍五入到分）
func AmountFromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// ParseAmount 解析十进制金额字符串，如 "50.0"
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return AmountFromFloat(v), nil
}

// Float64 转为浮点金额
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// Cents 以分为单位的原始值
func (a Amount) Cents() int64 {
	return int64(a)
}

// String 格式化为两位小数，用于展示
func (a Amount) String() string {
	return strconv.FormatFloat(a.Float64(), 'f', 2, 64)
}

// MarshalJSON 序列化为两位小数的数字
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Float64(), 'f', 2, 64)), nil
}

// UnmarshalJSON 从数字反序列化
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	*a = AmountFromFloat(v)
	return nil
}
