package billing

import (
	"errors"
	"time"

	"github.com/langchou/mallpark/internal/models"
)

// ErrInvalidTimeRange 离场时间早于入场时间
var ErrInvalidTimeRange = errors.New("exit time is before entry time")

// Rates 计费费率
type Rates struct {
	FirstHour      models.Amount // 首小时费率
	SubsequentHour models.Amount // 后续每小时费率
	DayPass        models.Amount // 日票固定费率
}

// DefaultRates 默认费率
func DefaultRates() Rates {
	return Rates{
		FirstHour:      models.AmountFromFloat(50.0),
		SubsequentHour: models.AmountFromFloat(30.0),
		DayPass:        models.AmountFromFloat(200.0),
	}
}

// Calculator 计费引擎
type Calculator struct {
	rates Rates
}

// NewCalculator 创建计费引擎
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates 获取费率
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Compute 计算停车费用
//
// 日票固定收取 DayPass 费率，与时长无关。按小时计费时首小时收取
// FirstHour，超出部分按整小时向上取整，每小时收取 SubsequentHour。
func (c *Calculator) Compute(billingType models.BillingType, entryTime, exitTime time.Time) (models.Amount, error) {
	if exitTime.Before(entryTime) {
		return 0, ErrInvalidTimeRange
	}

	if billingType == models.BillingDayPass {
		return c.rates.DayPass, nil
	}

	elapsed := exitTime.Sub(entryTime)
	if elapsed <= time.Hour {
		return c.rates.FirstHour, nil
	}

	billedHours := int64(elapsed / time.Hour)
	if elapsed%time.Hour > 0 {
		// 不足一小时按一小时计
		billedHours++
	}

	return c.rates.FirstHour + models.Amount(billedHours-1)*c.rates.SubsequentHour, nil
}
