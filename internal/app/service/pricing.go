package service

import (
	"github.com/ikkim/grocery-cart/config"
	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CouponTable maps an exact, case-sensitive code to a percent.
type CouponTable map[string]decimal.Decimal

// Percent returns the discount percent for code, or zero when unknown.
func (t CouponTable) Percent(code string) decimal.Decimal {
	if percent, ok := t[code]; ok {
		return percent
	}
	return decimal.Zero
}

type PricingRules struct {
	ThresholdAmount  decimal.Decimal
	ThresholdPercent decimal.Decimal
	Coupons          CouponTable
}

// DefaultPricingRules is 10% off above 200 with SAVE10 and SAVE20.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		ThresholdAmount:  decimal.NewFromInt(200),
		ThresholdPercent: decimal.NewFromInt(10),
		Coupons: CouponTable{
			"SAVE10": decimal.NewFromInt(10),
			"SAVE20": decimal.NewFromInt(20),
		},
	}
}

func NewPricingRules(cfg config.CartConfig) PricingRules {
	rules := PricingRules{
		ThresholdAmount:  cfg.ThresholdAmount,
		ThresholdPercent: cfg.ThresholdPercent,
		Coupons:          CouponTable{},
	}
	for code, percent := range cfg.Coupons {
		rules.Coupons[code] = percent
	}
	return rules
}

type PriceSummary struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	ThresholdDiscount decimal.Decimal `json:"threshold_discount"`
	CouponCode        string          `json:"coupon_code,omitempty"`
	CouponPercent     decimal.Decimal `json:"coupon_percent"`
	CouponDiscount    decimal.Decimal `json:"coupon_discount"`
	Total             decimal.Decimal `json:"total"`
}

// ThresholdDiscount applies only when subtotal is strictly above the threshold.
func (r PricingRules) ThresholdDiscount(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(r.ThresholdAmount) {
		return subtotal.Mul(r.ThresholdPercent).Div(hundred)
	}
	return decimal.Zero
}

func (r PricingRules) CouponDiscount(subtotal decimal.Decimal, code string) decimal.Decimal {
	return subtotal.Mul(r.Coupons.Percent(code)).Div(hundred)
}

// Summarize derives all pricing values from items. Total is not clamped and
// goes negative when the discounts add up to more than the subtotal.
func (r PricingRules) Summarize(items []model.LineItem, coupon string) PriceSummary {
	subtotal := model.Subtotal(items)
	threshold := r.ThresholdDiscount(subtotal)
	couponDiscount := r.CouponDiscount(subtotal, coupon)

	return PriceSummary{
		Subtotal:          subtotal,
		ThresholdDiscount: threshold,
		CouponCode:        coupon,
		CouponPercent:     r.Coupons.Percent(coupon),
		CouponDiscount:    couponDiscount,
		Total:             subtotal.Sub(threshold).Sub(couponDiscount),
	}
}
