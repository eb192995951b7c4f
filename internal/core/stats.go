package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySpend is the value consumed in one category.
type CategorySpend struct {
	Category string          `json:"category"`
	Spend    decimal.Decimal `json:"spend"`
}

// ItemSpend is the consumption of one item summed over the analysed periods.
type ItemSpend struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Consumption decimal.Decimal `json:"consumption"`
	Spend       decimal.Decimal `json:"spend"`
}

// PeriodSpend is the total spend of one analysis record.
type PeriodSpend struct {
	RecordID string          `json:"record_id"`
	Label    string          `json:"label"`
	Date     time.Time       `json:"date"`
	Total    decimal.Decimal `json:"total"`
}

// ConsumptionStats summarises the spend behind a set of analysis records.
type ConsumptionStats struct {
	Categories []CategorySpend `json:"categories"`
	TopItems   []ItemSpend     `json:"top_items"`
	Trend      []PeriodSpend   `json:"trend"`
	Total      decimal.Decimal `json:"total"`
}

const topItemsLimit = 5

func isPackaging(category string) bool {
	return strings.Contains(strings.ToLower(category), "embalajes")
}

// ComputeStats values positive consumption at unit price across the analysis records.
// Surplus lines and packaging tallies carry no spend. Top items rank by consumed
// quantity; when category is non-empty they are restricted to it. Trend lists one
// total per record, oldest first. Snapshot records are ignored.
func ComputeStats(records []PeriodRecord, category string) ConsumptionStats {
	stats := ConsumptionStats{Total: decimal.Zero}
	byCategory := map[string]decimal.Decimal{}
	byItem := map[string]*ItemSpend{}

	for _, rec := range records {
		if rec.Type != RecordAnalysis {
			continue
		}
		period := PeriodSpend{RecordID: rec.ID, Label: rec.Label, Date: rec.Date, Total: decimal.Zero}
		for _, it := range rec.Items {
			if isPackaging(it.Category) {
				continue
			}
			consumed := it.ConsumptionOrZero()
			if !consumed.IsPositive() {
				continue
			}
			spend := consumed.Mul(it.UnitPrice)
			cat := CategoryOf(it.Category)
			byCategory[cat] = byCategory[cat].Add(spend)
			period.Total = period.Total.Add(spend)

			if category != "" && cat != category {
				continue
			}
			is, ok := byItem[it.ItemID]
			if !ok {
				is = &ItemSpend{ItemID: it.ItemID, Name: it.Name, Category: cat}
				byItem[it.ItemID] = is
			}
			is.Consumption = is.Consumption.Add(consumed)
			is.Spend = is.Spend.Add(spend)
		}
		stats.Total = stats.Total.Add(period.Total)
		period.Total = RoundCurrency(period.Total)
		stats.Trend = append(stats.Trend, period)
	}

	for cat, spend := range byCategory {
		if s := RoundCurrency(spend); s.IsPositive() {
			stats.Categories = append(stats.Categories, CategorySpend{Category: cat, Spend: s})
		}
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if !stats.Categories[i].Spend.Equal(stats.Categories[j].Spend) {
			return stats.Categories[i].Spend.GreaterThan(stats.Categories[j].Spend)
		}
		return CategoryLess(stats.Categories[i].Category, stats.Categories[j].Category)
	})

	items := make([]ItemSpend, 0, len(byItem))
	for _, is := range byItem {
		is.Spend = RoundCurrency(is.Spend)
		items = append(items, *is)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Consumption.Equal(items[j].Consumption) {
			return items[i].Consumption.GreaterThan(items[j].Consumption)
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > topItemsLimit {
		items = items[:topItemsLimit]
	}
	stats.TopItems = items

	sort.SliceStable(stats.Trend, func(i, j int) bool { return stats.Trend[i].Date.Before(stats.Trend[j].Date) })
	stats.Total = RoundCurrency(stats.Total)
	return stats
}
