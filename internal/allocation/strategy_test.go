package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caddickbrown/Plannr/internal/domain"
	"github.com/Caddickbrown/Plannr/internal/testutil"
)

func orderIDs(orders []*domain.Order) []string {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func strategyFixtures() []*domain.Order {
	return []*domain.Order{
		testutil.Order(testutil.OrderSpec{
			ID: "9002", Part: "PART-B", Planner: "3802",
			Due:   testutil.Date(2026, time.March, 9),
			Lines: map[string]string{"PART-B": "8"},
			Hours: "4", Qty: "8",
		}),
		testutil.Order(testutil.OrderSpec{
			ID: "9001", Part: "PART-A", Planner: "3001",
			Due:   testutil.Date(2026, time.March, 2),
			Lines: map[string]string{"PART-A": "6"},
			Hours: "12", Qty: "6",
		}),
		testutil.Order(testutil.OrderSpec{
			ID: "9003", Part: "PART-C", Planner: "5001",
			Lines: map[string]string{"PART-C": "2"},
			Hours: "1", Qty: "2",
		}),
	}
}

func TestStrategySort(t *testing.T) {
	orders := strategyFixtures()

	tests := []struct {
		strategy Strategy
		want     []string
	}{
		{StrategyOrderPriority, []string{"9001", "9002", "9003"}}, // undated last
		{StrategyDueDateLate, []string{"9002", "9001", "9003"}},
		{StrategyHoursPriority, []string{"9001", "9002", "9003"}},
		{StrategyHoursQuick, []string{"9003", "9002", "9001"}},
		{StrategyQuantityPriority, []string{"9002", "9001", "9003"}},
		{StrategyQuantitySmall, []string{"9003", "9001", "9002"}},
		{StrategyPartAsc, []string{"9001", "9002", "9003"}},
		{StrategyPartDesc, []string{"9003", "9002", "9001"}},
		{StrategyPlannerAsc, []string{"9001", "9002", "9003"}},
		{StrategyPlannerDesc, []string{"9003", "9002", "9001"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.Equal(t, tt.want, orderIDs(tt.strategy.Sort(orders)))
		})
	}

	// Sorting never mutates the input slice.
	assert.Equal(t, []string{"9002", "9001", "9003"}, orderIDs(orders))
}

func TestStrategySort_TiesFallBackToOrderID(t *testing.T) {
	due := testutil.Date(2026, time.March, 2)
	a := testutil.Order(testutil.OrderSpec{
		ID: "9007", Part: "PART-A", Planner: "3001", Due: due,
		Lines: map[string]string{"PART-A": "5"}, Hours: "5", Qty: "5",
	})
	b := testutil.Order(testutil.OrderSpec{
		ID: "9004", Part: "PART-A", Planner: "3001", Due: due,
		Lines: map[string]string{"PART-A": "5"}, Hours: "5", Qty: "5",
	})

	for _, s := range AllStrategies() {
		assert.Equal(t, []string{"9004", "9007"}, orderIDs(s.Sort([]*domain.Order{a, b})), string(s))
	}
}

func TestDueDateLate_UndatedStillLast(t *testing.T) {
	orders := strategyFixtures()
	sorted := StrategyDueDateLate.Sort(orders)
	assert.Equal(t, "9003", sorted[len(sorted)-1].ID)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("order_priority")
	require.NoError(t, err)
	assert.Equal(t, StrategyOrderPriority, s)

	// Hyphens and case are tolerated.
	s, err = ParseStrategy("  Hours-Priority ")
	require.NoError(t, err)
	assert.Equal(t, StrategyHoursPriority, s)

	_, err = ParseStrategy("fastest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fastest")
}

func TestStrategyDisplayNames(t *testing.T) {
	assert.Equal(t, "Start Date (Early First)", StrategyOrderPriority.Display())
	assert.Equal(t, "Demand (Small First)", StrategyQuantitySmall.Display())
	for _, s := range AllStrategies() {
		assert.NotEqual(t, string(s), s.Display())
	}
}

func TestAllStrategies_CoreFirstAndUnique(t *testing.T) {
	all := AllStrategies()
	assert.Equal(t, CoreStrategies(), all[:3])

	seen := make(map[Strategy]bool)
	for _, s := range all {
		assert.False(t, seen[s], string(s))
		seen[s] = true
	}
}
