package allocation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Strategy is an ordering rule applied to candidate orders before the
// greedy pass. Different orderings can release different sets of
// orders; the optimizer exploits that.
type Strategy string

const (
	// Core strategies, one per optimization objective.
	StrategyOrderPriority    Strategy = "order_priority"    // due date ascending
	StrategyHoursPriority    Strategy = "hours_priority"    // total hours descending
	StrategyQuantityPriority Strategy = "quantity_priority" // total quantity descending

	// Extended strategies for exhaustive comparison runs.
	StrategyDueDateLate   Strategy = "due_date_late"   // due date descending
	StrategyHoursQuick    Strategy = "hours_quick"     // total hours ascending
	StrategyQuantitySmall Strategy = "quantity_small"  // total quantity ascending
	StrategyPartAsc       Strategy = "part_asc"        // top-level part A-Z
	StrategyPartDesc      Strategy = "part_desc"       // top-level part Z-A
	StrategyPlannerAsc    Strategy = "planner_asc"     // planner code A-Z
	StrategyPlannerDesc   Strategy = "planner_desc"    // planner code Z-A
)

// CoreStrategies returns the three objective-aligned strategies run
// under triple optimization.
func CoreStrategies() []Strategy {
	return []Strategy{StrategyOrderPriority, StrategyHoursPriority, StrategyQuantityPriority}
}

// AllStrategies returns every known strategy, core first.
func AllStrategies() []Strategy {
	return append(CoreStrategies(),
		StrategyDueDateLate,
		StrategyHoursQuick,
		StrategyQuantitySmall,
		StrategyPartAsc,
		StrategyPartDesc,
		StrategyPlannerAsc,
		StrategyPlannerDesc,
	)
}

// ParseStrategy converts a user-supplied name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	for _, s := range AllStrategies() {
		if Strategy(normalized) == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) String() string { return string(s) }

// Display returns the human-readable strategy name.
func (s Strategy) Display() string {
	switch s {
	case StrategyOrderPriority:
		return "Start Date (Early First)"
	case StrategyHoursPriority:
		return "Hours (Long First)"
	case StrategyQuantityPriority:
		return "Demand (Large First)"
	case StrategyDueDateLate:
		return "Start Date (Late First)"
	case StrategyHoursQuick:
		return "Hours (Quick First)"
	case StrategyQuantitySmall:
		return "Demand (Small First)"
	case StrategyPartAsc:
		return "Part Number (A-Z)"
	case StrategyPartDesc:
		return "Part Number (Z-A)"
	case StrategyPlannerAsc:
		return "Planner (A-Z)"
	case StrategyPlannerDesc:
		return "Planner (Z-A)"
	default:
		return string(s)
	}
}

// Sort returns a new slice of the orders arranged by the strategy.
// Every strategy ends with the order id tiebreak, so a run over the
// same snapshot is deterministic regardless of input row order.
func (s Strategy) Sort(orders []*domain.Order) []*domain.Order {
	sorted := make([]*domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.less(sorted[i], sorted[j])
	})
	return sorted
}

func (s Strategy) less(a, b *domain.Order) bool {
	switch s {
	case StrategyOrderPriority:
		if c := compareDueDates(a.DueDate, b.DueDate); c != 0 {
			return c < 0
		}
	case StrategyDueDateLate:
		// Undated orders stay last even under the reversed ordering.
		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil
		}
		if c := compareDueDates(a.DueDate, b.DueDate); c != 0 {
			return c > 0
		}
	case StrategyHoursPriority:
		if c := a.TotalHours.Cmp(b.TotalHours); c != 0 {
			return c > 0
		}
	case StrategyHoursQuick:
		if c := a.TotalHours.Cmp(b.TotalHours); c != 0 {
			return c < 0
		}
	case StrategyQuantityPriority:
		if c := a.TotalQuantity.Cmp(b.TotalQuantity); c != 0 {
			return c > 0
		}
	case StrategyQuantitySmall:
		if c := a.TotalQuantity.Cmp(b.TotalQuantity); c != 0 {
			return c < 0
		}
	case StrategyPartAsc:
		if a.PartID != b.PartID {
			return a.PartID < b.PartID
		}
	case StrategyPartDesc:
		if a.PartID != b.PartID {
			return a.PartID > b.PartID
		}
	case StrategyPlannerAsc:
		if a.PlannerCode != b.PlannerCode {
			return a.PlannerCode < b.PlannerCode
		}
	case StrategyPlannerDesc:
		if a.PlannerCode != b.PlannerCode {
			return a.PlannerCode > b.PlannerCode
		}
	}
	// Secondary key for non-date strategies: earliest due date first.
	if s != StrategyOrderPriority && s != StrategyDueDateLate {
		if c := compareDueDates(a.DueDate, b.DueDate); c != 0 {
			return c < 0
		}
	}
	return a.ID < b.ID
}

// compareDueDates orders earlier dates first and nil dates last.
func compareDueDates(a, b *time.Time) int {
	if (a == nil) != (b == nil) {
		if a != nil {
			return -1
		}
		return 1
	}
	if a == nil || a.Equal(*b) {
		return 0
	}
	if a.Before(*b) {
		return -1
	}
	return 1
}
