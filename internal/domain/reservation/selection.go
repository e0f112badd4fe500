package reservation

// HourPlan is the set of courts chosen for one hour of a scheduled evening.
type HourPlan struct {
	Hour   int
	Courts []int
}

// PlanEvening picks up to perHour courts for each hour, in the order given.
// Courts already chosen for the previous hour win so people can stay on the
// same court; when nothing was chosen for the previous hour, courts that are
// also free in the following hour win instead. Ties break by court number.
func PlanEvening(avail Availability, hours []int, perHour int) []HourPlan {
	options := make(map[int][]int, len(hours))
	for _, h := range hours {
		for _, c := range avail.Courts() {
			if avail.Has(c, h) {
				options[h] = append(options[h], c)
			}
		}
	}

	selected := make(map[int][]int, len(hours))
	plan := make([]HourPlan, 0, len(hours))
	for _, h := range hours {
		pool := selected[h-1]
		if len(pool) == 0 {
			pool = options[h+1]
		}

		var preferred, rest []int
		for _, c := range options[h] {
			if contains(pool, c) {
				preferred = append(preferred, c)
			} else {
				rest = append(rest, c)
			}
		}
		choices := append(preferred, rest...)
		if len(choices) > perHour {
			choices = choices[:perHour]
		}

		selected[h] = choices
		plan = append(plan, HourPlan{Hour: h, Courts: choices})
	}
	return plan
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
