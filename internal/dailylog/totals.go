package dailylog

import "strconv"

// RecomputeTotals sums every entry's nutrition multiplied by its quantity.
// Each total is rounded to one decimal place after summing.
func RecomputeTotals(entries []MealEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories * e.Quantity
		t.Protein += e.Protein * e.Quantity
		t.Carbs += e.Carbs * e.Quantity
		t.Fat += e.Fat * e.Quantity
	}

	return Totals{
		Calories: roundTenth(t.Calories),
		Protein:  roundTenth(t.Protein),
		Carbs:    roundTenth(t.Carbs),
		Fat:      roundTenth(t.Fat),
	}
}

// roundTenth rounds to one decimal place using the exact decimal value of v,
// with exact ties going to the even digit.
func roundTenth(v float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return rounded
}
