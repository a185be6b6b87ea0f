package services

// AverageRating is the arithmetic mean of ratings, or 0 for none.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}
