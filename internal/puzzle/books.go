package puzzle

import "math"

// BookAxes are the x positions of the three shelves books are stacked on.
var BookAxes = [3]float64{210, 360, 499}

// BooksTotal is the number of books in the stacking puzzle.
const BooksTotal = 5

// Book is the placement of one book: the x of its center and the y of its
// bottom edge.
type Book struct {
	CenterX float64 `json:"center_x"`
	Bottom  float64 `json:"bottom"`
}

// OnAxis reports whether b sits on the shelf at x.
func (b Book) OnAxis(x float64) bool {
	return math.Abs(b.CenterX-x) < SnapDistance
}

// BooksStacked reports whether books, given in order Book1 to Book5, all sit on
// the last shelf with Book1 lowest and Book5 highest.
func BooksStacked(books []Book) bool {
	if len(books) != BooksTotal {
		return false
	}
	target := BookAxes[len(BookAxes)-1]
	for i, b := range books {
		if !b.OnAxis(target) {
			return false
		}
		if i > 0 && b.Bottom < books[i-1].Bottom {
			return false
		}
	}
	return true
}
