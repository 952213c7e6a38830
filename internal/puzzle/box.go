package puzzle

// Box riddle board geometry.
const (
	boxLeft   = 23.0
	boxCenter = 133.0
	boxRight  = 243.0
	boxTop    = 14.0
	boxUpper  = 74.0
	boxLower  = 134.0
	boxBottom = 189.0
)

// BoxPositions are the positions a box riddle piece can rest on.
var BoxPositions = []Point{
	{X: boxLeft, Y: boxTop},
	{X: boxLeft, Y: boxUpper},
	{X: boxLeft, Y: boxLower},
	{X: boxLeft, Y: boxBottom},
	{X: boxCenter, Y: boxUpper},
	{X: boxCenter, Y: boxLower},
	{X: boxRight, Y: boxTop},
	{X: boxRight, Y: boxUpper},
	{X: boxRight, Y: boxLower},
	{X: boxRight, Y: boxBottom},
}

// BoxSolution maps each symbol piece to where it opens the box.
var BoxSolution = map[string]Point{
	"p1": {X: boxRight, Y: boxTop},
	"p2": {X: boxRight, Y: boxUpper},
	"p3": {X: boxLeft, Y: boxTop},
	"p4": {X: boxLeft, Y: boxUpper},
	"p5": {X: boxLeft, Y: boxBottom},
	"p6": {X: boxRight, Y: boxBottom},
}

// BoxSolved reports whether pieces open the box.
func BoxSolved(pieces map[string]Point) bool {
	return AllPlaced(pieces, BoxSolution, SnapDistance)
}
