package puzzle

type Balance int

const (
	Balanced Balance = iota
	LeftHeavier
	RightHeavier
)

func (b Balance) String() string {
	switch b {
	case LeftHeavier:
		return "left_heavier"
	case RightHeavier:
		return "right_heavier"
	default:
		return "balanced"
	}
}

// MarshalText lets a Balance travel as its name.
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// BallWeights are the weights of the balls that can go on the scale.
var BallWeights = map[string]int{
	"blackball2": 2,
	"blackball3": 3,
	"redball":    5,
	"greenball":  1,
	"blueball":   7,
	"yellowball": 8,
}

// Weight sums the weights of balls. Unknown balls weigh nothing.
func Weight(balls []string) int {
	w := 0
	for _, b := range balls {
		w += BallWeights[b]
	}
	return w
}

// Weigh compares two plates.
func Weigh(left, right []string) Balance {
	l, r := Weight(left), Weight(right)
	switch {
	case l > r:
		return LeftHeavier
	case r > l:
		return RightHeavier
	default:
		return Balanced
	}
}

// ScaleHint returns the line shown under the scale. There is nothing to say
// until both plates hold a ball.
func ScaleHint(left, right []string) (string, bool) {
	if len(left) == 0 || len(right) == 0 {
		return "", false
	}
	switch Weigh(left, right) {
	case LeftHeavier:
		return "左边更重", true
	case RightHeavier:
		return "右边更重", true
	default:
		return "天平平衡了！", true
	}
}
