package constants

// Choice is one selectable value of an enumeration together with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type choiceTable[T ~string] []Choice

func (t choiceTable[T]) label(v T) string {
	for _, c := range t {
		if c.Value == string(v) {
			return c.Label
		}
	}
	return string(v)
}

func (t choiceTable[T]) valid(v T) bool {
	for _, c := range t {
		if c.Value == string(v) {
			return true
		}
	}
	return false
}

func (t choiceTable[T]) list() []Choice {
	out := make([]Choice, len(t))
	copy(out, t)
	return out
}
