package domain

// Side identifica uno de los dos lados complementarios del mercado (YES/NO).
// Todo el estado por-lado se indexa con Side para evitar duplicar campos.
type Side int

const (
	SideYes Side = iota
	SideNo

	numSides = 2
)

// Sides lista ambos lados en el orden canónico de iteración (YES, NO).
var Sides = [numSides]Side{SideYes, SideNo}

// Opposite devuelve el lado contrario.
func (s Side) Opposite() Side {
	if s == SideYes {
		return SideNo
	}
	return SideYes
}

func (s Side) String() string {
	if s == SideYes {
		return "YES"
	}
	return "NO"
}
