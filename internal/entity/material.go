package entity

import "time"

// MaterialVariant is a named pricing/consumption tier of a material, e.g.
// basic/medium/premium concrete grades.
type MaterialVariant struct {
	Key           string
	Label         string
	PricePerUnit  float64
	QuantityPerM2 float64
}

type Material struct {
	ID        string
	Name      string
	Unit      string
	Variants  []MaterialVariant
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantFor picks the variant whose key matches the finishing level. When no
// exact match exists the first declared variant is used instead of failing the
// whole estimate; this substitution is a deliberate policy.
func (m *Material) VariantFor(level string) (MaterialVariant, bool) {
	for _, v := range m.Variants {
		if v.Key == level {
			return v, true
		}
	}
	if len(m.Variants) > 0 {
		return m.Variants[0], true
	}
	return MaterialVariant{}, false
}
