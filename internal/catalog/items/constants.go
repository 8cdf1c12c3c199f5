package items

// ConditionGrades are the vintage condition labels used by the gallery.
var ConditionGrades = []string{"A", "B", "C", "D"}

// DesignerSeries returns the designer/series labels offered by the item
// form, in display order. The SKU prefix lookup covers the same set.
func DesignerSeries() []string {
	return []string{
		"Eames",
		"昌迪加尔",
		"Le Corbusier",
		"Charlotte Perriand",
		"Jean Prouve",
		"Pierre Chapo",
		"Poul Henningsen",
		"Bernard-Albin Gras",
		"其他",
	}
}
