package domain

import "strings"

// Unknown is recorded when a dimension could not be determined or failed
// validation. It is the only non-registry value an item may carry.
const Unknown = "unknown"

// Dimension is one of the four classification axes.
type Dimension int

const (
	DimCategory Dimension = iota
	DimStyle
	DimColor
	DimSeason
)

// Dimensions lists all axes in display order.
var Dimensions = []Dimension{DimCategory, DimStyle, DimColor, DimSeason}

// Value is a single legal vocabulary entry: Key is the canonical lowercase
// storage form, Label the Ukrainian display form shown on menu buttons.
type Value struct {
	Key   string
	Label string
}

var categoryValues = []Value{
	{"coat", "Пальто"},
	{"jacket", "Куртка"},
	{"dress", "Сукня"},
	{"skirt", "Спідниця"},
	{"trousers", "Штани"},
	{"jeans", "Джинси"},
	{"blouse", "Блуза"},
	{"shirt", "Сорочка"},
	{"sweater", "Светр"},
	{"cardigan", "Кардиган"},
	{"suit", "Костюм"},
	{"top", "Топ"},
	{"shoes", "Взуття"},
	{"bag", "Сумка"},
	{"accessory", "Аксесуар"},
}

var styleValues = []Value{
	{"classic", "Класика"},
	{"casual", "Кежуал"},
	{"sport", "Спорт"},
	{"evening", "Вечірній"},
	{"business", "Діловий"},
	{"romantic", "Романтичний"},
	{"boho", "Бохо"},
}

var colorValues = []Value{
	{"black", "Чорний"},
	{"white", "Білий"},
	{"grey", "Сірий"},
	{"beige", "Бежевий"},
	{"brown", "Коричневий"},
	{"red", "Червоний"},
	{"pink", "Рожевий"},
	{"orange", "Помаранчевий"},
	{"yellow", "Жовтий"},
	{"green", "Зелений"},
	{"blue", "Блакитний"},
	{"navy", "Синій"},
	{"purple", "Фіолетовий"},
	{"multicolor", "Різнокольоровий"},
}

var seasonValues = []Value{
	{"winter", "Зима"},
	{"spring", "Весна"},
	{"summer", "Літо"},
	{"autumn", "Осінь"},
	{"all-season", "Всесезон"},
}

var vocabularies = map[Dimension][]Value{
	DimCategory: categoryValues,
	DimStyle:    styleValues,
	DimColor:    colorValues,
	DimSeason:   seasonValues,
}

// Key returns the dimension's identifier used in column names, callback
// tokens and the classification prompt.
func (d Dimension) Key() string {
	switch d {
	case DimCategory:
		return "category"
	case DimStyle:
		return "style"
	case DimColor:
		return "color"
	case DimSeason:
		return "season"
	}
	return ""
}

// Label returns the dimension's Ukrainian menu title.
func (d Dimension) Label() string {
	switch d {
	case DimCategory:
		return "Категорія"
	case DimStyle:
		return "Стиль"
	case DimColor:
		return "Колір"
	case DimSeason:
		return "Сезон"
	}
	return ""
}

// Values returns the ordered legal vocabulary for the dimension.
func (d Dimension) Values() []Value {
	return vocabularies[d]
}

// Canonical maps a raw extracted value to its canonical registry key.
// Matching is case-insensitive and accepts either the key or the display
// label. ok is false when the value is not in the vocabulary.
func (d Dimension) Canonical(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return Unknown, false
	}
	for _, v := range vocabularies[d] {
		if raw == v.Key || raw == strings.ToLower(v.Label) {
			return v.Key, true
		}
	}
	return Unknown, false
}

// ValueLabel returns the display label for a canonical key, falling back to
// the key itself for Unknown or anything unexpected.
func (d Dimension) ValueLabel(key string) string {
	for _, v := range vocabularies[d] {
		if v.Key == key {
			return v.Label
		}
	}
	return key
}

// DimensionByKey resolves a dimension identifier from a callback token.
func DimensionByKey(key string) (Dimension, bool) {
	for _, d := range Dimensions {
		if d.Key() == key {
			return d, true
		}
	}
	return 0, false
}
