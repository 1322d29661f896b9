package catalogo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Filtro filtro por umbral de stock.
type Filtro string

const (
	SinFiltro     Filtro = ""
	FiltroBajo    Filtro = "bajo"    // stock < umbral
	FiltroCercano Filtro = "cercano" // umbral <= stock <= umbral × factor
)

// Valido indica si f es un filtro conocido (incluido SinFiltro).
func (f Filtro) Valido() bool {
	return f == SinFiltro || f == FiltroBajo || f == FiltroCercano
}

// OrdenarPorNombre devuelve una copia ordenada por nombre con colación española.
// El orden es estable: los empates conservan su posición relativa.
func OrdenarPorNombre(productos []entity.Producto, asc bool) []entity.Producto {
	// collate.Collator no es seguro para uso concurrente; uno por llamada.
	col := collate.New(language.Spanish)
	out := slices.Clone(productos)
	slices.SortStableFunc(out, func(a, b entity.Producto) int {
		c := col.CompareString(a.Nombre, b.Nombre)
		if !asc {
			c = -c
		}
		return c
	})
	return out
}

// OrdenarPorStock devuelve una copia ordenada por stock, estable.
func OrdenarPorStock(productos []entity.Producto, asc bool) []entity.Producto {
	out := slices.Clone(productos)
	slices.SortStableFunc(out, func(a, b entity.Producto) int {
		if asc {
			return cmp.Compare(a.Stock, b.Stock)
		}
		return cmp.Compare(b.Stock, a.Stock)
	})
	return out
}

// FiltrarUmbral aplica el filtro de umbral. SinFiltro devuelve todos.
func FiltrarUmbral(productos []entity.Producto, f Filtro, factor decimal.Decimal) []entity.Producto {
	if f == SinFiltro {
		return slices.Clone(productos)
	}
	out := make([]entity.Producto, 0, len(productos))
	for _, p := range productos {
		switch f {
		case FiltroBajo:
			if p.BajoUmbral() {
				out = append(out, p)
			}
		case FiltroCercano:
			if p.CercaUmbral(factor) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Buscar conserva los productos cuyo nombre contiene todos los términos de la consulta,
// sin distinguir mayúsculas. Consulta vacía devuelve todos.
func Buscar(productos []entity.Producto, consulta string) []entity.Producto {
	lower := cases.Lower(language.Spanish)
	terminos := strings.Fields(lower.String(consulta))
	if len(terminos) == 0 {
		return slices.Clone(productos)
	}

	out := make([]entity.Producto, 0, len(productos))
	for _, p := range productos {
		nombre := lower.String(p.Nombre)
		coincide := true
		for _, t := range terminos {
			if !strings.Contains(nombre, t) {
				coincide = false
				break
			}
		}
		if coincide {
			out = append(out, p)
		}
	}
	return out
}
