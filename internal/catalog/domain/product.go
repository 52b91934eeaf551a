//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "ProductSource=ProductSource"
package domain

import "context"

type (
	Product struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Image       string  `json:"image"`
		Description string  `json:"description"`
		Stock       int     `json:"stock"`
	}

	ProductSource interface {
		List(ctx context.Context) ([]Product, error)
	}
)

func (p Product) InStock() bool {
	return p.Stock > 0
}

// FallbackProducts is the catalog shown while the product API is unreachable.
func FallbackProducts() []Product {
	return []Product{
		{ID: 1, Name: "Auriculares Gaming", Price: 59.99, Image: "/assets/imgs/auriculares.png", Description: "Auriculares con sonido envolvente y micrófono incorporado.", Stock: 12},
		{ID: 2, Name: "Teclado Mecánico", Price: 89.99, Image: "/assets/imgs/teclado.png", Description: "Teclado mecánico con retroiluminación RGB y switches táctiles.", Stock: 5},
		{ID: 3, Name: "Monitor 27''", Price: 199.99, Image: "/assets/imgs/monitor.png", Description: "Monitor de 27 pulgadas con resolución 1440p y 144Hz.", Stock: 7},
		{ID: 4, Name: "Silla Gamer", Price: 149.99, Image: "/assets/imgs/silla.png", Description: "Silla ergonómica con soporte lumbar y reclinable.", Stock: 3},
		{ID: 5, Name: "Ratón RGB", Price: 39.99, Image: "/assets/imgs/raton.png", Description: "Ratón gamer con iluminación RGB y sensor de alta precisión.", Stock: 10},
		{ID: 6, Name: "Micrófono Streaming", Price: 79.99, Image: "/assets/imgs/microfono.png", Description: "Micrófono condensador USB ideal para streaming y podcast.", Stock: 0},
	}
}
