// Package graphql exposes a read-only GraphQL view of the catalog:
//
//	{ products { id name price stock } }
//	{ product(id: 3) { name description image_url created_at } }
//
// Mutations stay on the gated REST surface.
package graphql

import (
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	pkggraphql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"image_url":   &graphql.Field{Type: graphql.String},
		"stock":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"created_at": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return product.CreatedAt.Format(time.RFC3339), nil
			},
		},
	},
})

// NewSchema builds the catalog query schema over the given service.
func NewSchema(svc *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Description: "All products, newest first. Pass in_stock: true to hide sold-out items.",
				Args: graphql.FieldConfigArgument{
					"in_stock": &graphql.ArgumentConfig{
						Type: graphql.Boolean,
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := svc.List(p.Context)
					if err != nil {
						return nil, err
					}
					if inStock, _ := p.Args["in_stock"].(bool); inStock {
						products = collection.Filter(products, func(pr models.Product) bool {
							return pr.Stock > 0
						})
					}
					return products, nil
				},
			},
			"product": &graphql.Field{
				Type:        productType,
				Description: "A single product, or null when the id is unknown.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.Int),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, nil
					}
					product, err := svc.Get(p.Context, uint(id))
					if errors.Is(err, services.ErrProductNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return product, nil
				},
			},
		},
	})

	return pkggraphql.NewSchema(query)
}
