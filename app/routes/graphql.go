package routes

import (
	gql "github.com/graphql-go/graphql"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/graphql"
)

// catalogSchema exposes a read-only catalog query surface so storefront
// clients can fetch exactly the fields they render.
func catalogSchema(catalog *services.CatalogService) (gql.Schema, error) {
	categoryType := gql.NewObject(gql.ObjectConfig{
		Name: "Category",
		Fields: gql.Fields{
			"id": &gql.Field{
				Type: gql.Int,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(models.Category); ok {
						return c.ID, nil
					}
					return nil, nil
				},
			},
			"name":        &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
		},
	})

	medicineType := gql.NewObject(gql.ObjectConfig{
		Name: "Medicine",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.Int, Resolve: medicineField(func(m models.Medicine) interface{} { return m.ID })},
			"name":        &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
			"price":       &gql.Field{Type: gql.Float},
			"stock":       &gql.Field{Type: gql.Int},
			"categoryId":  &gql.Field{Type: gql.Int, Resolve: medicineField(func(m models.Medicine) interface{} { return m.CategoryID })},
			"image":       &gql.Field{Type: gql.String},
			"rating":      &gql.Field{Type: gql.Float},
			"reviewCount": &gql.Field{Type: gql.Int, Resolve: medicineField(func(m models.Medicine) interface{} { return m.ReviewCount })},
		},
	})

	root := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"categories": &gql.Field{
				Type: gql.NewList(categoryType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
			"medicine": &gql.Field{
				Type: medicineType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return catalog.Medicine(uint(id))
				},
			},
			"medicines": &gql.Field{
				Type: gql.NewList(medicineType),
				Args: gql.FieldConfigArgument{
					"search":     &gql.ArgumentConfig{Type: gql.String},
					"categoryId": &gql.ArgumentConfig{Type: gql.Int},
					"limit":      &gql.ArgumentConfig{Type: gql.Int, DefaultValue: 20},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					categoryID, _ := p.Args["categoryId"].(int)
					limit, _ := p.Args["limit"].(int)

					medicines, _, err := catalog.Medicines(repositories.Filter{
						Search:     search,
						CategoryID: uint(categoryID),
					}, 1, limit)
					return medicines, err
				},
			},
		},
	})

	return graphql.NewSchema(root)
}

// medicineField resolves struct fields whose Go names don't match the
// default lowercase lookup (ID, CategoryID, ReviewCount).
func medicineField(get func(models.Medicine) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		if m, ok := p.Source.(models.Medicine); ok {
			return get(m), nil
		}
		return nil, nil
	}
}
